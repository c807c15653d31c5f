// Package term renders user-facing toasts on the terminal.
package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/eduplat/campus-cli/internal/ports"
)

// Shared palette so toasts and progress indicators stay visually consistent.
var (
	AccentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type notifierStyles struct {
	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

func newNotifierStyles() notifierStyles {
	return notifierStyles{
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Notifier is the terminal stand-in for the web client's toast store.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles notifierStyles
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out, styles: newNotifierStyles()}
}

func (n *Notifier) Success(message string) { n.write(n.styles.success.Render("✓"), message) }

func (n *Notifier) Error(message string) { n.write(n.styles.err.Render("✗"), message) }

func (n *Notifier) Warning(message string) { n.write(n.styles.warning.Render("!"), message) }

func (n *Notifier) Info(message string) { n.write(n.styles.info.Render("·"), message) }

func (n *Notifier) write(prefix, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", prefix, message)
}

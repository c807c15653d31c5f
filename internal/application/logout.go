package application

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eduplat/campus-cli/internal/ports"
)

const (
	defaultLogoutReason  = "Your account has been disabled, please log in again"
	defaultNavigateDelay = time.Second
)

// Stopper is anything the logout protocol must shut down before the
// session disappears.
type Stopper interface {
	Stop()
}

// LogoutCoordinator implements the forced-logout protocol: stop the
// heartbeat monitor, clear the session, show the reason, then hand the user
// back to the login entry point after a short delay so the toast renders.
// Concurrent triggers collapse into one effect through the in-flight flag,
// which only a fresh successful login resets.
type LogoutCoordinator struct {
	session   ports.SessionStore
	notifier  ports.Notifier
	navigator ports.Navigator
	delay     time.Duration

	inFlight atomic.Bool

	mu      sync.Mutex
	monitor Stopper
}

var _ ports.SessionTerminator = (*LogoutCoordinator)(nil)

func NewLogoutCoordinator(session ports.SessionStore, notifier ports.Notifier, navigator ports.Navigator) *LogoutCoordinator {
	return &LogoutCoordinator{
		session:   session,
		notifier:  notifier,
		navigator: navigator,
		delay:     defaultNavigateDelay,
	}
}

// AttachMonitor wires the heartbeat monitor in after construction; the
// monitor itself needs the coordinator, so the two are tied together at
// wiring time rather than in a constructor cycle.
func (c *LogoutCoordinator) AttachMonitor(monitor Stopper) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.monitor = monitor
}

// SetNavigateDelay overrides the toast-render grace period.
func (c *LogoutCoordinator) SetNavigateDelay(delay time.Duration) {
	c.delay = delay
}

func (c *LogoutCoordinator) ForceLogout(reason string) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return
	}

	if reason == "" {
		reason = defaultLogoutReason
	}

	c.mu.Lock()
	monitor := c.monitor
	c.mu.Unlock()
	if monitor != nil {
		monitor.Stop()
	}

	_ = c.session.Clear()
	c.notifier.Error(reason)
	time.AfterFunc(c.delay, c.navigator.ToLogin)
}

// Reset re-arms the coordinator after a fresh successful login.
func (c *LogoutCoordinator) Reset() {
	c.inFlight.Store(false)
}

// Package telemetry forwards unexpected errors to the error-reporting
// backend. The local build ships a structured-log reporter; the interface
// keeps the request engine ignorant of which backend is wired.
package telemetry

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

// LogReporter emits telemetry events as structured log lines, tagging each
// exception with the current user the same way the hosted backend would.
type LogReporter struct {
	log zerolog.Logger

	mu   sync.Mutex
	user *domain.User
}

var _ ports.Reporter = (*LogReporter)(nil)

func NewLogReporter(log zerolog.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) CaptureException(err error, tags map[string]string) {
	event := r.log.Error().Err(err)
	for key, value := range tags {
		event = event.Str(key, value)
	}
	if user := r.currentUser(); user != nil {
		event = event.Int64("user_id", user.ID).Str("username", user.Username)
	}
	event.Msg("captured exception")
}

func (r *LogReporter) SetUser(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
}

func (r *LogReporter) AddBreadcrumb(category, message string) {
	r.log.Debug().Str("category", category).Msg(message)
}

func (r *LogReporter) currentUser() *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

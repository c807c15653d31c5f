package ports

import "github.com/eduplat/campus-cli/internal/domain"

// Notifier is the toast collaborator: every error that reaches a caller has
// already been shown through it, so command code never re-displays.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

// Reporter is the telemetry collaborator. Handled local errors
// (duplicate submissions, auth escalations) are never forwarded to it.
type Reporter interface {
	CaptureException(err error, tags map[string]string)
	SetUser(user *domain.User)
	AddBreadcrumb(category, message string)
}

// Navigator routes the user back to the login entry point after a forced
// logout.
type Navigator interface {
	ToLogin()
}

// SessionTerminator destroys the live session. Implementations must be
// idempotent so that concurrent triggers collapse into one effect.
type SessionTerminator interface {
	ForceLogout(reason string)
}

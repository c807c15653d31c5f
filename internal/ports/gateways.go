package ports

import (
	"context"

	"github.com/eduplat/campus-cli/internal/domain"
)

// Authenticator is the auth endpoint surface the login orchestration needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
}

// ProfileGateway is the user-service settings surface.
type ProfileGateway interface {
	GetSettings(ctx context.Context, userID int64) (domain.UserSettings, error)
	UpdateSettings(ctx context.Context, userID int64, settings domain.UserSettings) error
}

// SettingsCache is durable local storage for the last known settings,
// consulted when the settings endpoint is unreachable.
type SettingsCache interface {
	Save(settings domain.UserSettings) error
	Load() (domain.UserSettings, error)
}

// Monitor is the session liveness probe lifecycle.
type Monitor interface {
	Start()
	Stop()
}

// Channel is the realtime connection lifecycle.
type Channel interface {
	Connect()
	Disconnect()
}

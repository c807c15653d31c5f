package application

import (
	"context"
	"fmt"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

// AuthService orchestrates the session lifecycle around the auth endpoints:
// a successful login persists the session, re-arms the forced-logout guard
// (via the monitor start) and brings up the heartbeat and realtime channel;
// logout tears all of it down even when the server call fails.
type AuthService struct {
	auth     ports.Authenticator
	session  ports.SessionStore
	reporter ports.Reporter
	monitor  ports.Monitor
	channel  ports.Channel
}

func NewAuthService(auth ports.Authenticator, session ports.SessionStore, reporter ports.Reporter, monitor ports.Monitor, channel ports.Channel) *AuthService {
	return &AuthService{
		auth:     auth,
		session:  session,
		reporter: reporter,
		monitor:  monitor,
		channel:  channel,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.Authenticated() {
		return domain.Session{}, fmt.Errorf("login response missing token or user: %w", domain.ErrNotAuthenticated)
	}

	if err := s.session.Save(session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.reporter.SetUser(session.User)
	s.reporter.AddBreadcrumb("auth", "user logged in")

	s.monitor.Start()
	if s.channel != nil {
		s.channel.Connect()
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	// Best effort on the server side; the local session dies regardless.
	serverErr := s.auth.Logout(ctx)

	if s.channel != nil {
		s.channel.Disconnect()
	}
	s.monitor.Stop()

	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.reporter.SetUser(nil)
	s.reporter.AddBreadcrumb("auth", "user logged out")
	return serverErr
}

package ports

import "github.com/eduplat/campus-cli/internal/domain"

// SessionStore is the source of truth for authentication state. Session is
// consulted on every request and timer tick, so reads come from memory;
// writes persist through to local storage.
type SessionStore interface {
	Session() domain.Session
	Save(session domain.Session) error
	UpdateUser(user domain.User) error
	Clear() error
}

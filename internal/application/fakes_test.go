package application

import (
	"context"
	"sync"

	"github.com/eduplat/campus-cli/internal/domain"
)

type fakeSessionStore struct {
	mu      sync.Mutex
	session domain.Session
	cleared int
}

func (f *fakeSessionStore) Session() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSessionStore) Save(session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = session
	return nil
}

func (f *fakeSessionStore) UpdateUser(user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session.User = &user
	return nil
}

func (f *fakeSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = domain.Session{}
	f.cleared++
	return nil
}

func (f *fakeSessionStore) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

type fakeNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (f *fakeNotifier) Success(string) {}
func (f *fakeNotifier) Warning(string) {}
func (f *fakeNotifier) Info(string)    {}

func (f *fakeNotifier) Error(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

func (f *fakeNotifier) errorMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.errors...)
}

type fakeNavigator struct {
	visits chan struct{}
}

func newFakeNavigator() *fakeNavigator {
	return &fakeNavigator{visits: make(chan struct{}, 4)}
}

func (f *fakeNavigator) ToLogin() {
	select {
	case f.visits <- struct{}{}:
	default:
	}
}

type fakeGuard struct {
	mu      sync.Mutex
	reasons []string
	resets  int
}

func (f *fakeGuard) ForceLogout(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
}

func (f *fakeGuard) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeGuard) logoutReasons() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reasons...)
}

func (f *fakeGuard) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

type fakeReporter struct {
	mu          sync.Mutex
	users       []*domain.User
	breadcrumbs []string
}

func (f *fakeReporter) CaptureException(error, map[string]string) {}

func (f *fakeReporter) SetUser(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user)
}

func (f *fakeReporter) AddBreadcrumb(_, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.breadcrumbs = append(f.breadcrumbs, message)
}

func (f *fakeReporter) lastUser() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.users) == 0 {
		return nil
	}
	return f.users[len(f.users)-1]
}

type fakeMonitor struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (f *fakeMonitor) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
}

func (f *fakeMonitor) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeMonitor) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.stops
}

type fakeChannel struct {
	mu          sync.Mutex
	connects    int
	disconnects int
}

func (f *fakeChannel) Connect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
}

func (f *fakeChannel) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
}

func (f *fakeChannel) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects, f.disconnects
}

type fakeAuthenticator struct {
	session   domain.Session
	loginErr  error
	logoutErr error
}

func (f *fakeAuthenticator) Login(context.Context, string, string) (domain.Session, error) {
	return f.session, f.loginErr
}

func (f *fakeAuthenticator) Logout(context.Context) error {
	return f.logoutErr
}

type fakeGateway struct {
	settings  domain.UserSettings
	getErr    error
	updateErr error
	updates   int
}

func (f *fakeGateway) GetSettings(context.Context, int64) (domain.UserSettings, error) {
	return f.settings, f.getErr
}

func (f *fakeGateway) UpdateSettings(_ context.Context, _ int64, settings domain.UserSettings) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.settings = settings
	f.updates++
	return nil
}

type fakeSettingsCache struct {
	mu      sync.Mutex
	stored  *domain.UserSettings
	saveErr error
	loadErr error
}

func (f *fakeSettingsCache) Save(settings domain.UserSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = &settings
	return nil
}

func (f *fakeSettingsCache) Load() (domain.UserSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return domain.UserSettings{}, f.loadErr
	}
	if f.stored == nil {
		return domain.UserSettings{}, domain.ErrSettingsNotFound
	}
	return *f.stored, nil
}

package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduplat/campus-cli/internal/domain"
)

func authenticatedStore() *fakeSessionStore {
	return &fakeSessionStore{session: domain.Session{
		Token: "tok",
		User:  &domain.User{ID: 3, Username: "ada"},
	}}
}

func waitForNavigation(t *testing.T, navigator *fakeNavigator) {
	t.Helper()
	select {
	case <-navigator.visits:
	case <-time.After(2 * time.Second):
		t.Fatal("navigation to login never happened")
	}
}

func TestForceLogoutClearsSessionAndNavigates(t *testing.T) {
	t.Parallel()

	session := authenticatedStore()
	notifier := &fakeNotifier{}
	navigator := newFakeNavigator()

	coordinator := NewLogoutCoordinator(session, notifier, navigator)
	coordinator.SetNavigateDelay(0)

	coordinator.ForceLogout("Token已失效")

	assert.Equal(t, 1, session.clearCount())
	assert.False(t, session.Session().Authenticated())
	require.Equal(t, []string{"Token已失效"}, notifier.errorMessages())
	waitForNavigation(t, navigator)
}

func TestForceLogoutDefaultsReason(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	navigator := newFakeNavigator()

	coordinator := NewLogoutCoordinator(authenticatedStore(), notifier, navigator)
	coordinator.SetNavigateDelay(0)

	coordinator.ForceLogout("")

	require.Len(t, notifier.errorMessages(), 1)
	assert.Equal(t, defaultLogoutReason, notifier.errorMessages()[0])
	waitForNavigation(t, navigator)
}

func TestForceLogoutCollapsesConcurrentTriggers(t *testing.T) {
	t.Parallel()

	session := authenticatedStore()
	notifier := &fakeNotifier{}
	navigator := newFakeNavigator()

	coordinator := NewLogoutCoordinator(session, notifier, navigator)
	coordinator.SetNavigateDelay(0)

	coordinator.ForceLogout("first")
	coordinator.ForceLogout("second")
	coordinator.ForceLogout("third")

	assert.Equal(t, 1, session.clearCount())
	assert.Equal(t, []string{"first"}, notifier.errorMessages())
}

func TestForceLogoutStopsAttachedMonitor(t *testing.T) {
	t.Parallel()

	monitor := &fakeMonitor{}
	coordinator := NewLogoutCoordinator(authenticatedStore(), &fakeNotifier{}, newFakeNavigator())
	coordinator.SetNavigateDelay(0)
	coordinator.AttachMonitor(monitor)

	coordinator.ForceLogout("bye")

	_, stops := monitor.counts()
	assert.Equal(t, 1, stops)
}

func TestResetRearmsCoordinator(t *testing.T) {
	t.Parallel()

	session := authenticatedStore()
	notifier := &fakeNotifier{}
	coordinator := NewLogoutCoordinator(session, notifier, newFakeNavigator())
	coordinator.SetNavigateDelay(0)

	coordinator.ForceLogout("first")
	coordinator.Reset()
	coordinator.ForceLogout("after relogin")

	assert.Equal(t, 2, session.clearCount())
	assert.Equal(t, []string{"first", "after relogin"}, notifier.errorMessages())
}

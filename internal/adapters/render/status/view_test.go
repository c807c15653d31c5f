package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduplat/campus-cli/internal/domain"
)

func authenticatedSnapshot() Snapshot {
	return Snapshot{
		Session: domain.Session{
			Token: "tok",
			User: &domain.User{
				ID:       11,
				Username: "ada",
				Name:     "Ada Qian",
				Email:    "ada@example.com",
				Role:     domain.RoleStudent,
			},
		},
	}
}

func TestRenderViewLoggedOut(t *testing.T) {
	t.Parallel()

	out := renderView(Snapshot{}, newStyles())

	assert.Contains(t, out, "Campus Session")
	assert.Contains(t, out, "Not logged in")
}

func TestRenderViewSessionDetails(t *testing.T) {
	t.Parallel()

	out := renderView(authenticatedSnapshot(), newStyles())

	assert.Contains(t, out, "Ada Qian")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "realtime: offline")
}

func TestRenderViewRealtimeConnected(t *testing.T) {
	t.Parallel()

	snapshot := authenticatedSnapshot()
	snapshot.RealtimeConnected = true

	assert.Contains(t, renderView(snapshot, newStyles()), "realtime: connected")
}

func TestRenderViewCoursesAndProgress(t *testing.T) {
	t.Parallel()

	snapshot := authenticatedSnapshot()
	snapshot.Courses = []CourseLine{
		{Title: "Algebra", Progress: 50},
		{Title: "History", Progress: 130},
	}

	out := renderView(snapshot, newStyles())

	assert.Contains(t, out, "courses: 2")
	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "100%") // clamped
}

func TestRenderViewCachedSettingsNote(t *testing.T) {
	t.Parallel()

	snapshot := authenticatedSnapshot()
	snapshot.Settings = &domain.UserSettings{
		Notifications: domain.NotificationSettings{HomeworkReminder: true},
		StudyGoal:     domain.StudyGoal{DailyMinutes: 45, WeeklyHours: 6},
	}
	snapshot.SettingsFromCache = true

	out := renderView(snapshot, newStyles())

	assert.Contains(t, out, "45 min/day")
	assert.Contains(t, out, "homework")
	assert.Contains(t, out, "cached settings")
}

func TestRenderViewServerCheck(t *testing.T) {
	t.Parallel()

	snapshot := authenticatedSnapshot()
	snapshot.Check = &ServerCheck{TokenValid: true, AccountActive: true}
	assert.Contains(t, renderView(snapshot, newStyles()), "token ok · account active")

	snapshot.Check = &ServerCheck{TokenValid: false, AccountActive: true}
	assert.Contains(t, renderView(snapshot, newStyles()), "token rejected")

	snapshot.Check = &ServerCheck{TokenValid: true, AccountActive: false}
	assert.Contains(t, renderView(snapshot, newStyles()), "account disabled")
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, clampPercent(-5))
	assert.Equal(t, 42, clampPercent(42))
	assert.Equal(t, 100, clampPercent(250))
}

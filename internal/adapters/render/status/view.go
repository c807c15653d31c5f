package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eduplat/campus-cli/internal/domain"
)

// CourseLine is one enrolled course with its progress percentage.
type CourseLine struct {
	Title    string
	Progress int
}

// ServerCheck is the outcome of asking the auth service whether the stored
// token is still honored and the account is still enabled.
type ServerCheck struct {
	TokenValid    bool
	AccountActive bool
}

// Snapshot is everything the status view shows.
type Snapshot struct {
	Session           domain.Session
	Settings          *domain.UserSettings
	SettingsFromCache bool
	Courses           []CourseLine
	RealtimeConnected bool
	Check             *ServerCheck
}

func renderView(snapshot Snapshot, s styles) string {
	lines := []string{
		s.title.Render("Campus Session"),
	}

	if !snapshot.Session.Authenticated() {
		lines = append(lines, s.empty.Render("Not logged in. Run `campus login` first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	user := snapshot.Session.User
	lines = append(lines,
		s.user.Render(fmt.Sprintf("%s (%s)", user.Name, user.Username)),
		s.detail.Render(fmt.Sprintf("%s · %s", user.Email, user.Role)),
		s.header.Render(realtimeLabel(snapshot.RealtimeConnected)),
	)

	if snapshot.Check != nil {
		lines = append(lines, renderServerCheck(*snapshot.Check, s))
	}

	if len(snapshot.Courses) > 0 {
		lines = append(lines, s.section.Render(renderCourses(snapshot.Courses, s)))
	}

	if snapshot.Settings != nil {
		lines = append(lines, s.section.Render(renderSettings(*snapshot.Settings, snapshot.SettingsFromCache, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderServerCheck(check ServerCheck, s styles) string {
	if check.TokenValid && check.AccountActive {
		return s.header.Render("session check: token ok · account active")
	}

	parts := make([]string, 0, 2)
	if !check.TokenValid {
		parts = append(parts, "token rejected")
	}
	if !check.AccountActive {
		parts = append(parts, "account disabled")
	}
	return s.warning.Render("session check: " + strings.Join(parts, " · "))
}

func realtimeLabel(connected bool) string {
	if connected {
		return "realtime: connected"
	}
	return "realtime: offline"
}

func renderCourses(courses []CourseLine, s styles) string {
	parts := []string{s.key.Render(fmt.Sprintf("courses: %d", len(courses)))}
	for _, course := range courses {
		bar := renderProgressBar(course.Progress, 20, s)
		label := s.detail.Render(course.Title)
		percent := s.barText.Render(fmt.Sprintf("%3d%%", clampPercent(course.Progress)))
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, "  ", bar, " ", percent, "  ", label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSettings(settings domain.UserSettings, fromCache bool, s styles) string {
	parts := []string{s.key.Render("study goal:")}
	parts = append(parts, s.detail.Render(fmt.Sprintf(
		"  %d min/day · %d h/week",
		settings.StudyGoal.DailyMinutes,
		settings.StudyGoal.WeeklyHours,
	)))

	enabled := enabledNotifications(settings.Notifications)
	if len(enabled) == 0 {
		parts = append(parts, s.empty.Render("  notifications off"))
	} else {
		parts = append(parts, s.detail.Render("  notify: "+strings.Join(enabled, ", ")))
	}

	if fromCache {
		parts = append(parts, s.cacheNote.Render("  (showing cached settings, server unreachable)"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func enabledNotifications(n domain.NotificationSettings) []string {
	enabled := make([]string, 0, 6)
	for _, item := range []struct {
		on   bool
		name string
	}{
		{n.HomeworkReminder, "homework"},
		{n.CourseUpdate, "courses"},
		{n.TeacherReply, "replies"},
		{n.SystemNotice, "system"},
		{n.EmailNotify, "email"},
		{n.PushNotify, "push"},
	} {
		if item.on {
			enabled = append(enabled, item.name)
		}
	}
	return enabled
}

func renderProgressBar(percent, width int, s styles) string {
	percent = clampPercent(percent)
	filled := percent * width / 100

	var bar strings.Builder
	bar.WriteString(s.barFill.Render(strings.Repeat("█", filled)))
	bar.WriteString(s.barEmpty.Render(strings.Repeat("░", width-filled)))
	return bar.String()
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

package domain

// NotificationSettings mirrors the per-user notification switches.
type NotificationSettings struct {
	HomeworkReminder bool `json:"homeworkReminder" toml:"homework_reminder"`
	CourseUpdate     bool `json:"courseUpdate" toml:"course_update"`
	TeacherReply     bool `json:"teacherReply" toml:"teacher_reply"`
	SystemNotice     bool `json:"systemNotice" toml:"system_notice"`
	EmailNotify      bool `json:"emailNotify" toml:"email_notify"`
	PushNotify       bool `json:"pushNotify" toml:"push_notify"`
}

type StudyGoal struct {
	DailyMinutes int `json:"dailyMinutes" toml:"daily_minutes"`
	WeeklyHours  int `json:"weeklyHours" toml:"weekly_hours"`
}

// UserSettings is the settings document the user service stores. A copy is
// cached locally as an offline fallback for when the endpoint fails.
type UserSettings struct {
	Notifications NotificationSettings `json:"notificationSettings" toml:"notifications"`
	StudyGoal     StudyGoal            `json:"studyGoal" toml:"study_goal"`
}

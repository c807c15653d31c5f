package domain

// User is the authenticated account record the backend returns at login.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Birthday    string `json:"birthday,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Status      int    `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
}

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Session holds the bearer token and the current user record. A partial
// session (token without user, or the reverse) counts as not authenticated.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

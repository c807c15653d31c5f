package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyMessageMapsKnownPatterns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"sql error", "java.sql.SQLException: bad statement", "Data processing failed, please try again later"},
		{"missing table", "Table 'campus.courses' doesn't exist", "System configuration error, please contact an administrator"},
		{"connection refused", "dial tcp 127.0.0.1:8080: connection refused", "Could not reach the server, please try again later"},
		{"bad gateway", "502 Bad Gateway", "The server is under maintenance, please try again later"},
		{"timeout", "context deadline exceeded (timeout)", "The request timed out, please try again later"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FriendlyMessage(tc.raw))
		})
	}
}

func TestFriendlyMessageCollapsesUnknownTechnicalText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, genericFriendlyMessage, FriendlyMessage("NullPointerException at line 42"))
	assert.Equal(t, genericFriendlyMessage, FriendlyMessage(""))
}

func TestFriendlyMessagePassesHumanTextThrough(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Course is full", FriendlyMessage("Course is full"))
}

func TestShouldForceLogout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"empty", "", false},
		{"plain permission denial", "You do not have permission to grade homework", false},
		{"disabled account chinese", "账号已被禁用，请联系管理员", true},
		{"disabled account english", "Your account has been disabled", true},
		{"token expired", "Token已过期，请重新登录", true},
		{"token invalid english", "token invalid, please re-login", true},
		{"expiry without token word", "登录已过期", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ShouldForceLogout(tc.message))
		})
	}
}

func TestIndicatesSessionRevoked(t *testing.T) {
	t.Parallel()

	assert.True(t, IndicatesSessionRevoked("会话已过期"))
	assert.True(t, IndicatesSessionRevoked("账号已在其他设备登录"))
	assert.True(t, IndicatesSessionRevoked("Session expired"))
	assert.False(t, IndicatesSessionRevoked("heartbeat rejected"))
}

func TestRequestErrorClassification(t *testing.T) {
	t.Parallel()

	auth := NewAuthError("session gone")
	assert.True(t, IsAuthError(auth))
	assert.True(t, IsHandled(auth))
	assert.False(t, IsDuplicateError(auth))

	duplicate := NewDuplicateError("slow down")
	assert.True(t, IsDuplicateError(duplicate))
	assert.True(t, duplicate.SkipReport)

	cause := errors.New("dial tcp: connection refused")
	transport := NewTransportError("friendly words", cause)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", transport), cause)
	assert.False(t, IsAuthError(errors.New("plain")))
}

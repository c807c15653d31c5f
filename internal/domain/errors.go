package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSettingsNotFound = errors.New("cached settings not found")
)

// ErrorKind classifies request failures so callers and the telemetry
// reporter do not have to inspect status codes themselves.
type ErrorKind int

const (
	// ErrorBusiness is a non-success envelope that is not auth-related.
	ErrorBusiness ErrorKind = iota
	// ErrorTransport is a network failure or an unparsable response.
	ErrorTransport
	// ErrorAuth is a detected authentication failure; the session has
	// already been destroyed by the time the caller sees it.
	ErrorAuth
	// ErrorDuplicate is a submission rejected by the in-flight guard.
	ErrorDuplicate
)

// RequestError is the error type the request engine returns. Handled marks
// errors already surfaced to the user so callers never toast them twice;
// SkipReport excludes expected local errors from telemetry.
type RequestError struct {
	Kind       ErrorKind
	Message    string
	Handled    bool
	SkipReport bool
	Cause      error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Cause }

func NewDuplicateError(message string) *RequestError {
	return &RequestError{Kind: ErrorDuplicate, Message: message, Handled: true, SkipReport: true}
}

func NewAuthError(message string) *RequestError {
	return &RequestError{Kind: ErrorAuth, Message: message, Handled: true, SkipReport: true}
}

func NewBusinessError(message string) *RequestError {
	return &RequestError{Kind: ErrorBusiness, Message: message, Handled: true}
}

func NewTransportError(message string, cause error) *RequestError {
	return &RequestError{Kind: ErrorTransport, Message: message, Handled: true, Cause: cause}
}

// IsHandled reports whether err has already been displayed to the user.
func IsHandled(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Handled
}

// IsAuthError reports whether err destroyed the session.
func IsAuthError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == ErrorAuth
}

// IsDuplicateError reports whether err came from the duplicate-submission guard.
func IsDuplicateError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == ErrorDuplicate
}

type friendlyMapping struct {
	substring string
	message   string
}

// Ordered most specific first: schema errors, then connectivity, then 5xx,
// then the generic timeout. Matching is case-insensitive.
var friendlyMappings = []friendlyMapping{
	{"database", "Data processing failed, please try again later"},
	{"sql", "Data processing failed, please try again later"},
	{"table", "System configuration error, please contact an administrator"},
	{"column", "System configuration error, please contact an administrator"},
	{"doesn't exist", "System configuration error, please contact an administrator"},
	{"network error", "Network connection failed, check your network and retry"},
	{"no such host", "Could not reach the server, please try again later"},
	{"connection refused", "Could not reach the server, please try again later"},
	{"connection reset", "Lost the server connection, please try again later"},
	{"internal server error", "The server is busy, please try again later"},
	{"500", "The server is busy, please try again later"},
	{"502", "The server is under maintenance, please try again later"},
	{"503", "The service is temporarily unavailable, please try again later"},
	{"504", "The server took too long to respond, please try again later"},
	{"timeout", "The request timed out, please try again later"},
}

const genericFriendlyMessage = "The operation failed, please try again later"

var technicalErrorPattern = regexp.MustCompile(`(?i)exception|error|sql|null|undefined|cannot|failed`)

// FriendlyMessage translates raw error text into user-facing wording.
// Messages that look technical but match no known pattern collapse to a
// generic apology; anything already human-readable passes through.
func FriendlyMessage(raw string) string {
	if raw == "" {
		return genericFriendlyMessage
	}

	lower := strings.ToLower(raw)
	for _, mapping := range friendlyMappings {
		if strings.Contains(lower, mapping.substring) {
			return mapping.message
		}
	}

	if technicalErrorPattern.MatchString(raw) {
		return genericFriendlyMessage
	}

	return raw
}

// Gateway phrases that mean the session itself is dead. The backend speaks
// Chinese; the English variants cover proxies that rewrite messages.
var disabledAccountPhrases = []string{
	"账号已被禁用",
	"账户已被禁用",
	"account disabled",
	"account has been disabled",
}

var tokenRevokedPhrases = []string{
	"失效",
	"过期",
	"无效",
	"重新登录",
	"expired",
	"invalid",
	"re-login",
}

// ShouldForceLogout decides whether a 403 message marks a dead session. A
// bare permission denial must not destroy the session; only disabled-account
// or invalid-token phrasing escalates.
func ShouldForceLogout(message string) bool {
	if message == "" {
		return false
	}

	lower := strings.ToLower(message)
	for _, phrase := range disabledAccountPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	if !strings.Contains(lower, "token") {
		return false
	}
	for _, phrase := range tokenRevokedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var sessionRevokedPhrases = []string{
	"过期",
	"其他设备",
	"其他端",
	"expired",
	"another device",
	"elsewhere",
}

// IndicatesSessionRevoked reports whether a heartbeat failure message names
// session expiry or a concurrent login on another device.
func IndicatesSessionRevoked(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range sessionRevokedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

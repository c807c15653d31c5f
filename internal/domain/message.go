package domain

import "encoding/json"

// MessageType discriminates frames on the notification socket.
type MessageType string

const (
	MessageAuth         MessageType = "AUTH"
	MessagePing         MessageType = "PING"
	MessagePong         MessageType = "PONG"
	MessageAuthOK       MessageType = "AUTH_OK"
	MessageAuthFailed   MessageType = "AUTH_FAILED"
	MessageForceLogout  MessageType = "FORCE_LOGOUT"
	MessageNotification MessageType = "NOTIFICATION"
)

// SocketMessage is one frame of the realtime protocol. Raw keeps the full
// frame so notification payload fields survive the discriminator decode.
type SocketMessage struct {
	Type   MessageType `json:"type"`
	Token  string      `json:"token,omitempty"`
	Reason string      `json:"reason,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Notification is a server-pushed message for the current user.
type Notification struct {
	Type    MessageType `json:"type"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Level   string      `json:"level,omitempty"`
	SentAt  string      `json:"sentAt,omitempty"`
}

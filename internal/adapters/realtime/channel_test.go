package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduplat/campus-cli/internal/domain"
)

type fakeSessionStore struct {
	mu      sync.Mutex
	session domain.Session
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
	return nil
}

// socketServer accepts websocket upgrades and hands each connection to the
// test through a channel.
type socketServer struct {
	server *httptest.Server
	conns  chan *websocket.Conn
	urls   chan string
}

func newSocketServer(t *testing.T) *socketServer {
	t.Helper()

	upgrader := websocket.Upgrader{}
	s := &socketServer{
		conns: make(chan *websocket.Conn, 4),
		urls:  make(chan string, 4),
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.urls <- r.URL.String()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.conns <- conn
	}))
	t.Cleanup(s.server.Close)

	return s
}

func (s *socketServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws/notification"
}

func (s *socketServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-s.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("no websocket connection arrived")
		return nil
	}
}

func (s *socketServer) requestURL(t *testing.T) string {
	t.Helper()
	select {
	case u := <-s.urls:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no upgrade request arrived")
		return ""
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) domain.SocketMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var message domain.SocketMessage
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &message))
	return message
}

func newTestChannel(t *testing.T, server *socketServer, reconnectDelay time.Duration) (*Channel, *fakeSessionStore) {
	t.Helper()

	session := &fakeSessionStore{session: domain.Session{
		Token: "socket-secret-token",
		User:  &domain.User{ID: 4, Username: "ada"},
	}}

	channel, err := NewChannel(Config{
		URL:            server.wsURL(),
		ReconnectDelay: reconnectDelay,
		Logger:         zerolog.Nop(),
	}, session)
	require.NoError(t, err)
	t.Cleanup(channel.Disconnect)

	return channel, session
}

func waitFor(t *testing.T, events <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestConnectAuthenticatesWithFrameNotURI(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	connected := make(chan struct{}, 1)
	channel.OnConnected(func() {
		select {
		case connected <- struct{}{}:
		default:
		}
	})

	channel.Connect()

	conn := server.accept(t)
	defer func() { _ = conn.Close() }()

	// The token travels only in the post-connect AUTH frame.
	assert.NotContains(t, server.requestURL(t), "socket-secret-token")
	assert.NotContains(t, channel.Endpoint(), "socket-secret-token")

	auth := readMessage(t, conn)
	assert.Equal(t, domain.MessageAuth, auth.Type)
	assert.Equal(t, "socket-secret-token", auth.Token)

	waitFor(t, connected, "connected event")
	assert.Equal(t, StateOpen, channel.State())
}

func TestConnectWithoutTokenIsNoOp(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, session := newTestChannel(t, server, time.Minute)
	require.NoError(t, session.Clear())

	channel.Connect()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, StateIdle, channel.State())
	select {
	case <-server.conns:
		t.Fatal("socket connected without a token")
	default:
	}
}

func TestNotificationsAreDispatched(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	notifications := make(chan domain.Notification, 1)
	channel.OnNotification(func(n domain.Notification) {
		select {
		case notifications <- n:
		default:
		}
	})

	channel.Connect()
	conn := server.accept(t)
	defer func() { _ = conn.Close() }()
	readMessage(t, conn) // AUTH

	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":    "NOTIFICATION",
		"title":   "New homework",
		"content": "Algebra set 3 is due Friday",
		"level":   "info",
	}))

	select {
	case n := <-notifications:
		assert.Equal(t, "New homework", n.Title)
		assert.Equal(t, "Algebra set 3 is due Friday", n.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestForceLogoutFrameReachesListeners(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	reasons := make(chan string, 1)
	channel.OnForceLogout(func(reason string) {
		select {
		case reasons <- reason:
		default:
		}
	})

	channel.Connect()
	conn := server.accept(t)
	defer func() { _ = conn.Close() }()
	readMessage(t, conn) // AUTH

	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":   "FORCE_LOGOUT",
		"reason": "账号已在其他设备登录",
	}))

	select {
	case reason := <-reasons:
		assert.Equal(t, "账号已在其他设备登录", reason)
	case <-time.After(2 * time.Second):
		t.Fatal("force logout never arrived")
	}
}

func TestMalformedFramesAreDropped(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	notifications := make(chan domain.Notification, 1)
	channel.OnNotification(func(n domain.Notification) {
		select {
		case notifications <- n:
		default:
		}
	})

	channel.Connect()
	conn := server.accept(t)
	defer func() { _ = conn.Close() }()
	readMessage(t, conn) // AUTH

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("this is not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":  "NOTIFICATION",
		"title": "still alive",
	}))

	select {
	case n := <-notifications:
		assert.Equal(t, "still alive", n.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("channel stopped dispatching after a malformed frame")
	}
}

func TestUnexpectedCloseReconnectsAfterDelay(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, 50*time.Millisecond)

	disconnected := make(chan struct{}, 4)
	channel.OnDisconnected(func() {
		select {
		case disconnected <- struct{}{}:
		default:
		}
	})

	channel.Connect()
	first := server.accept(t)
	readMessage(t, first) // AUTH for the first connection
	require.NoError(t, first.Close())

	waitFor(t, disconnected, "disconnect event")

	// The channel redials on its own after the delay and re-authenticates.
	second := server.accept(t)
	defer func() { _ = second.Close() }()
	auth := readMessage(t, second)
	assert.Equal(t, domain.MessageAuth, auth.Type)
}

func TestManualDisconnectSuppressesReconnect(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, 50*time.Millisecond)

	channel.Connect()
	conn := server.accept(t)
	defer func() { _ = conn.Close() }()
	readMessage(t, conn) // AUTH

	channel.Disconnect()

	select {
	case <-server.conns:
		t.Fatal("channel reconnected after a manual disconnect")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, StateClosed, channel.State())
}

func TestImmediateReconnectAfterManualDisconnect(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	connected := make(chan struct{}, 2)
	channel.OnConnected(func() {
		select {
		case connected <- struct{}{}:
		default:
		}
	})

	channel.Connect()
	first := server.accept(t)
	readMessage(t, first) // AUTH
	waitFor(t, connected, "first connection")

	// Disconnect then Connect back to back, before the read loop has had a
	// chance to observe the close. The second dial must still go out.
	channel.Disconnect()
	channel.Connect()

	second := server.accept(t)
	defer func() { _ = second.Close() }()
	auth := readMessage(t, second)
	assert.Equal(t, domain.MessageAuth, auth.Type)
	assert.Equal(t, "socket-secret-token", auth.Token)
	waitFor(t, connected, "second connection")
	assert.Equal(t, StateOpen, channel.State())
	_ = first.Close()
}

func TestReconnectSkippedWhenTokenGoneByDelay(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, session := newTestChannel(t, server, 100*time.Millisecond)

	channel.Connect()
	conn := server.accept(t)
	readMessage(t, conn) // AUTH

	// Logout before the reconnect timer fires.
	require.NoError(t, session.Clear())
	require.NoError(t, conn.Close())

	select {
	case <-server.conns:
		t.Fatal("channel reconnected without a token")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestAuthFailedFrameDisconnects(t *testing.T) {
	t.Parallel()

	server := newSocketServer(t)
	channel, _ := newTestChannel(t, server, time.Minute)

	disconnected := make(chan struct{}, 1)
	channel.OnDisconnected(func() {
		select {
		case disconnected <- struct{}{}:
		default:
		}
	})

	channel.Connect()
	conn := server.accept(t)
	defer func() { _ = conn.Close() }()
	readMessage(t, conn) // AUTH

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "AUTH_FAILED"}))

	waitFor(t, disconnected, "disconnect after rejected auth")

	select {
	case <-server.conns:
		t.Fatal("channel reconnected after the server rejected its auth")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewChannelRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewChannel(Config{URL: "https://campus.example.com/ws"}, &fakeSessionStore{})
	assert.Error(t, err)
}

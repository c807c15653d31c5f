package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const (
	defaultPingInterval   = 30 * time.Second
	defaultReconnectDelay = 5 * time.Second
	closeGracePeriod      = time.Second
)

// State is the connection lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed
)

// Channel is a reconnecting notification socket. The token never appears in
// the connection URI; authentication happens with an explicit AUTH frame
// after the socket opens. Unexpected closes schedule one reconnect attempt
// after a fixed delay, gated on a token still being present; an intentional
// Disconnect suppresses that.
type Channel struct {
	url            string
	dialer         *websocket.Dialer
	session        ports.SessionStore
	pingInterval   time.Duration
	reconnectDelay time.Duration
	log            zerolog.Logger
	events         *registry

	mu        sync.Mutex
	state     State
	manual    bool
	conn      *websocket.Conn
	reconnect *time.Timer
	pingStop  chan struct{}

	writeMu sync.Mutex
}

var _ ports.Channel = (*Channel)(nil)

type Config struct {
	// URL is the fixed socket endpoint, e.g. "wss://campus.example.com/ws/notification".
	URL            string
	Dialer         *websocket.Dialer
	PingInterval   time.Duration
	ReconnectDelay time.Duration
	Logger         zerolog.Logger
}

func NewChannel(cfg Config, session ports.SessionStore) (*Channel, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse socket url: %w", err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return nil, errors.New("socket url must use ws or wss")
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	reconnectDelay := cfg.ReconnectDelay
	if reconnectDelay <= 0 {
		reconnectDelay = defaultReconnectDelay
	}

	return &Channel{
		url:            parsed.String(),
		dialer:         dialer,
		session:        session,
		pingInterval:   pingInterval,
		reconnectDelay: reconnectDelay,
		log:            cfg.Logger,
		events:         newRegistry(),
	}, nil
}

// Endpoint returns the connection URI. It is derived from configuration
// only and never carries credentials.
func (c *Channel) Endpoint() string { return c.url }

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the socket. No-op while already connecting or open, and
// without a token. Cancels a pending reconnect and clears the manual
// disconnect gate.
func (c *Channel) Connect() {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateOpen {
		c.mu.Unlock()
		return
	}

	token := c.session.Session().Token
	if token == "" {
		c.mu.Unlock()
		c.log.Warn().Msg("realtime connect skipped: no login token")
		return
	}

	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	c.manual = false
	c.state = StateConnecting
	c.mu.Unlock()

	go c.dial(token)
}

// Disconnect closes the socket intentionally: the close handler will not
// schedule a reconnect for this close.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.manual = true
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	if c.pingStop != nil {
		close(c.pingStop)
		c.pingStop = nil
	}
	conn := c.conn
	if c.state != StateIdle {
		// Drop out of StateOpen immediately so a Connect issued right after
		// (logout then login) is not swallowed by the already-open guard.
		// The read loop still finishes teardown for the old socket.
		c.state = StateClosed
	}
	c.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(closeGracePeriod)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
		// The read loop observes the closed socket and finishes teardown.
	}
}

// OnConnected registers fn for socket-open events; the returned func
// unregisters it.
func (c *Channel) OnConnected(fn func()) func() { return c.events.onConnected(fn) }

func (c *Channel) OnDisconnected(fn func()) func() { return c.events.onDisconnected(fn) }

func (c *Channel) OnForceLogout(fn func(reason string)) func() { return c.events.onForceLogout(fn) }

func (c *Channel) OnNotification(fn func(domain.Notification)) func() {
	return c.events.onNotification(fn)
}

func (c *Channel) dial(token string) {
	conn, resp, err := c.dialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("realtime dial failed")
		c.mu.Lock()
		c.state = StateClosed
		manual := c.manual
		c.mu.Unlock()

		c.events.notifyDisconnected()
		if !manual {
			c.scheduleReconnect()
		}
		return
	}

	c.mu.Lock()
	if c.manual {
		// Disconnect raced the dial; drop the fresh socket.
		c.state = StateClosed
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.state = StateOpen
	stop := make(chan struct{})
	c.pingStop = stop
	c.mu.Unlock()

	if err := c.write(domain.SocketMessage{Type: domain.MessageAuth, Token: token}); err != nil {
		c.log.Warn().Err(err).Msg("realtime auth frame failed")
		_ = conn.Close()
		c.handleClose(conn)
		return
	}

	go c.pingLoop(stop)
	c.events.notifyConnected()
	c.readLoop(conn)
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(conn)
			return
		}
		c.dispatch(data)
	}
}

func (c *Channel) dispatch(data []byte) {
	var message domain.SocketMessage
	if err := json.Unmarshal(data, &message); err != nil {
		c.log.Error().Err(err).Msg("malformed socket message dropped")
		return
	}
	message.Raw = data

	switch message.Type {
	case domain.MessageForceLogout:
		c.events.notifyForceLogout(message.Reason)
	case domain.MessageNotification:
		var notification domain.Notification
		if err := json.Unmarshal(data, &notification); err != nil {
			c.log.Error().Err(err).Msg("malformed notification dropped")
			return
		}
		c.events.notifyNotification(notification)
	case domain.MessageAuthOK:
		c.log.Debug().Msg("realtime authenticated")
	case domain.MessageAuthFailed:
		c.log.Warn().Msg("realtime authentication rejected")
		c.Disconnect()
	case domain.MessagePong:
	default:
		c.log.Debug().Str("type", string(message.Type)).Msg("unknown socket message type")
	}
}

func (c *Channel) handleClose(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	if c.pingStop != nil {
		close(c.pingStop)
		c.pingStop = nil
	}
	c.state = StateClosed
	manual := c.manual
	c.mu.Unlock()

	c.events.notifyDisconnected()
	if !manual {
		c.scheduleReconnect()
	}
}

func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reconnect != nil {
		c.reconnect.Stop()
	}
	// Connect re-checks the token, so a logout during the delay leaves the
	// channel down instead of reconnecting in a loop.
	c.reconnect = time.AfterFunc(c.reconnectDelay, c.Connect)
}

func (c *Channel) pingLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.write(domain.SocketMessage{Type: domain.MessagePing}); err != nil {
				return
			}
		}
	}
}

func (c *Channel) write(message domain.SocketMessage) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("socket is not open")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(message)
}

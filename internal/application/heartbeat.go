package application

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const (
	defaultHeartbeatInterval = 30 * time.Second
	defaultMaxFailures       = 2
	heartbeatPath            = "auth/heartbeat"
	maxHeartbeatBodyBytes    = 1 << 16

	sessionExpiredMessage = "Your session has expired, please log in again"
)

// logoutGuard is the slice of the coordinator the monitor needs: escalate,
// and re-arm on a fresh start.
type logoutGuard interface {
	ports.SessionTerminator
	Reset()
}

// Heartbeat probes the liveness endpoint on a fixed interval. It talks to
// the transport directly rather than through the request engine: heartbeat
// failures are expected transient events, not user-facing errors, so no
// toast and no telemetry. Repeated business failures escalate to forced
// logout; repeated network failures only stop the monitor, since a network
// hiccup is not proof of an invalid session.
type Heartbeat struct {
	endpoint    string
	httpClient  *http.Client
	session     ports.SessionStore
	guard       logoutGuard
	interval    time.Duration
	maxFailures int
	log         zerolog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	failures int
}

type HeartbeatConfig struct {
	BaseURL     string
	HTTPClient  *http.Client
	Interval    time.Duration
	MaxFailures int
	Logger      zerolog.Logger
}

func NewHeartbeat(cfg HeartbeatConfig, session ports.SessionStore, guard logoutGuard) (*Heartbeat, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse heartbeat base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	endpoint, err := base.Parse(heartbeatPath)
	if err != nil {
		return nil, fmt.Errorf("build heartbeat endpoint: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}

	return &Heartbeat{
		endpoint:    endpoint.String(),
		httpClient:  httpClient,
		session:     session,
		guard:       guard,
		interval:    interval,
		maxFailures: maxFailures,
		log:         cfg.Logger,
	}, nil
}

// Start begins probing. It is a no-op without a token; otherwise it stops
// any previous loop, resets the failure counter and re-arms the forced
// logout guard.
func (h *Heartbeat) Start() {
	if h.session.Session().Token == "" {
		return
	}

	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.failures = 0
	h.mu.Unlock()

	h.guard.Reset()
	go h.run(ctx)
}

// Stop halts the probe loop. Safe to call from any goroutine, repeatedly.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *Heartbeat) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Re-read the token every tick: it may have rotated or
			// disappeared since the loop was scheduled.
			if h.session.Session().Token == "" {
				h.Stop()
				return
			}
			h.probe(ctx)
		}
	}
}

func (h *Heartbeat) probe(ctx context.Context) {
	result, err := h.send(ctx)
	if err != nil {
		failures := h.recordFailure()
		h.log.Warn().Err(err).Int("failures", failures).Int("max", h.maxFailures).
			Msg("heartbeat network error")
		if failures >= h.maxFailures {
			h.log.Error().Msg("heartbeat failed repeatedly, stopping monitor")
			h.Stop()
		}
		return
	}

	if result.OK() {
		h.mu.Lock()
		h.failures = 0
		h.mu.Unlock()
		return
	}

	failures := h.recordFailure()
	h.log.Warn().Int("failures", failures).Int("max", h.maxFailures).
		Str("message", result.Message).Msg("heartbeat rejected")
	if failures >= h.maxFailures {
		if domain.IndicatesSessionRevoked(result.Message) {
			h.guard.ForceLogout(result.Message)
		} else {
			h.guard.ForceLogout(sessionExpiredMessage)
		}
	}
}

func (h *Heartbeat) recordFailure() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures++
	return h.failures
}

func (h *Heartbeat) send(ctx context.Context) (domain.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, nil)
	if err != nil {
		return domain.Result{}, fmt.Errorf("create heartbeat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.session.Session().Token)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return domain.Result{}, fmt.Errorf("send heartbeat: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHeartbeatBodyBytes))
	if err != nil {
		return domain.Result{}, fmt.Errorf("read heartbeat response: %w", err)
	}

	return domain.ParseResult(resp.StatusCode, resp.Status, body), nil
}

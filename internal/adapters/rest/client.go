package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

const (
	duplicateSubmissionMessage = "Your request is still being processed, please do not resubmit"
	loginExpiredMessage        = "Your login has expired, please log in again"
)

// Client is the request engine: it wraps the transport with bearer-token
// injection, content-type defaulting, duplicate-submission suppression,
// envelope normalization, friendly-error translation and forced-logout
// escalation. Construct one per process and share it.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	session    ports.SessionStore
	notifier   ports.Notifier
	reporter   ports.Reporter
	terminator ports.SessionTerminator
	clock      ports.Clock
	cache      *responseCache
	pending    *pendingTracker
	log        zerolog.Logger
}

type Config struct {
	// BaseURL is the API prefix, e.g. "https://campus.example.com/api".
	BaseURL    string
	HTTPClient *http.Client
	CacheTTL   time.Duration
	Clock      ports.Clock
	Logger     zerolog.Logger
}

func NewClient(cfg Config, session ports.SessionStore, notifier ports.Notifier, reporter ports.Reporter, terminator ports.SessionTerminator) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		session:    session,
		notifier:   notifier,
		reporter:   reporter,
		terminator: terminator,
		clock:      clock,
		cache:      newResponseCache(cfg.CacheTTL, clock),
		pending:    newPendingTracker(),
		log:        cfg.Logger,
	}, nil
}

// Do performs one request and returns the normalized envelope. Every error
// it returns has already been surfaced to the user via the notifier.
func (c *Client) Do(ctx context.Context, path string, opts Options) (domain.Result, error) {
	release, err := c.guard(path, opts)
	if err != nil {
		return domain.Result{}, err
	}
	defer release()

	resp, err := c.send(ctx, path, opts)
	if err != nil {
		return domain.Result{}, c.transportFailure(path, opts, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Result{}, c.transportFailure(path, opts, fmt.Errorf("read response body: %w", err))
	}

	result := domain.ParseResult(resp.StatusCode, resp.Status, body)

	if err := c.checkAuth(resp.StatusCode, result.Code, result.Message); err != nil {
		return domain.Result{}, err
	}

	if !statusOK(resp.StatusCode) || !result.OK() {
		return domain.Result{}, c.businessFailure(path, opts, result.Message)
	}

	if opts.mutating() {
		c.cache.clear()
	}
	return result, nil
}

// DoRaw skips envelope parsing and hands the transport response to the
// caller, who owns closing the body. Used for file downloads and other
// endpoints that need headers or binary content. Auth, dedup and error
// translation apply exactly as in Do.
func (c *Client) DoRaw(ctx context.Context, path string, opts Options) (*http.Response, error) {
	release, err := c.guard(path, opts)
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := c.send(ctx, path, opts)
	if err != nil {
		return nil, c.transportFailure(path, opts, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.terminator.ForceLogout(loginExpiredMessage)
		return nil, domain.NewAuthError(loginExpiredMessage)
	}

	if resp.StatusCode == http.StatusForbidden {
		message := extractResponseMessage(resp)
		drain(resp)
		if domain.ShouldForceLogout(message) {
			c.terminator.ForceLogout(message)
			return nil, domain.NewAuthError(message)
		}
		return nil, c.businessFailure(path, opts, message)
	}

	if !statusOK(resp.StatusCode) {
		message := extractResponseMessage(resp)
		drain(resp)
		return nil, c.businessFailure(path, opts, message)
	}

	if opts.mutating() {
		c.cache.clear()
	}
	return resp, nil
}

// Blob is a fully buffered download with the filename the server suggested.
type Blob struct {
	Data        []byte
	Filename    string
	ContentType string
}

// DoBlob layers filename extraction on top of DoRaw. When the server sends
// no usable Content-Disposition the filename falls back to a generated one.
func (c *Client) DoBlob(ctx context.Context, path string, opts Options) (Blob, error) {
	resp, err := c.DoRaw(ctx, path, opts)
	if err != nil {
		return Blob{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Blob{}, c.transportFailure(path, opts, fmt.Errorf("read download body: %w", err))
	}

	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = fmt.Sprintf("download-%d", c.clock.Now().Unix())
	}

	return Blob{
		Data:        data,
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// CachedGet consults the response cache before hitting the engine and
// stores successful reads afterwards. Keys are the literal request URL;
// requests whose identity varies by header must not use this path.
func (c *Client) CachedGet(ctx context.Context, path string) (domain.Result, error) {
	if result, ok := c.cache.get(path); ok {
		return result, nil
	}

	result, err := c.Do(ctx, path, Options{})
	if err != nil {
		return domain.Result{}, err
	}

	c.cache.put(path, result)
	return result, nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.cache.clear()
}

func (c *Client) guard(path string, opts Options) (func(), error) {
	if !opts.mutating() {
		return func() {}, nil
	}

	key := requestKey(path, opts)
	if !c.pending.acquire(key) {
		c.log.Warn().Str("key", key).Msg("duplicate submission blocked")
		c.notifier.Warning(duplicateSubmissionMessage)
		return nil, domain.NewDuplicateError(duplicateSubmissionMessage)
	}
	return func() { c.pending.release(key) }, nil
}

func (c *Client) send(ctx context.Context, path string, opts Options) (*http.Response, error) {
	endpoint, err := c.base.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse request path: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method(), endpoint.String(), opts.Body.reader())
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for name, values := range opts.Header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	if token := c.session.Session().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if !opts.Body.empty() && req.Header.Get("Content-Type") == "" {
		switch opts.Body.kind {
		case payloadJSON:
			req.Header.Set("Content-Type", "application/json")
		case payloadForm, payloadParams:
			req.Header.Set("Content-Type", opts.Body.contentType)
		}
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkAuth(httpStatus, code int, message string) error {
	unauthorized := httpStatus == http.StatusUnauthorized || code == http.StatusUnauthorized
	forbidden := (httpStatus == http.StatusForbidden || code == http.StatusForbidden) &&
		domain.ShouldForceLogout(message)
	if !unauthorized && !forbidden {
		return nil
	}

	reason := message
	if reason == "" {
		reason = loginExpiredMessage
	}
	c.terminator.ForceLogout(reason)
	return domain.NewAuthError(reason)
}

func (c *Client) businessFailure(path string, opts Options, message string) error {
	friendly := domain.FriendlyMessage(message)
	c.notifier.Error(friendly)

	err := domain.NewBusinessError(friendly)
	if message != "" && message != friendly {
		err.Cause = errors.New(message)
	}
	c.reporter.CaptureException(err, c.tags(path, opts))
	return err
}

func (c *Client) transportFailure(path string, opts Options, cause error) error {
	friendly := domain.FriendlyMessage(cause.Error())
	c.notifier.Error(friendly)

	err := domain.NewTransportError(friendly, cause)
	c.reporter.CaptureException(err, c.tags(path, opts))
	return err
}

func (c *Client) tags(path string, opts Options) map[string]string {
	return map[string]string{
		"type":   "api_error",
		"url":    path,
		"method": opts.method(),
	}
}

func statusOK(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// extractResponseMessage pulls a human-readable message out of an error
// response for the raw variant, which never parses the full envelope.
func extractResponseMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil || len(body) == 0 {
		if resp.Status != "" {
			return resp.Status
		}
		return fmt.Sprintf("request failed (%d)", resp.StatusCode)
	}

	var partial struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &partial); err == nil && partial.Message != "" {
		return partial.Message
	}
	return string(body)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	return parsed, nil
}

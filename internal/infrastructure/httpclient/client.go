// Package httpclient is the single outbound channel to the Curato backend.
//
// Every call attaches the stored bearer token, and every failure is
// normalized into a *domain.APIError of one of three kinds: the server
// answered with an error status, no response arrived, or the request could
// not be built. A 401 on any endpoint other than login resets the session.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
	"github.com/curato/curation-client/internal/metrics"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultLoginPath  = "/user/login"
	DefaultLoginRoute = "/login"

	// NetworkErrorMessage is surfaced when no response was received.
	NetworkErrorMessage = "network error"
	// GenericErrorMessage is used when the server gave no message of its own.
	GenericErrorMessage = "something went wrong"

	headerRequestID = "X-Request-ID"
)

// Config captures the fixed settings of the channel.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// LoginPath identifies the login endpoint; a 401 from it never resets the session.
	LoginPath string
	// LoginRoute is where the navigator is sent after the session expired.
	LoginRoute string
}

// Client performs JSON requests against one backend origin.
type Client struct {
	baseURL    string
	loginPath  string
	loginRoute string
	httpClient *http.Client
	store      ports.TokenStore
	navigator  ports.Navigator
	log        zerolog.Logger

	mu    sync.RWMutex
	hooks []func(context.Context)
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client. Its Timeout is left as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNavigator sets the navigator used to force the login route on expiry.
func WithNavigator(nav ports.Navigator) Option {
	return func(c *Client) {
		c.navigator = nav
	}
}

// New creates a Client. Defaults apply to zero-valued Config fields.
func New(cfg Config, store ports.TokenStore, log zerolog.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	loginRoute := cfg.LoginRoute
	if loginRoute == "" {
		loginRoute = DefaultLoginRoute
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loginPath:  loginPath,
		loginRoute: loginRoute,
		store:      store,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.navigator == nil {
		c.navigator = ports.NavigatorFunc(func(route string) {
			c.log.Info().Str("route", route).Msg("navigation requested")
		})
	}
	return c
}

// OnSessionExpired registers fn to run after a 401 reset the session.
func (c *Client) OnSessionExpired(fn func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Do sends body (JSON-encoded when non-nil) and decodes a successful response
// into out (when non-nil). Every returned error is a *domain.APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "request").Inc()
		return requestError(err)
	}
	reqLog := c.log.With().
		Str("request_id", req.Header.Get(headerRequestID)).
		Str("method", method).
		Str("path", path).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network").Inc()
		reqLog.Warn().Err(err).Msg("backend unreachable")
		return &domain.APIError{Kind: domain.KindNetwork, Message: NetworkErrorMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network").Inc()
		reqLog.Warn().Err(err).Int("status", resp.StatusCode).Msg("response body lost")
		return &domain.APIError{Kind: domain.KindNetwork, Message: NetworkErrorMessage}
	}
	metrics.RequestsTotal.WithLabelValues(method, metrics.StatusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := responseError(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusUnauthorized && !c.isLoginPath(path) {
			apiErr.Expired = true
			c.expire(ctx, reqLog)
		}
		reqLog.Debug().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("backend error")
		return apiErr
	}

	reqLog.Debug().Int("status", resp.StatusCode).Msg("backend ok")
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return requestError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	if token, ok := c.store.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// isLoginPath matches the login endpoint exactly, ignoring any query string
// and trailing slash.
func (c *Client) isLoginPath(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path == "/"+strings.Trim(c.loginPath, "/")
}

// expire clears the stored session, runs the hooks and forces the login route.
func (c *Client) expire(ctx context.Context, log zerolog.Logger) {
	metrics.SessionExpiredTotal.Inc()
	log.Info().Msg("session expired, clearing stored token")

	if err := c.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("clear token store")
	}

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.hooks...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}

	c.navigator.Navigate(c.loginRoute)
}

// responseError builds the envelope for a non-2xx answer. The message
// prefers the server's "message", then "error", then "msg" field.
func responseError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{
		Kind:    domain.KindResponse,
		Status:  status,
		Message: GenericErrorMessage,
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return apiErr
	}
	if !json.Valid(trimmed) {
		apiErr.Data, _ = json.Marshal(string(trimmed))
		return apiErr
	}
	apiErr.Data = append(json.RawMessage(nil), trimmed...)

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return apiErr
	}
	for _, key := range []string{"message", "error", "msg"} {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			apiErr.Message = s
			apiErr.ServerSupplied = true
			break
		}
	}
	return apiErr
}

func requestError(err error) *domain.APIError {
	return &domain.APIError{Kind: domain.KindRequest, Message: err.Error()}
}

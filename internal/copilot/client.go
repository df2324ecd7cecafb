package copilot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/cofoundry/server/internal/config"
	"github.com/ollama/ollama/api"
)

var ErrCircuitOpen = errors.New("copilot circuit open")

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by the copilot package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client wraps the Ollama API client and adds retries, timeout, and a
// circuit breaker so a wedged model host fails fast instead of hanging the
// chat endpoint.
type Client struct {
	api    *api.Client
	cfg    config.CopilotConfig
	client *http.Client

	failures  int32
	openUntil int64 // unix nano
	closed    int32 // atomic flag for Close()
}

// NewClient creates a new copilot client.
func NewClient(cfg config.CopilotConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		api:    api.NewClient(u, httpClient),
		cfg:    cfg,
		client: httpClient,
	}
	logger.Info("copilot: client created", slog.String("base_url", cfg.BaseURL), slog.String("model", cfg.Model))
	return c, nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// half-open: reset failures and allow a request
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// Ask sends a prompt to the configured model and returns the collected
// response text. Retries with backoff on transient failures.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if c.isCircuitOpen() {
		return "", ErrCircuitOpen
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)

		var sb strings.Builder
		req := &api.GenerateRequest{Model: c.cfg.Model, Prompt: prompt}
		err := c.api.Generate(ctxReq, req, func(r api.GenerateResponse) error {
			sb.WriteString(r.Response)
			return nil
		})
		cancel()

		if err == nil {
			atomic.StoreInt32(&c.failures, 0)
			return sb.String(), nil
		}

		lastErr = err
		c.recordFailure()
		logger.Warn("copilot: generate failed", slog.Int("attempt", attempt), slog.Any("err", err))

		if ctx.Err() != nil {
			break
		}
		if attempt < c.cfg.Retries {
			select {
			case <-time.After(c.cfg.Backoff * time.Duration(attempt+1)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("copilot generate: %w", lastErr)
}

// Close releases resources held by the client. Idempotent and safe to call
// multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// Package tutorapi is the HTTP client for the remote tutoring API.
package tutorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Policy controls how strictly successful replies are checked.
type Policy int

const (
	// PolicyLenient accepts any reply and leaves shape detection to the
	// classifier.
	PolicyLenient Policy = iota
	// PolicyStrict rejects replies that are not a lesson or practice object.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// ParsePolicy parses "strict" or "lenient" (empty means lenient).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyLenient, fmt.Errorf("unknown validation policy %q", s)
	}
}

// RequestContext carries optional metadata sent with a message.
type RequestContext struct {
	SessionID string
	Topic     string
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	Topic     string `json:"topic,omitempty"`
}

// Client sends chat messages to a tutoring API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	policy     Policy
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPolicy sets the reply validation policy.
func WithPolicy(p Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at endpoint, e.g.
// "http://localhost:5000".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts message to <endpoint>/chat and returns the decoded reply: a
// map[string]any for JSON objects, a string for plain-text bodies or JSON
// strings. Each call makes exactly one request.
func (c *Client) Send(ctx context.Context, message string, rc RequestContext) (any, error) {
	body, err := json.Marshal(chatRequest{
		Message:   message,
		SessionID: rc.SessionID,
		Topic:     rc.Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("chat request failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return nil, &TransportError{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read response: %v", err),
			Err:        err,
		}
	}

	c.logger.Debug("chat response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("latency", time.Since(start)),
		zap.String("session_id", rc.SessionID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    failureMessage(resp.StatusCode, data),
		}
	}

	reply, err := decodeReply(resp.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: invalidFormatMessage, Err: err}
	}

	if c.policy == PolicyStrict {
		if err := validateStructured(reply); err != nil {
			c.logger.Info("reply rejected by strict policy", zap.Error(err))
			return nil, err
		}
	}
	return reply, nil
}

// failureMessage prefers a non-empty "error" string from the body.
func failureMessage(status int, body []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload.Error.(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// decodeReply returns text/plain bodies verbatim and decodes everything
// else as JSON.
func decodeReply(contentType string, data []byte) (any, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/plain" {
		return string(data), nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	return v, nil
}

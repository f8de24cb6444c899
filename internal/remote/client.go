// Package remote talks to the text-processing endpoint that turns notes into
// a summary and quiz.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Rorical/StudyAssist/internal/config"
	"github.com/Rorical/StudyAssist/internal/logging"
)

const userAgent = "StudyAssist/1.0"

// ProcessRequest is the body sent to the endpoint.
type ProcessRequest struct {
	Text string `json:"text"`
}

// ProcessResponse is the body returned by the endpoint. Result is set on
// success, Error optionally on failure.
type ProcessResponse struct {
	Result *string `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// reply is ProcessResponse as read off the wire. Services are free to put
// any JSON in "error", so both fields stay raw until the status is known.
type reply struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// errorMessage returns the "error" field when it is a non-empty string.
func (r reply) errorMessage() string {
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err != nil {
		return ""
	}
	return msg
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. No timeout is set by default;
// the transport defaults apply.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(endpoint string, opts ...Option) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = config.DefaultEndpoint
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Process sends text as-is and returns the service's result.
//
// A body that is not JSON is a *TransportError even on a failing status. Any
// JSON body with a non-2xx status yields a *ServiceError, whose Message is
// the "error" field when that is a string.
func (c *Client) Process(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(ProcessRequest{Text: text})
	if err != nil {
		return "", &TransportError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("sending text for processing", "endpoint", c.endpoint, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	if !json.Valid(body) {
		return "", &TransportError{Op: "decode response", Err: errors.New("response body is not JSON")}
	}

	var decoded reply
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.errorMessage()
		c.logger.Debug("service rejected request", "status", resp.StatusCode, "message", msg)
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", &TransportError{Op: "decode response", Err: decodeErr}
	}
	if len(decoded.Result) == 0 {
		return "", &TransportError{
			Op:  "decode response",
			Err: errors.New("missing result field"),
		}
	}

	var result string
	if err := json.Unmarshal(decoded.Result, &result); err != nil {
		return "", &TransportError{Op: "decode response", Err: err}
	}

	c.logger.Debug("received result", "status", resp.StatusCode, "chars", len(result))
	return result, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opslens/console/internal/metrics"
)

// Config carries the settings needed to reach the support backend.
type Config struct {
	// BaseURL is the backend origin, e.g. http://localhost:8001. A trailing
	// slash is tolerated and stripped.
	BaseURL string
	// Timeout bounds each request end to end. Zero means no client timeout;
	// callers are still expected to pass a context.
	Timeout time.Duration
}

// Client issues typed requests against the support backend and normalizes
// the loosely-typed JSON it answers with. Construct one with New and share
// it; all methods are safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client for the configured backend.
func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Envelope is the transport-level success result: the decoded payload, the
// HTTP status, and a best-effort human message extracted from the payload.
type Envelope struct {
	Data    any
	Status  int
	Message string
}

// APIError reports a non-2xx backend response. Callers discriminate by the
// attached status code and payload, not by error subtype.
type APIError struct {
	Status  int
	Message string
	Payload any
}

func (e *APIError) Error() string {
	return e.Message
}

// IsCanceled reports whether err stems from caller-initiated cancellation.
// Cancelled requests must never surface as user-facing failures.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// do performs one HTTP round trip. op names the operation for metrics and
// error wrapping; path must be relative to the base URL. A nil body sends no
// request body at all. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*Envelope, error) {
	if c == nil {
		return nil, fmt.Errorf("%s: client not initialised", op)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRequest(op, metrics.CodeNetworkError, time.Since(started))
		if ctx.Err() != nil {
			// Surface the bare context error so callers can suppress it.
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	payload := decodePayload(resp)
	metrics.ObserveRequest(op, fmt.Sprintf("%d", resp.StatusCode), time.Since(started))

	message := extractMessage(payload)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		if message == "" {
			message = "request failed"
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message, Payload: payload}
	}

	return &Envelope{Data: payload, Status: resp.StatusCode, Message: message}, nil
}

// decodePayload parses the response body as JSON when the server declares a
// JSON content type. Malformed bodies decode to nil rather than failing the
// call; the backend occasionally emits empty or truncated bodies on errors.
func decodePayload(resp *http.Response) any {
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

// extractMessage pulls a human-readable message off an object payload,
// preferring "message" over "error".
func extractMessage(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return msg
	}
	return ""
}

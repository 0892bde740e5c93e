package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMalformedResponse marks a 2xx upstream response whose body could not
// be decoded into the expected shape.
var ErrMalformedResponse = errors.New("malformed upstream response")

// StatusError is returned for upstream responses with a 4xx or 5xx status.
// Message carries the structured server message when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.StatusCode)
}

// Client is an HTTP client for the remote EventGrid ticketing API. All
// business logic lives upstream; the client only issues requests and maps
// responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// errorBody is the structured error shape the upstream API uses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues a single request with the caller's bearer token and decodes a
// successful response into out when out is non-nil. Exactly one request is
// sent per call; retries are the caller's concern.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Message != "" {
				se.Message = eb.Message
			} else if eb.Error != "" {
				se.Message = eb.Error
			}
		}
		return se
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return nil
}

// doRaw is like do but returns the successful response body verbatim, for
// endpoints the storefront forwards without reshaping.
func (c *Client) doRaw(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(payload, &eb); err == nil {
			if eb.Message != "" {
				se.Message = eb.Message
			} else if eb.Error != "" {
				se.Message = eb.Error
			}
		}
		return nil, se
	}

	return payload, nil
}

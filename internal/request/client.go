package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	HeaderRequestID = "X-Request-ID"

	successCode = 0
)

// Requester is the transport every API module is built on. Implementations
// issue exactly one HTTP request per call and decode the response into out
// (when out is non-nil).
type Requester interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body any, params url.Values, out any) error
}

// Client is the HTTP implementation of Requester used against the console
// backend.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

var _ Requester = (*Client)(nil)

type envelope struct {
	Code    *int            `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	if config.TokenSource != nil {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		authed := *httpClient
		authed.Transport = &oauth2.Transport{Source: config.TokenSource, Base: base}
		httpClient = &authed
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, params, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, params url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, body, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, params url.Values, out any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	target := c.config.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.config.Logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("failed to %s %s: %w", method, path, err)
	}

	c.config.Logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	return c.handleResponse(resp, requestID, out)
}

func (c *Client) handleResponse(resp *http.Response, requestID string, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if id := resp.Header.Get(HeaderRequestID); id != "" {
		requestID = id
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			Body:       string(body),
			RequestID:  requestID,
		}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			if env.Code != nil {
				apiErr.Code = *env.Code
			}
			if env.Message != "" {
				apiErr.Message = env.Message
			} else if env.Error != "" {
				apiErr.Message = env.Error
			}
		}
		return apiErr
	}

	payload := bytes.TrimSpace(body)
	if len(payload) == 0 {
		return nil
	}

	if c.config.Envelope {
		var env envelope
		if json.Unmarshal(payload, &env) == nil && env.Code != nil {
			if *env.Code != successCode {
				message := env.Message
				if message == "" {
					message = fmt.Sprintf("request rejected with code %d", *env.Code)
				}
				return &Error{
					StatusCode: resp.StatusCode,
					Code:       *env.Code,
					Message:    message,
					Body:       string(body),
					RequestID:  requestID,
				}
			}
			payload = bytes.TrimSpace(env.Data)
			if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
				return nil
			}
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		// plain-text string responses
		if s, ok := out.(*string); ok && !json.Valid(payload) {
			*s = string(payload)
			return nil
		}
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

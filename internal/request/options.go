package request

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/dimitrije/eduadmin/internal/auth"
)

// ClientOption configures a Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the console request client.
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	TokenSource    oauth2.TokenSource
	DefaultHeaders map[string]string
	HTTPClient     *http.Client
	UserAgent      string
	// Envelope unwraps {code, data, message} response bodies.
	Envelope bool
	Logger   zerolog.Logger
}

// DefaultConfig returns the settings the console uses against a local backend.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:8020",
		Timeout: 10 * time.Second,
		DefaultHeaders: map[string]string{
			"Accept": "application/json",
		},
		UserAgent: "eduadmin-console/1.0",
		Envelope:  true,
		Logger:    zerolog.Nop(),
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithToken authenticates every request with a bearer token. An empty token
// leaves the client unauthenticated.
func WithToken(token string) ClientOption {
	return func(c *ClientConfig) {
		if token == "" {
			c.TokenSource = nil
			return
		}
		c.TokenSource = auth.NewTokenSource(token)
	}
}

func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *ClientConfig) {
		c.TokenSource = ts
	}
}

func WithHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}

// WithEnvelope toggles unwrapping of the backend's {code, data, message}
// response wrapper.
func WithEnvelope(enabled bool) ClientOption {
	return func(c *ClientConfig) {
		c.Envelope = enabled
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

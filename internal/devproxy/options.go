package devproxy

import (
	"net/http"

	"github.com/dimitrije/eduadmin/internal/metrics"
	"github.com/rs/zerolog"
)

type Option func(*Proxy)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Proxy) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// WithTransport replaces the round tripper used for upstream calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		p.transport = rt
	}
}

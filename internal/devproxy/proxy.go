// Package devproxy forwards console API calls to the backend during development.
package devproxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dimitrije/eduadmin/internal/config"
	"github.com/dimitrije/eduadmin/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type route struct {
	prefix string
	target *url.URL
	proxy  *httputil.ReverseProxy
}

// Proxy is an http.Handler that strips a configured prefix from the request
// path and forwards the request to that prefix's upstream.
type Proxy struct {
	routes       []route
	changeOrigin bool
	logRewrites  bool
	ws           bool

	logger    zerolog.Logger
	metrics   *metrics.Manager
	transport http.RoundTripper
}

func New(cfg *config.ProxyConfig, opts ...Option) (*Proxy, error) {
	p := &Proxy{
		changeOrigin: cfg.ChangeOrigin,
		logRewrites:  cfg.LogRewrites,
		ws:           cfg.WS,
		logger:       log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, rule := range cfg.RuleList() {
		if rule.Prefix == "" {
			return nil, ErrEmptyPrefix
		}
		target, err := url.Parse(rule.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, rule.Target, err)
		}
		if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, rule.Target)
		}
		p.routes = append(p.routes, p.newRoute(rule.Prefix, target))
	}

	// longest prefix first so Match can stop at the first hit
	sort.SliceStable(p.routes, func(i, j int) bool {
		return len(p.routes[i].prefix) > len(p.routes[j].prefix)
	})

	return p, nil
}

func (p *Proxy) newRoute(prefix string, target *url.URL) route {
	rp := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			from := r.In.URL.Path
			to := RewritePath(from, prefix)

			r.Out.URL.Path = to
			r.Out.URL.RawPath = ""
			r.SetURL(target)
			r.SetXForwarded()
			if !p.changeOrigin {
				r.Out.Host = r.In.Host
			}

			event := p.logger.Debug()
			if p.logRewrites {
				event = p.logger.Info()
			}
			event.
				Str("prefix", prefix).
				Str("from", from).
				Str("to", r.Out.URL.Path).
				Str("target", target.Host).
				Msg("proxy rewrite")
		},
		Transport: p.transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.Error().Err(err).
				Str("prefix", prefix).
				Str("path", r.URL.Path).
				Str("target", target.String()).
				Msg("upstream request failed")
			if p.metrics != nil {
				p.metrics.RecordUpstreamError(prefix)
			}
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return route{prefix: prefix, target: target, proxy: rp}
}

// Match returns the longest configured prefix that path starts with.
func (p *Proxy) Match(path string) (string, bool) {
	for _, rt := range p.routes {
		if strings.HasPrefix(path, rt.prefix) {
			return rt.prefix, true
		}
	}
	return "", false
}

// RewritePath removes prefix from the front of path once. An empty result
// becomes "/".
func RewritePath(path, prefix string) string {
	rewritten := strings.TrimPrefix(path, prefix)
	if rewritten == "" {
		return "/"
	}
	return rewritten
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var matched *route
	for i := range p.routes {
		if strings.HasPrefix(r.URL.Path, p.routes[i].prefix) {
			matched = &p.routes[i]
			break
		}
	}
	if matched == nil {
		http.NotFound(w, r)
		return
	}

	if !p.ws && isUpgrade(r) {
		p.logger.Warn().Str("path", r.URL.Path).Msg("websocket upgrade refused")
		http.Error(w, "websocket proxying is disabled", http.StatusForbidden)
		return
	}

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	matched.proxy.ServeHTTP(rec, r)

	if p.metrics != nil {
		p.metrics.RecordProxyRequest(matched.prefix, rec.status, time.Since(start))
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach Flush and Hijack on the
// underlying writer, which the reverse proxy needs for streaming and upgrades.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

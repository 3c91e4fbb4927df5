package devproxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dimitrije/eduadmin/internal/config"
	"github.com/dimitrije/eduadmin/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoed struct {
	Upstream string `json:"upstream"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Query    string `json:"query"`
	Host     string `json:"host"`
	Auth     string `json:"auth"`
}

func newUpstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoed{
			Upstream: name,
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			Host:     r.Host,
			Auth:     r.Header.Get("Authorization"),
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func setupProxy(t *testing.T, mutate func(*config.ProxyConfig), opts ...Option) (*Proxy, *httptest.Server, *httptest.Server) {
	t.Helper()
	api := newUpstream(t, "api")
	auth := newUpstream(t, "auth")

	cfg := &config.ProxyConfig{
		ChangeOrigin: true,
		WS:           true,
		Rules: map[string]config.ProxyRule{
			"/api":      {Target: api.URL + "/"},
			"/api/auth": {Target: auth.URL + "/"},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	p, err := New(cfg, opts...)
	require.NoError(t, err)
	return p, api, auth
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, echoed) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got echoed
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	}
	return rec, got
}

func TestRewritePath(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   string
	}{
		{"/api/school/get-school-list", "/api", "/school/get-school-list"},
		{"/api/api/x", "/api", "/api/x"},
		{"/api", "/api", "/"},
		{"/api/", "/api", "/"},
		{"/api/auth/login", "/api/auth", "/login"},
		{"/other", "/api", "/other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, RewritePath(tt.path, tt.prefix))
		})
	}
}

func TestProxy_Match(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	prefix, ok := p.Match("/api/auth/login")
	assert.True(t, ok)
	assert.Equal(t, "/api/auth", prefix)

	prefix, ok = p.Match("/api/school/get-school-list")
	assert.True(t, ok)
	assert.Equal(t, "/api", prefix)

	// plain string prefix, not segment aware
	prefix, ok = p.Match("/apiary")
	assert.True(t, ok)
	assert.Equal(t, "/api", prefix)

	_, ok = p.Match("/school")
	assert.False(t, ok)
}

func TestProxy_ForwardsToLongestPrefix(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	rec, got := serve(t, p, http.MethodPost, "/api/auth/login")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth", got.Upstream)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/login", got.Path)
	assert.Equal(t, "Bearer abc", got.Auth)
}

func TestProxy_StripsPrefixOnce(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	rec, got := serve(t, p, http.MethodGet, "/api/api/x")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "api", got.Upstream)
	assert.Equal(t, "/api/x", got.Path)
}

func TestProxy_PreservesQuery(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	rec, got := serve(t, p, http.MethodGet, "/api/collection/content?collectionId=abc&collectionRankRule=BY_NAME_ASC")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/collection/content", got.Path)
	assert.Equal(t, "collectionId=abc&collectionRankRule=BY_NAME_ASC", got.Query)
}

func TestProxy_BarePrefixBecomesRoot(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	rec, got := serve(t, p, http.MethodGet, "/api")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", got.Path)
}

func TestProxy_ChangeOrigin(t *testing.T) {
	t.Run("target host", func(t *testing.T) {
		p, api, _ := setupProxy(t, nil)

		_, got := serve(t, p, http.MethodGet, "/api/school/get-school-list")

		assert.Equal(t, strings.TrimPrefix(api.URL, "http://"), got.Host)
	})

	t.Run("original host", func(t *testing.T) {
		p, _, _ := setupProxy(t, func(cfg *config.ProxyConfig) { cfg.ChangeOrigin = false })

		_, got := serve(t, p, http.MethodGet, "/api/school/get-school-list")

		assert.Equal(t, "example.com", got.Host)
	})
}

func TestProxy_UnmatchedPathIsNotFound(t *testing.T) {
	p, _, _ := setupProxy(t, nil)

	rec, _ := serve(t, p, http.MethodGet, "/school")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProxy_DeadUpstream(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	m := metrics.NewManager()
	p, _, _ := setupProxy(t, func(cfg *config.ProxyConfig) {
		cfg.Rules["/api"] = config.ProxyRule{Target: deadURL}
	}, WithMetrics(m))

	rec, _ := serve(t, p, http.MethodGet, "/api/school/get-school-list")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	exposition := httptest.NewRecorder()
	m.Handler().ServeHTTP(exposition, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, exposition.Body.String(), `eduadmin_devproxy_upstream_errors_total{prefix="/api"} 1`)
	assert.Contains(t, exposition.Body.String(), `eduadmin_devproxy_requests_total{prefix="/api",status="5xx"} 1`)
}

func TestProxy_RecordsMetrics(t *testing.T) {
	m := metrics.NewManager()
	p, _, _ := setupProxy(t, nil, WithMetrics(m))

	serve(t, p, http.MethodGet, "/api/school/get-school-list")
	serve(t, p, http.MethodGet, "/api/auth/me")

	exposition := httptest.NewRecorder()
	m.Handler().ServeHTTP(exposition, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := exposition.Body.String()
	assert.Contains(t, body, `eduadmin_devproxy_requests_total{prefix="/api",status="2xx"} 1`)
	assert.Contains(t, body, `eduadmin_devproxy_requests_total{prefix="/api/auth",status="2xx"} 1`)
}

func TestProxy_WebsocketDisabled(t *testing.T) {
	p, _, _ := setupProxy(t, func(cfg *config.ProxyConfig) { cfg.WS = false })

	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNew_RejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name    string
		rules   map[string]config.ProxyRule
		wantErr error
	}{
		{"empty prefix", map[string]config.ProxyRule{"": {Target: "http://localhost:8020"}}, ErrEmptyPrefix},
		{"no scheme", map[string]config.ProxyRule{"/api": {Target: "localhost:8020"}}, ErrInvalidTarget},
		{"no host", map[string]config.ProxyRule{"/api": {Target: "http://"}}, ErrInvalidTarget},
		{"bad scheme", map[string]config.ProxyRule{"/api": {Target: "ftp://localhost"}}, ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&config.ProxyConfig{Rules: tt.rules})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(204))
	assert.Equal(t, "4xx", StatusClass(404))
	assert.Equal(t, "5xx", StatusClass(502))
	assert.Equal(t, "unknown", StatusClass(0))
	assert.Equal(t, "unknown", StatusClass(700))
}

func TestManager_RecordProxyRequest(t *testing.T) {
	m := NewManager()

	m.RecordProxyRequest("/api", 200, 10*time.Millisecond)
	m.RecordProxyRequest("/api", 201, 10*time.Millisecond)
	m.RecordProxyRequest("/api/auth", 401, 10*time.Millisecond)
	m.RecordUpstreamError("/api")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.proxyRequests.WithLabelValues("/api", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.proxyRequests.WithLabelValues("/api/auth", "4xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.proxyUpstreamErrors.WithLabelValues("/api")))
}

func TestManager_SeparateRegistries(t *testing.T) {
	// two managers must not collide on registration
	a := NewManager()
	b := NewManager()

	a.RecordConsoleRequest("GET", 200)

	assert.Equal(t, float64(1), testutil.ToFloat64(a.consoleRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.consoleRequests.WithLabelValues("GET", "200")))
}

func TestManager_Handler(t *testing.T) {
	m := NewManager(WithNamespace("test"))
	m.RecordProxyRequest("/api", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_devproxy_requests_total{prefix="/api",status="2xx"} 1`)
}

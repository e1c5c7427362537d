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

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c := NewCollector("test")

	c.RecordHTTPRequest("POST", "/rerank", "200", 50*time.Millisecond)
	c.RecordHTTPRequest("POST", "/rerank", "200", 70*time.Millisecond)
	c.RecordHTTPRequest("POST", "/rerank", "400", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/rerank", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/rerank", "400")))
}

func TestCollector_RecordUpstreamCall(t *testing.T) {
	c := NewCollector("test")

	c.RecordUpstreamCall("voyage", "ok", time.Second)
	c.RecordUpstreamCall("voyage", "unavailable", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCallsTotal.WithLabelValues("voyage", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCallsTotal.WithLabelValues("voyage", "unavailable")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.RecordUpstreamCall("gse", "ok", 10*time.Millisecond)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_upstream_calls_total{outcome="ok",upstream="gse"} 1`)
}

func TestCollector_Registry(t *testing.T) {
	c := NewCollector("reg")
	c.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "reg_http_requests_total")
	assert.Contains(t, names, "go_goroutines")
	assert.Equal(t, 1, testutil.CollectAndCount(c.httpRequestsTotal))
}

func TestNewCollector_Twice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("dup")
		NewCollector("dup")
	})
}

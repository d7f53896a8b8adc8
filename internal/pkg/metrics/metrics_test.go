package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveStoreCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(StoreErrors.WithLabelValues("metrics_test", "find"))

	ObserveStore("metrics_test", "find", time.Now(), nil)
	ObserveStore("metrics_test", "find", time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(StoreErrors.WithLabelValues("metrics_test", "find"))
	require.Equal(t, before+1, after)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), `safetrip_http_requests_total{method="GET",route="/ping",status="200"}`)
}

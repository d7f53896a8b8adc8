package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/safetrip/internal/config"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpireHours: 1, WriteRateLimit: 100, WriteRateBurst: 100}
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	SetupRoutes(r, cfg, Deps{Store: docstore.NewMemoryDatabase(), Stop: stop})
	return r
}

func TestRouterWithoutExternalServices(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/v1/incidents", "", http.StatusOK},
		{http.MethodGet, "/api/v1/incidents/categories", "", http.StatusOK},
		{http.MethodGet, "/api/v1/community/posts?category=tip", "", http.StatusOK},
		{http.MethodGet, "/api/v1/incidents/507f1f77bcf86cd799439011", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/incidents/507f1f77bcf86cd799439011/comments", "", http.StatusOK},
		{http.MethodGet, "/api/v1/map/overlays", "", http.StatusOK},
		{http.MethodGet, "/api/ping", "", http.StatusOK},
		{http.MethodPost, "/api/v1/incidents", `{}`, http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/comments/507f1f77bcf86cd799439011/vote", `{"direction":"up"}`, http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/media/upload", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/users/me", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"secret1"}`, http.StatusServiceUnavailable},
		{http.MethodPost, "/api/analyze-location", `{}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestWriteEndpointsAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpireHours: 1, WriteRateLimit: 0.001, WriteRateBurst: 2}
	SetupRoutes(r, cfg, Deps{Store: docstore.NewMemoryDatabase()})

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password-reset", bytes.NewBufferString(`{"email":"ana@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
		if i < 2 {
			require.NotEqual(t, http.StatusTooManyRequests, w.Code)
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

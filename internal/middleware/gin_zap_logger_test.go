package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"troubleshoot-titans/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.GinZapLogger(log))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return r
}

func TestGinZapLogger(t *testing.T) {
	t.Run("logs request with generated id", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := newRouter(zap.New(core))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping?x=1", nil))

		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		entries := logs.FilterMessage("Request completed").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "/api/ping?x=1", entries[0].ContextMap()["path"])
		}
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		r := newRouter(zap.NewNop())
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("client errors are warnings", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := newRouter(zap.New(core))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/missing", nil))
		assert.Equal(t, 1, logs.FilterMessage("Client error").Len())
	})

	t.Run("health is not logged", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := newRouter(zap.New(core))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Zero(t, logs.Len())
	})
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve runs one request through an engine with GinMiddleware attached
// and returns the recorded access log entry
func serve(t *testing.T, status int, target string, setup ...gin.HandlerFunc) *observer.LoggedEntry {
	t.Helper()

	core, recorded := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	for _, mw := range setup {
		engine.Use(mw)
	}
	engine.Use(GinMiddleware(zap.New(core)))
	engine.GET("/probe", func(c *gin.Context) {
		c.Status(status)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	for _, entry := range recorded.All() {
		if entry.Message == "request completed" {
			return &entry
		}
	}
	require.FailNow(t, "no access log entry recorded")
	return nil
}

func TestGinMiddlewareLogsPerStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		entry := serve(t, tt.status, "/probe")
		assert.Equal(t, tt.level, entry.Level, "status %d", tt.status)
	}
}

func TestGinMiddlewareFields(t *testing.T) {
	entry := serve(t, http.StatusOK, "/probe?code=778")

	fields := entry.ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/probe", fields["path"])
	assert.Equal(t, "code=778", fields["query"])
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
}

func TestGinMiddlewareCarriesRequestID(t *testing.T) {
	entry := serve(t, http.StatusOK, "/probe", func(c *gin.Context) {
		c.Set("request_id", "req-778")
		c.Next()
	})
	assert.Equal(t, "req-778", entry.ContextMap()["request_id"])
}

func TestRecoveryConvertsPanic(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/boom", func(c *gin.Context) {
		panic("broken handler")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "panic recovered", entries[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	var fromHandler *zap.Logger

	engine := gin.New()
	engine.Use(GinMiddleware(zap.NewNop()))
	engine.GET("/probe", func(c *gin.Context) {
		fromHandler = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.NotNil(t, fromHandler)

	// Outside the middleware a no-op logger comes back
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotPanics(t, func() { GetGinLogger(c).Info("probe") })
}

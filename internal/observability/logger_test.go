package observability

import (
	"context"
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

func TestWithFields(t *testing.T) {
	t.Run("appends to existing fields without mutating the parent", func(t *testing.T) {
		parent := WithFields(context.Background(), Field{"gig_id", "g1"})
		child := WithFields(parent, Field{"entry_id", "e1"})
		sibling := WithFields(parent, Field{"entry_id", "e2"})

		assert.Len(t, getObservabilityFields(parent), 1)
		require.Len(t, getObservabilityFields(child), 2)
		assert.Equal(t, "e1", getObservabilityFields(child)[1].Value)
		assert.Equal(t, "e2", getObservabilityFields(sibling)[1].Value)
	})

	t.Run("empty context has no fields", func(t *testing.T) {
		assert.Nil(t, getObservabilityFields(context.Background()))
	})
}

func TestLoggerAttachesContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLoggerFromZap(zap.New(core))

	ctx := WithFields(context.Background(), Field{"artist_id", "a1"})
	logger.Info(ctx, "fan update sent")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fan update sent", entries[0].Message)
	assert.Equal(t, "a1", entries[0].ContextMap()["artist_id"])
}

func TestGetRealClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		viewerAddr string
		want       string
	}{
		{name: "CloudFront viewer address with port", viewerAddr: "203.0.113.7:51234", want: "203.0.113.7"},
		{name: "CloudFront viewer address without port", viewerAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "falls back to remote address", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = "192.0.2.1:1234"
			if tt.viewerAddr != "" {
				c.Request.Header.Set("CloudFront-Viewer-Address", tt.viewerAddr)
			}
			assert.Equal(t, tt.want, GetRealClientIP(c))
		})
	}
}

func TestMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := observer.New(zapcore.InfoLevel)
	logger := NewLoggerFromZap(zap.New(core))

	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("generates a request id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Contains(t, w.Header().Get("X-Request-ID"), "req-")
	})

	t.Run("echoes a caller supplied request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	})
}

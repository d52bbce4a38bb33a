package middleware_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antles/FinalCS340/internal/api/middleware"
	"github.com/Antles/FinalCS340/internal/testutils"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	loggingMw := middleware.NewLoggingMiddlewareWithLogger(testutils.NewTestLogger(buf))

	router := testutils.SetupTestRouter()
	router.Use(loggingMw.RequestLogger(), loggingMw.Logger())
	return router
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	var seen string
	router.GET("/test", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, "GET", "/test", nil, nil)

	header := w.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(header)
	require.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRequestLogger_ReusesIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)
	router.GET("/test", func(c *gin.Context) {
		logger := middleware.GetRequestLogger(c)
		logger.Info().Msg("handling")
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, "GET", "/test", nil, map[string]string{
		middleware.RequestIDHeader: "req-123",
	})

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))

	lines := testutils.LogLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "handling", lines[0]["message"])
	assert.Equal(t, "req-123", lines[0]["request_id"])
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{status: http.StatusOK, wantLevel: "info"},
		{status: http.StatusBadRequest, wantLevel: "warn"},
		{status: http.StatusBadGateway, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			router := newLoggedRouter(&buf)
			router.GET("/test", func(c *gin.Context) {
				c.Status(tt.status)
			})

			testutils.PerformRequest(router, "GET", "/test?name=Rex", nil, nil)

			lines := testutils.LogLines(t, &buf)
			require.Len(t, lines, 1)
			entry := lines[0]
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "request completed", entry["message"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/test", entry["path"])
			assert.Equal(t, "name=Rex", entry["query"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}
}

func TestGetRequestLogger_WithoutMiddleware(t *testing.T) {
	router := testutils.SetupTestRouter()
	router.GET("/test", func(c *gin.Context) {
		assert.Empty(t, middleware.GetRequestID(c))
		_ = middleware.GetRequestLogger(c)
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, "GET", "/test", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

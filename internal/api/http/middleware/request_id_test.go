package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProbeRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	r.GET("/probe", func(c *gin.Context) {
		*capture = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	router := newProbeRouter(&seen)

	req, err := http.NewRequest("GET", "/probe", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	echoed := rr.Header().Get("X-Request-Id")
	assert.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen)

	// Generated ids are well-formed UUIDs.
	_, err = uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestID_KeepsProvidedHeader(t *testing.T) {
	var seen string
	router := newProbeRouter(&seen)

	req, err := http.NewRequest("GET", "/probe", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "client-supplied-id")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Request-Id"))
	assert.Equal(t, "client-supplied-id", seen)
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

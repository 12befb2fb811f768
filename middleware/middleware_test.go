package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestActor(t *testing.T) {
	r := gin.New()
	r.Use(Actor(1))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, "%d", ActorID(c, 0))
	})

	assert.Equal(t, "1", serve(r, http.MethodGet, "/who", nil).Body.String())
	assert.Equal(t, "7", serve(r, http.MethodGet, "/who", map[string]string{ActorHeader: " 7 "}).Body.String())

	for _, bad := range []string{"abc", "0", "-3"} {
		rec := serve(r, http.MethodGet, "/who", map[string]string{ActorHeader: bad})
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestActorIDFallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, 9, ActorID(c, 9))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestIDKey))
	})

	rec := serve(r, http.MethodGet, "/", nil)
	generated := rec.Header().Get(RequestIDHeader)
	require.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	rec = serve(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestRateLimitOnlyMutations(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	}

	// burst is perMinute/2 = 1
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/", nil).Code)
}

func TestRequestMetricsDoesNotBreakChain(t *testing.T) {
	r := gin.New()
	r.Use(RequestMetrics())
	r.GET("/posts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/posts/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/nowhere", nil).Code)
}

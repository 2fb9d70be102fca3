package middelware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limiterRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &models.Config{
		RedisAddr:                  mr.Addr(),
		RateLimitRequestsPerMinute: limit,
	}
	limiter := NewRateLimiter(cfg, logger.NewLogger("error", "text"))
	require.NotNil(t, limiter)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Limit())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, mr
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	router, _ := limiterRouter(t, 3)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	router, _ := limiterRouter(t, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterWindowExpires(t *testing.T) {
	router, mr := limiterRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	mr.FastForward(61 * time.Second)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterFailsOpenOnRedisOutage(t *testing.T) {
	router, mr := limiterRouter(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterDisabledWithoutConfig(t *testing.T) {
	log := logger.NewLogger("error", "text")
	assert.Nil(t, NewRateLimiter(&models.Config{}, log))
	assert.Nil(t, NewRateLimiter(&models.Config{RedisAddr: "localhost:6379"}, log))
	assert.Nil(t, NewRateLimiter(&models.Config{RateLimitRequestsPerMinute: 10}, log))
}

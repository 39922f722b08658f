package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glin-wallet/internal/adapter/http/middleware"
	redisStore "glin-wallet/internal/adapter/storage/redis"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRateLimitRouter(store ports.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	log := zerolog.Nop()

	r.POST("/dapp", middleware.DappOrigin(false), middleware.RateLimiter(store, "test", rule, nil, log), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func postFrom(router *gin.Engine, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "/dapp", nil)
	req.Header.Set("Origin", origin)
	router.ServeHTTP(w, req)
	return w
}

func newRedisStore(t *testing.T) *redisStore.RateLimitStore {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisStore.NewRateLimitStore(client, "test")
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(newRedisStore(t))

	for i := 0; i < 3; i++ {
		w := postFrom(router, "https://dapp.example")
		assert.Equal(t, 200, w.Code, "request %d should succeed", i+1)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimitPerOrigin(t *testing.T) {
	router := setupRateLimitRouter(newRedisStore(t))

	for i := 0; i < 3; i++ {
		postFrom(router, "https://noisy.example")
	}

	w := postFrom(router, "https://noisy.example")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")

	w = postFrom(router, "https://quiet.example")
	assert.Equal(t, http.StatusOK, w.Code, "other origins keep their own budget")
}

func TestRateLimiter_DegradedModeAllows(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRateLimiter(ctrl)
	store.EXPECT().Allow(gomock.Any(), "https://dapp.example:test", int64(3), time.Minute).
		Return(nil, errors.New("redis down"))

	router := setupRateLimitRouter(store)
	w := postFrom(router, "https://dapp.example")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules(0)
	assert.Equal(t, int64(60), rules["dapp_messages"].Limit)

	rules = middleware.DefaultRateLimitRules(5)
	assert.Equal(t, int64(5), rules["dapp_messages"].Limit)
	assert.Equal(t, time.Minute, rules["dapp_events"].Window)
}

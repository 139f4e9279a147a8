package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimitStore_Window(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLimitStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := store.Allow(ctx, "k", 3, time.Minute)
	assert.False(t, ok)

	ok, _ = store.Allow(ctx, "other", 3, time.Minute)
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute + time.Second)
	ok, _ = store.Allow(ctx, "k", 3, time.Minute)
	assert.True(t, ok, "a new window starts after expiry")

	assert.Equal(t, 1, store.Cleanup())
	assert.Len(t, store.entries, 1)
}

func TestRedisLimitStore_Window(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := NewRedisLimitStore(client)

	for i := 0; i < 2; i++ {
		ok, err := store.Allow(ctx, "login:1.2.3.4", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Allow(ctx, "login:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, server.TTL("ratelimit:login:1.2.3.4"))

	server.FastForward(time.Minute + time.Second)
	ok, err = store.Allow(ctx, "login:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "false")

	limiter := NewRateLimiterWithConfig(NewMemoryLimitStore(), "login", ClientIPKey, 1, time.Minute)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH-")
}

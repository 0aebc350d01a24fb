package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/venues/create")

	cases := map[string]string{
		"ip":       "fyyur:rl:ip:10.0.0.7",
		"route":    "fyyur:rl:route:POST /venues/create",
		"ip_route": "fyyur:rl:ip:10.0.0.7:route:POST /venues/create",
		"":         "fyyur:rl:ip:10.0.0.7:route:POST /venues/create",
	}
	for strategy, want := range cases {
		cfg := config.RateLimitConfig{Prefix: "fyyur:rl", KeyStrategy: strategy}
		assert.Equal(t, want, buildRateKey(cfg, c), strategy)
	}
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64("4"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func rateConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "fyyur:rl",
	}
}

func limitedApp(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.POST("/venues/create", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})
	e.GET("/venues", func(c echo.Context) error {
		return c.String(http.StatusOK, "list")
	})
	return e
}

func TestTokenBucket_DeniesWhenEmpty(t *testing.T) {
	mr, rdb := newTestRedis(t)
	e := limitedApp(rateConfig(2), rdb)

	for i := 0; i < 2; i++ {
		rec := serve(e, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code, "submission %d", i)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Len(t, keysWithPrefix(mr, "fyyur:rl"), 1)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/venues", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestTokenBucket_FailsOpen(t *testing.T) {
	mr, rdb := newTestRedis(t)
	e := limitedApp(rateConfig(1), rdb)
	mr.Close()

	for i := 0; i < 3; i++ {
		rec := serve(e, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	}
}

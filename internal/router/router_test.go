package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/web"
)

func newApp(t *testing.T) (*echo.Echo, *repository.MemoryStore) {
	t.Helper()
	return newAppWith(t, Deps{})
}

// newAppWith builds the full stack on a memory store; d supplies the
// optional Redis pieces.
func newAppWith(t *testing.T, d Deps) (*echo.Echo, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	h := handler.New(store.Venues(), store.Artists(), store.Shows(), nil)

	r, err := web.NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	d.Handler = h
	d.Metrics = middleware.NewHTTPMetrics(prometheus.NewRegistry())
	d.FlashSecret = "router-test"
	d.FlashTTL = time.Minute
	RegisterRoutes(e, d)
	return e, store
}

func post(e *echo.Echo, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFlashSurvivesPostRedirectGet(t *testing.T) {
	e, _ := newApp(t)

	rec := post(e, "/artists/create", url.Values{
		"name":   {"The Wild Sax Band"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Jazz", "Classical"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.FlashCookie {
			flash = c
		}
	}
	require.NotNil(t, flash)

	rec = get(e, "/", flash)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artist The Wild Sax Band was successfully listed!")

	rec = get(e, "/")
	assert.NotContains(t, rec.Body.String(), "successfully listed")
}

func TestMethodOverrideDeletesVenue(t *testing.T) {
	e, store := newApp(t)
	require.NoError(t, store.Venues().Create(context.Background(), &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"}))

	rec := post(e, "/venues/1", url.Values{"_method": {http.MethodDelete}})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = get(e, "/venues/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestUnknownRouteRenders404(t *testing.T) {
	e, _ := newApp(t)
	rec := get(e, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestHealthAndMetrics(t *testing.T) {
	e, _ := newApp(t)

	rec := get(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = get(e, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fyyur_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func redisDeps(t *testing.T, capacity int) (*miniredis.Miniredis, Deps) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, Deps{
		Redis: rdb,
		Cache: config.CacheConfig{
			Enabled:      true,
			Methods:      map[string]bool{http.MethodGet: true},
			TTL:          time.Minute,
			KeyStrategy:  "route_query",
			Prefix:       "fyyur:page",
			PurgeOnWrite: true,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:        true,
			Capacity:       capacity,
			RefillTokens:   1,
			RefillInterval: time.Hour,
			TTL:            5 * time.Hour,
			KeyStrategy:    "ip_route",
			Prefix:         "fyyur:rl",
		},
	}
}

func countKeys(mr *miniredis.Miniredis, prefix string) int {
	n := 0
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, prefix+":") {
			n++
		}
	}
	return n
}

func TestSearchKeepsPageCache(t *testing.T) {
	mr, d := redisDeps(t, 10)
	e, _ := newAppWith(t, d)

	rec := get(e, "/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, countKeys(mr, "fyyur:page"))

	rec = post(e, "/venues/search", url.Values{"search_term": {"Music"}})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = post(e, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, countKeys(mr, "fyyur:page"))
	assert.Equal(t, "HIT", get(e, "/venues").Header().Get("X-Cache"))

	rec = post(e, "/venues/create", url.Values{
		"name":   {"The Musical Hop"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Jazz"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, countKeys(mr, "fyyur:page"))
}

func TestRateLimitOnlyChargesWrites(t *testing.T) {
	_, d := redisDeps(t, 1)
	e, _ := newAppWith(t, d)

	for i := 0; i < 3; i++ {
		rec := post(e, "/venues/search", url.Values{"search_term": {"Hop"}})
		require.Equal(t, http.StatusOK, rec.Code, "search %d", i)
	}

	form := url.Values{"name": {"Matt Quevedo"}, "city": {"New York"}, "state": {"NY"}, "genres": {"Jazz"}}
	rec := post(e, "/artists/create", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = post(e, "/artists/create", form)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/testutil"
)

func newRedisApp(t *testing.T, rl config.RateLimitConfig) (*app, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cacheCfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "fyyur:page",
		MaxBodyBytes: 1 << 20,
	}
	a := newAppWith(t, middleware.NewPageCache(cacheCfg, rdb), router.Middlewares{
		Cache:     middleware.NewRedisCache(cacheCfg, rdb, handler.HasFlash),
		RateLimit: middleware.NewTokenBucket(rl, rdb, zap.NewNop()),
	})
	return a, mr
}

func TestPageCache_PurgedAfterWrite(t *testing.T) {
	a, _ := newRedisApp(t, config.RateLimitConfig{})
	testutil.InsertVenue(t, a.db, testutil.DuelingPianos)

	first := a.get("/venues")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", a.get("/venues").Header().Get("X-Cache"))

	rec := a.post("/venues/create", venueForm())
	require.Equal(t, http.StatusFound, rec.Code)

	// the redirect target carries the flash and bypasses the cache
	home := a.get("/", flashCookie(t, rec))
	assert.Empty(t, home.Header().Get("X-Cache"))
	assert.Contains(t, home.Body.String(), "Venue The Musical Hop was successfully listed!")

	after := a.get("/venues")
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	assert.Contains(t, after.Body.String(), "The Musical Hop")
	assert.Contains(t, after.Body.String(), "The Dueling Pianos Bar")
}

func TestRateLimit_ThirdSubmissionRendersTooManyRequests(t *testing.T) {
	a, _ := newRedisApp(t, config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "fyyur:rl",
	})

	for i := 0; i < 2; i++ {
		rec := a.post("/artists/create", artistForm("Guns N Petals"))
		require.Equal(t, http.StatusFound, rec.Code, i)
	}

	rec := a.post("/artists/create", artistForm("Matt Quevedo"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	body := rec.Body.String()
	assert.Contains(t, body, "429 Too Many Requests")
	assert.Contains(t, body, "Too many submissions, try again in")
	assert.Zero(t, testutil.CountRows(t, a.db, "artists", "name = ?", "Matt Quevedo"))

	// reads are not limited
	assert.Equal(t, http.StatusOK, a.get("/artists").Code)
}

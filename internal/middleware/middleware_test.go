package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/fyyur/internal/config"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "10.0.0.7:5555"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCacheKeyFrom_Strategies(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/venues?page=2")
	base := config.CacheConfig{Prefix: "fyyur:page"}

	withQuery := cacheKeyFrom(base, c)
	assert.True(t, strings.HasPrefix(withQuery, "fyyur:page:"))

	route := base
	route.KeyStrategy = "route"
	assert.NotEqual(t, withQuery, cacheKeyFrom(route, c))

	// stable across calls
	assert.Equal(t, withQuery, cacheKeyFrom(base, c))

	other, _ := newContext(http.MethodGet, "/venues?page=3")
	assert.NotEqual(t, withQuery, cacheKeyFrom(base, other))
	assert.Equal(t, cacheKeyFrom(route, c), cacheKeyFrom(route, other))
}

func TestPayloadEncoding(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "text/html; charset=UTF-8")
	bs, err := encodePayload(http.StatusOK, hdr, []byte("<h1>Venues</h1>"))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "text/html; charset=UTF-8", gotHdr.Get("Content-Type"))
	assert.Equal(t, "<h1>Venues</h1>", string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestNewRedisCache_PassThroughWithoutClient(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, nil)
	c, rec := newContext(http.MethodGet, "/artists")
	err := mw(func(c echo.Context) error { return c.String(http.StatusOK, "artists") })(c)
	require.NoError(t, err)
	assert.Equal(t, "artists", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPageCache_PurgeWithoutClient(t *testing.T) {
	var nilCache *PageCache
	assert.NoError(t, nilCache.Purge(context.Background()))
	assert.NoError(t, NewPageCache(config.CacheConfig{Enabled: false}, nil).Purge(context.Background()))
}

func TestBuildRateKey(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/venues/create")
	c.SetPath("/venues/create")

	cfg := config.RateLimitConfig{Prefix: "fyyur:rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "fyyur:rl:ip:10.0.0.7:route:POST /venues/create", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "fyyur:rl:ip:10.0.0.7", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "fyyur:rl:route:POST /venues/create", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(7), asInt64(int64(7)))
	assert.Equal(t, int64(7), asInt64(7))
	assert.Equal(t, int64(7), asInt64(7.9))
	assert.Equal(t, int64(12), asInt64("12"))
	assert.Equal(t, int64(0), asInt64("x"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestNewTokenBucket_DisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil, zap.NewNop())
	c, rec := newContext(http.MethodPost, "/shows/create")
	require.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusSeeOther) })(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mw := RequestLogger(zap.New(core))

	c, rec := newContext(http.MethodGet, "/venues/9")
	err := mw(func(c echo.Context) error { return echo.ErrNotFound })(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/venues/9", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}

func TestRequestLogger_KeepsClientRequestID(t *testing.T) {
	mw := RequestLogger(zap.NewNop())
	c, rec := newContext(http.MethodGet, "/")
	c.Request().Header.Set(echo.HeaderXRequestID, "abc-123")
	require.NoError(t, mw(func(c echo.Context) error { return c.String(http.StatusOK, "home") })(c))
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

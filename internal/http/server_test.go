package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegoals/internal/core"
	"lifegoals/internal/dashboard"
	applog "lifegoals/internal/log"
)

type fakeLister struct {
	goals []core.Goal
	err   error
	calls atomic.Int32
}

func (f *fakeLister) ListGoals(context.Context) ([]core.Goal, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.goals, nil
}

type pingingLister struct {
	fakeLister
	pingErr error
}

func (p *pingingLister) Ping(context.Context) error { return p.pingErr }

func newTestServer(t *testing.T, opts Options) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if opts.Lister == nil {
		opts.Lister = &fakeLister{goals: core.SeedGoals()}
	}
	if opts.Locale.Code == "" {
		loc, err := dashboard.LookupLocale("ru")
		require.NoError(t, err)
		opts.Locale = loc
	}
	opts.Logger = applog.New(applog.Config{Level: applog.DefaultConfig().Level, Output: &logs})

	srv, err := NewServer(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, &logs
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestDashboardShowsAllGoals(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := get(srv, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "Дерево жизненных целей")
	assert.Contains(t, body, "Все цели")
	for _, g := range core.SeedGoals() {
		assert.Contains(t, body, `data-goal="`+g.ID+`"`)
	}
	assert.Contains(t, body, `href="/?category=career"`)
	assert.Contains(t, body, `data-partial="/ui/goals?category=career"`)
	assert.Contains(t, body, "38%")
	assert.Contains(t, body, "44%")
	assert.Contains(t, body, "2 целей")
	assert.Contains(t, body, "2 цели")
	assert.NotContains(t, body, "Показать все")
}

func TestDashboardCategoryFilter(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := get(srv, "/?category=health")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, `data-goal="5"`)
	assert.Contains(t, body, `data-goal="6"`)
	assert.NotContains(t, body, `data-goal="1"`)
	assert.Contains(t, body, "Показать все")
	assert.Contains(t, body, "tile--selected")
	// The selected tile toggles back to no filter.
	assert.Contains(t, body, `href="/"`)
	assert.Contains(t, body, `href="/?category=career"`)
}

func TestDashboardGoalSelection(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	body := get(srv, "/?category=career&goal=2").Body.String()
	assert.Equal(t, 1, strings.Count(body, "goal--selected"))
	assert.Contains(t, body, `href="/?category=career&amp;goal=1"`)
	assert.Contains(t, body, `data-partial="/ui/goals?category=career&amp;goal=1"`)
	assert.Contains(t, body, `href="/?category=career"`)
	// Clearing the filter keeps the selected goal.
	assert.Contains(t, body, `href="/?goal=2"`)
}

func TestDashboardUnknownSelection(t *testing.T) {
	srv, logs := newTestServer(t, Options{})

	rr := get(srv, "/?category=hobby&goal=99")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Все цели")
	assert.Contains(t, body, `data-goal="8"`)
	assert.NotContains(t, body, "goal--selected")
	assert.Contains(t, logs.String(), "Ignoring unknown category")
}

func TestGoalListPartial(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := get(srv, "/ui/goals?category=finance")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="goals"`)
	assert.Contains(t, body, `data-goal="7"`)
	assert.NotContains(t, body, `data-goal="3"`)
	assert.NotContains(t, body, "<!doctype html>")
}

func TestEnglishLocale(t *testing.T) {
	loc, err := dashboard.LookupLocale("en")
	require.NoError(t, err)
	srv, _ := newTestServer(t, Options{Locale: loc})

	body := get(srv, "/?category=education").Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "Tree of Life Goals")
	assert.Contains(t, body, "Show all")
	assert.Contains(t, body, "Actively developing")
	assert.Contains(t, body, "Initial stage")
}

func TestSourceFailureRendersPlaceholder(t *testing.T) {
	lister := &fakeLister{err: errors.New("sheet unreachable")}
	srv, logs := newTestServer(t, Options{Lister: lister})

	rr := get(srv, "/")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Не удалось загрузить цели")
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, logs.String(), "sheet unreachable")

	rr = get(srv, "/ui/goals")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `role="alert"`)
	assert.Contains(t, rr.Body.String(), "Не удалось загрузить цели")
	assert.NotContains(t, rr.Body.String(), "<!doctype html>")
}

func TestSourceFailurePlaceholderIsLocalized(t *testing.T) {
	loc, err := dashboard.LookupLocale("en")
	require.NoError(t, err)
	srv, _ := newTestServer(t, Options{Lister: &fakeLister{err: errors.New("down")}, Locale: loc})

	rr := get(srv, "/ui/goals")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Goals could not be loaded.")
}

func TestInvalidSourceDataIsRejected(t *testing.T) {
	dup := core.SeedGoals()
	dup[1].ID = dup[0].ID
	srv, _ := newTestServer(t, Options{Lister: &fakeLister{goals: dup}})

	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/").Code)
}

func TestMethodAndPathHandling(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))

	assert.Equal(t, http.StatusNotFound, get(srv, "/missing").Code)

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, rr.Body.Len())
}

func TestGoalCache(t *testing.T) {
	lister := &fakeLister{goals: core.SeedGoals()}
	srv, _ := newTestServer(t, Options{Lister: lister, CacheTTL: time.Minute})

	get(srv, "/")
	get(srv, "/?category=career")
	assert.EqualValues(t, 1, lister.calls.Load())

	srv.InvalidateGoals()
	get(srv, "/")
	assert.EqualValues(t, 2, lister.calls.Load())
}

func TestNoCacheWhenTTLZero(t *testing.T) {
	lister := &fakeLister{goals: core.SeedGoals()}
	srv, _ := newTestServer(t, Options{Lister: lister})

	get(srv, "/")
	get(srv, "/")
	srv.InvalidateGoals()
	assert.EqualValues(t, 2, lister.calls.Load())
}

func TestHealthAndReadiness(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)

	failing := &pingingLister{fakeLister: fakeLister{goals: core.SeedGoals()}, pingErr: errors.New("db locked")}
	srv, _ = newTestServer(t, Options{Lister: failing})
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/readyz").Code)

	failing.pingErr = nil
	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}

func TestResponseHeaders(t *testing.T) {
	srv, _ := newTestServer(t, Options{})

	rr := get(srv, "/")
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
	assert.True(t, strings.HasPrefix(rr.Header().Get("X-Request-ID"), "req_"))

	rr = get(srv, "/static/app.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "max-age=3600")
}

func TestRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, Options{RateLimitPerMinute: 1})

	assert.Equal(t, http.StatusOK, get(srv, "/").Code)
	rr := get(srv, "/")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Слишком много запросов")

	// Probes stay exempt.
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
}

func TestRateLimitKeysOnForwardedClientFromTrustedProxy(t *testing.T) {
	srv, _ := newTestServer(t, Options{RateLimitPerMinute: 1, TrustedProxies: []string{"192.0.2.0/24"}})

	from := func(client string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", client)
		srv.Handler.ServeHTTP(rr, req)
		return rr.Code
	}
	assert.Equal(t, http.StatusOK, from("198.51.100.1"))
	assert.Equal(t, http.StatusOK, from("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, from("198.51.100.1"))
}

func TestNewServerRejectsBadTrustedProxy(t *testing.T) {
	_, err := NewServer(Options{Lister: &fakeLister{}, TrustedProxies: []string{"proxy.local"}})
	assert.Error(t, err)
}

func TestNewServerRequiresLister(t *testing.T) {
	_, err := NewServer(Options{})
	assert.Error(t, err)
}

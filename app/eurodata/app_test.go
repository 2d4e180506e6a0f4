package eurodata_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurodata/site/app/eurodata"
	"github.com/eurodata/site/core/server"
	"github.com/eurodata/site/query"
	"github.com/eurodata/site/supabase"
	"github.com/eurodata/site/view"
)

// backend is a PostgREST stand-in serving the indicators table.
type backend struct {
	mu         sync.Mutex
	hits       int
	filters    []string
	identities []string
	fail       bool
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits++
	b.filters = append(b.filters, r.URL.Query().Get("section"))
	b.identities = append(b.identities, r.Header.Get(supabase.ClientHeader))
	fail := b.fail
	b.mu.Unlock()

	if r.URL.Path != "/rest/v1/indicators" || r.Header.Get("apikey") != "anon-key" {
		http.Error(w, `{"message":"unexpected request"}`, http.StatusBadRequest)
		return
	}
	if fail {
		http.Error(w, `{"message":"upstream down"}`, http.StatusServiceUnavailable)
		return
	}

	rows := []view.Indicator{
		{ID: "1", Section: "economy", Name: "GDP", Value: 1462070.5, Unit: "M€", Period: "2024", Source: "INE"},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func (b *backend) stats() (int, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits, append([]string(nil), b.filters...)
}

func newApp(t *testing.T, b *backend) *eurodata.App {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	serverCfg := server.DefaultConfig()
	serverCfg.Addr = "127.0.0.1:0"

	app, err := eurodata.NewApp(
		eurodata.WithConfig(eurodata.Config{
			Server:   serverCfg,
			Supabase: supabase.Config{URL: srv.URL, PublishableKey: "anon-key"},
			Query:    query.Config{StaleTime: time.Minute},
			AppName:  "eurodata",
			Env:      "test",
		}),
		eurodata.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return app
}

func get(app *eurodata.App, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewAppRequiresSupabase(t *testing.T) {
	t.Parallel()

	_, err := eurodata.NewApp(
		eurodata.WithConfig(eurodata.Config{Server: server.DefaultConfig()}),
		eurodata.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.ErrorIs(t, err, supabase.ErrMissingURL)
}

func TestRootRedirectsToDefaultLocale(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	rec := get(app, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/es", rec.Header().Get("Location"))
}

func TestLocaleShell(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	for _, tc := range []struct {
		path  string
		lang  string
		title string
	}{
		{"/es", "es", "Datos oficiales de Europa"},
		{"/en", "en", "Official data from Europe"},
		{"/en/", "en", "Official data from Europe"},
	} {
		rec := get(app, tc.path)
		require.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.lang, rec.Header().Get("Content-Language"), tc.path)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"), tc.path)
		assert.Contains(t, rec.Body.String(), `<html lang="`+tc.lang+`">`, tc.path)
		assert.Contains(t, rec.Body.String(), tc.title, tc.path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), tc.path)
	}
}

func TestUnknownLocaleIsNotFound(t *testing.T) {
	t.Parallel()
	b := &backend{}
	app := newApp(t, b)

	for _, path := range []string{"/fr", "/fr/economy", "/ES"} {
		rec := get(app, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Página no encontrada", path)
		assert.NotContains(t, rec.Body.String(), "<header>", path)
	}

	hits, _ := b.stats()
	assert.Zero(t, hits)
}

func TestUnknownLocaleNegotiatesLanguage(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	req := httptest.NewRequest(http.MethodGet, "/fr", nil)
	req.Header.Set("Accept-Language", "fr-FR,en;q=0.8")
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestUnknownSectionIsLocalizedNotFound(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	for _, path := range []string{"/en/weather", "/en/home", "/en/economy/extra"} {
		rec := get(app, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "en", rec.Header().Get("Content-Language"), path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
		assert.Contains(t, rec.Body.String(), "<header>", path)
	}
}

func TestSectionPage(t *testing.T) {
	t.Parallel()
	b := &backend{}
	app := newApp(t, b)

	rec := get(app, "/en/economy?year=2024")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Economy</h1>")
	assert.Contains(t, body, "1,462,070.5 M€")
	assert.Contains(t, body, `<a href="/en/economy" aria-current="page">Economy</a>`)
	assert.Contains(t, body, `<form method="get" action="/es/economy">`)
	assert.Contains(t, body, `<input type="hidden" name="year" value="2024">`)
	assert.Contains(t, body, `<button type="button" disabled aria-pressed="true" lang="en">English</button>`)

	_, filters := b.stats()
	assert.Equal(t, []string{"eq.economy"}, filters)
}

func TestComparatorListsEverySection(t *testing.T) {
	t.Parallel()
	b := &backend{}
	app := newApp(t, b)

	rec := get(app, "/es/comparator")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Comparador</h1>")

	_, filters := b.stats()
	assert.Equal(t, []string{""}, filters)
}

func TestSectionPageWhenBackendFails(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{fail: true})

	rec := get(app, "/es/crime")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p class="notice" role="status">`)
	assert.Contains(t, rec.Body.String(), "<h1>Criminalidad</h1>")
}

func TestQueryCacheIsPerRequest(t *testing.T) {
	t.Parallel()
	b := &backend{}
	app := newApp(t, b)

	require.Equal(t, http.StatusOK, get(app, "/es/economy").Code)
	require.Equal(t, http.StatusOK, get(app, "/en/economy").Code)
	require.Equal(t, http.StatusOK, get(app, "/es/economy").Code)

	hits, _ := b.stats()
	assert.Equal(t, 3, hits)
}

func TestClientConfigIsEmbedded(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	body := get(app, "/es").Body.String()
	assert.Contains(t, body, `id="eurodata-config"`)
	assert.Contains(t, body, `"key":"anon-key"`)
	assert.Contains(t, body, `"staleTime":60000`)
}

func TestInfrastructureEndpoints(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	health := get(app, "/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	ready := get(app, "/readyz")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Equal(t, "ready", ready.Body.String())

	get(app, "/es")
	get(app, "/fr")

	metrics := get(app, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `http_requests_total{method="GET",path="/healthz",status_code="200"} 1`)
	assert.Contains(t, metrics.Body.String(), `path="/{locale}/`)
	assert.Contains(t, metrics.Body.String(), `status_code="404"} 1`)
}

func TestReadinessUsesServerClient(t *testing.T) {
	t.Parallel()
	b := &backend{}
	app := newApp(t, b)

	hits, _ := b.stats()
	require.Zero(t, hits, "building the app must not query the backend")

	require.Equal(t, http.StatusOK, get(app, "/readyz").Code)
	require.Equal(t, http.StatusOK, get(app, "/en/economy").Code)

	b.mu.Lock()
	identities := append([]string(nil), b.identities...)
	b.mu.Unlock()
	assert.Equal(t, []string{supabase.HealthIdentity, supabase.PageIdentity}, identities)
}

func TestReadinessWhenBackendFails(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{fail: true})

	assert.Equal(t, http.StatusOK, get(app, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(app, "/readyz").Code)
}

func TestRun(t *testing.T) {
	t.Parallel()
	app := newApp(t, &backend{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var addr string
	require.Eventually(t, func() bool {
		addr = app.Addr()
		return addr != "127.0.0.1:0"
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

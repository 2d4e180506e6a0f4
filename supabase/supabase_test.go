package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/postgrest-go"

	"github.com/eurodata/site/core/config"
	"github.com/eurodata/site/supabase"
)

type row struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  supabase.Config
		want []error
	}{
		{"valid", supabase.Config{URL: "https://x.supabase.co", PublishableKey: "pk"}, nil},
		{"missing both", supabase.Config{}, []error{supabase.ErrMissingURL, supabase.ErrMissingKey}},
		{"missing key", supabase.Config{URL: "https://x.supabase.co"}, []error{supabase.ErrMissingKey}},
		{"relative url", supabase.Config{URL: "x.supabase.co", PublishableKey: "pk"}, []error{supabase.ErrInvalidURL}},
		{"bad scheme", supabase.Config{URL: "ftp://x.supabase.co", PublishableKey: "pk"}, []error{supabase.ErrInvalidURL}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}

			_, err = supabase.NewFactory(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Run("primary names", func(t *testing.T) {
		config.Reset()
		t.Setenv("SUPABASE_URL", "https://primary.supabase.co")
		t.Setenv("SUPABASE_PUBLISHABLE_KEY", "pk-primary")

		var cfg supabase.Config
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://primary.supabase.co", cfg.URL)
		assert.Equal(t, "pk-primary", cfg.PublishableKey)
	})

	t.Run("public fallbacks", func(t *testing.T) {
		config.Reset()
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_PUBLISHABLE_KEY", "")
		require.NoError(t, os.Unsetenv("SUPABASE_URL"))
		require.NoError(t, os.Unsetenv("SUPABASE_PUBLISHABLE_KEY"))
		t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://public.supabase.co")
		t.Setenv("NEXT_PUBLIC_SUPABASE_PUBLISHABLE_KEY", "pk-public")

		var cfg supabase.Config
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://public.supabase.co", cfg.URL)
		assert.Equal(t, "pk-public", cfg.PublishableKey)
	})
}

func TestBrowserConfig(t *testing.T) {
	t.Parallel()

	f, err := supabase.NewFactory(supabase.Config{URL: "https://x.supabase.co/", PublishableKey: " pk "})
	require.NoError(t, err)

	bc := f.Browser().BrowserConfig()
	assert.Equal(t, "https://x.supabase.co", bc.URL)
	assert.Equal(t, "pk", bc.Key)

	data, err := json.Marshal(bc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://x.supabase.co","key":"pk"}`, string(data))
}

// project is a PostgREST stand-in that records the requests it serves.
type project struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (p *project) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Clone(context.Background()))
	p.mu.Unlock()

	switch {
	case r.Header.Get("apikey") != "pk" || r.Header.Get("Authorization") != "Bearer pk":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"PGRST301","message":"Invalid API key"}`))
	case r.URL.Path == "/rest/v1/indicators":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"GDP","value":1.5},{"id":2,"name":"CPI","value":2.25}]`))
	case r.URL.Path == "/rest/v1/broken":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation does not exist"}`))
	default:
		w.WriteHeader(http.StatusBadGateway)
	}
}

func (p *project) last(t *testing.T) *http.Request {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.requests)
	return p.requests[len(p.requests)-1]
}

func newProject(t *testing.T, key string) (*project, *supabase.Factory) {
	t.Helper()
	p := &project{}
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	f, err := supabase.NewFactory(supabase.Config{URL: srv.URL, PublishableKey: key})
	require.NoError(t, err)
	return p, f
}

func TestExecute(t *testing.T) {
	t.Parallel()

	t.Run("decodes rows", func(t *testing.T) {
		t.Parallel()
		p, f := newProject(t, "pk")
		client := f.Browser()

		var rows []row
		q := client.From("indicators").
			Select("id,name,value", "", false).
			Eq("section", "economy").
			Order("name", &postgrest.OrderOpts{Ascending: true}).
			Limit(10, "")
		require.NoError(t, client.Execute(context.Background(), q, &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "GDP", rows[0].Name)
		assert.InDelta(t, 2.25, rows[1].Value, 0.0001)

		req := p.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/rest/v1/indicators", req.URL.Path)
		assert.Equal(t, "id,name,value", req.URL.Query().Get("select"))
		assert.Equal(t, "eq.economy", req.URL.Query().Get("section"))
		assert.True(t, strings.HasPrefix(req.URL.Query().Get("order"), "name.asc"))
		assert.Equal(t, "10", req.URL.Query().Get("limit"))
		assert.Equal(t, supabase.PageIdentity, req.Header.Get(supabase.ClientHeader))
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		_, f := newProject(t, "pk")
		client := f.Browser()

		var rows []row
		err := client.Execute(context.Background(), client.From("broken").Select("*", "", false), &rows)
		require.ErrorIs(t, err, supabase.ErrQuery)
		assert.Contains(t, err.Error(), "relation does not exist")
	})

	t.Run("empty error body", func(t *testing.T) {
		t.Parallel()
		_, f := newProject(t, "pk")
		client := f.Browser()

		var rows []row
		err := client.Execute(context.Background(), client.From("other").Select("*", "", false), &rows)
		assert.ErrorIs(t, err, supabase.ErrQuery)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		_, f := newProject(t, "nope")
		client := f.Browser()

		var rows []row
		err := client.Execute(context.Background(), client.From("indicators").Select("*", "", false), &rows)
		require.ErrorIs(t, err, supabase.ErrQuery)
		assert.Contains(t, err.Error(), "Invalid API key")
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		_, f := newProject(t, "pk")
		client := f.Browser()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var rows []row
		err := client.Execute(ctx, client.From("indicators").Select("*", "", false), &rows)
		assert.ErrorIs(t, err, supabase.ErrQuery)
		assert.Empty(t, rows)
	})
}

func TestFactoryHealthcheck(t *testing.T) {
	t.Parallel()

	p, f := newProject(t, "pk")

	require.NoError(t, f.Healthcheck("indicators")(context.Background()))
	req := p.last(t)
	assert.Equal(t, "/rest/v1/indicators", req.URL.Path)
	assert.Equal(t, "1", req.URL.Query().Get("limit"))
	assert.Equal(t, supabase.HealthIdentity, req.Header.Get(supabase.ClientHeader))

	err := f.Healthcheck("broken")(context.Background())
	require.ErrorIs(t, err, supabase.ErrQuery)
	assert.Contains(t, err.Error(), "broken")
}

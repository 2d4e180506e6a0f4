// Package eurodata wires the EuroData site: configuration, the locale
// shell, the section pages and the HTTP server.
package eurodata

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/eurodata/site/core/config"
	"github.com/eurodata/site/core/i18n"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/core/router"
	"github.com/eurodata/site/core/server"
	"github.com/eurodata/site/locale"
	"github.com/eurodata/site/locales"
	"github.com/eurodata/site/middleware"
	"github.com/eurodata/site/supabase"
)

type App struct {
	config   Config
	router   router.Router[*router.Context]
	server   *server.Server
	supabase *supabase.Factory
	i18n     *i18n.I18n
	registry *prometheus.Registry
	logger   *slog.Logger

	configured bool
}

type AppOption func(*App) error

// NewApp loads the configuration from the environment unless WithConfig
// is given and builds every missing dependency from it. It fails when the
// Supabase credentials are missing.
func NewApp(opts ...AppOption) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configured {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.ForEnv(app.config.Env, app.config.AppName),
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
			logger.WithContextExtractors(middleware.RequestIDExtractor, middleware.LocaleExtractor),
		)
	}

	if app.supabase == nil {
		f, err := supabase.NewFactory(app.config.Supabase)
		if err != nil {
			return nil, err
		}
		app.supabase = f
	}

	if app.i18n == nil {
		store, err := locales.Load(locale.Default.String(),
			i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
				app.logger.Debug("missing translation",
					logger.Locale(lang),
					logger.Key("namespace", namespace),
					logger.Key("key", key),
				)
			}))
		if err != nil {
			return nil, err
		}
		app.i18n = store
	}

	if app.registry == nil {
		app.registry = prometheus.NewRegistry()
	}

	if app.router == nil {
		app.router = app.routes()
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

// Handler returns the application's HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Addr returns the server's bound address once it is listening.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Run serves until ctx is canceled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	return g.Wait()
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configured = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithSupabase(factory *supabase.Factory) AppOption {
	return func(app *App) error {
		if factory == nil {
			return errors.New("supabase factory cannot be nil")
		}
		app.supabase = factory
		return nil
	}
}

// WithRegistry sets the registry that collects and exposes the request
// metrics.
func WithRegistry(registry *prometheus.Registry) AppOption {
	return func(app *App) error {
		if registry == nil {
			return errors.New("registry cannot be nil")
		}
		app.registry = registry
		return nil
	}
}

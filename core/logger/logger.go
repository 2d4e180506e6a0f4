package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ContextExtractor pulls a request-scoped attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level       slog.Level
	output      io.Writer
	development bool
	attrs       []slog.Attr
	extractors  []ContextExtractor
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithContextExtractors adds extractors consulted on every *Context call.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithDevelopment selects coloured text output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.development = true
		c.level = slog.LevelDebug
		c.attrs = append(c.attrs, slog.String("service", service))
	}
}

// WithStaging selects JSON output at info level.
func WithStaging(service string) Option {
	return func(c *config) {
		c.development = false
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// WithProduction selects JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.development = false
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// ForEnv picks WithDevelopment, WithStaging or WithProduction by name.
// Unknown names are treated as development.
func ForEnv(env, service string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(service)
	case "staging", "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

// New builds a logger. Options apply in order, so a WithLevel after an
// environment option overrides the environment's default level.
func New(opts ...Option) *slog.Logger {
	cfg := &config{level: slog.LevelInfo, output: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	var h slog.Handler
	if cfg.development {
		h = tint.NewHandler(cfg.output, &tint.Options{
			Level:      cfg.level,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	}

	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}
	return slog.New(h)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything
// else yields info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SetAsDefault installs l as the slog default logger.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}

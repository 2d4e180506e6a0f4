// Package supabase connects pages to a Supabase project through its
// PostgREST endpoint, using postgrest-go.
//
// A Factory is built once at startup from validated credentials and
// shared. Page handlers call Browser for a Client; middleware never
// does, so requests that are rejected early make no backend calls.
// Server-side health checks use Factory.Healthcheck, which has its own client.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

const (
	restPath = "/rest/v1"
	schema   = "public"

	// DefaultTimeout bounds every query.
	DefaultTimeout = 10 * time.Second

	// ClientHeader carries the identity of the calling client.
	ClientHeader = "X-Eurodata-Client"

	PageIdentity   = "eurodata-page"
	HealthIdentity = "eurodata-health"
)

// ErrQuery wraps every failed PostgREST request.
var ErrQuery = errors.New("supabase: query failed")

// Factory creates Clients for one project. Safe for concurrent use.
type Factory struct {
	base    *url.URL
	key     string
	timeout time.Duration
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithTimeout replaces DefaultTimeout. Zero or less disables it.
func WithTimeout(d time.Duration) FactoryOption {
	return func(f *Factory) {
		f.timeout = d
	}
}

// NewFactory validates cfg and returns a factory.
func NewFactory(cfg Config, opts ...FactoryOption) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := parseProjectURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	f := &Factory{
		base:    base,
		key:     strings.TrimSpace(cfg.PublishableKey),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Factory) rest(identity string) *postgrest.Client {
	return postgrest.NewClient(f.base.String()+restPath, schema, map[string]string{
		"apikey":        f.key,
		"Authorization": "Bearer " + f.key,
		ClientHeader:    identity,
	})
}

// Browser returns a client acting with the publishable key, the same
// identity browser scripts use. Only page rendering calls it.
func (f *Factory) Browser() *Client {
	return &Client{
		rest:    f.rest(PageIdentity),
		browser: BrowserConfig{URL: f.base.String(), Key: f.key},
		timeout: f.timeout,
	}
}

// Healthcheck returns a readiness check that reads one row of table
// through a server-side client of its own.
func (f *Factory) Healthcheck(table string) func(context.Context) error {
	rest := f.rest(HealthIdentity)
	return func(ctx context.Context) error {
		var rows []json.RawMessage
		q := rest.From(table).Select("*", "", false).Limit(1, "")
		if err := execute(ctx, f.timeout, q, &rows); err != nil {
			return fmt.Errorf("supabase healthcheck %s: %w", table, err)
		}
		return nil
	}
}

// Client issues PostgREST requests for page rendering.
type Client struct {
	rest    *postgrest.Client
	browser BrowserConfig
	timeout time.Duration
}

// BrowserConfig is the part of the configuration that is safe to embed
// in a page for browser scripts.
type BrowserConfig struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// BrowserConfig returns the project URL and publishable key.
func (c *Client) BrowserConfig() BrowserConfig {
	return c.browser
}

// From starts a query against table.
//
//	q := c.From("indicators").Select("id,name", "", false).Eq("section", "economy")
//	err := c.Execute(ctx, q, &rows)
func (c *Client) From(table string) *postgrest.QueryBuilder {
	return c.rest.From(table)
}

// Execute runs q and decodes the JSON rows into dst.
func (c *Client) Execute(ctx context.Context, q *postgrest.FilterBuilder, dst any) error {
	return execute(ctx, c.timeout, q, dst)
}

func execute(ctx context.Context, timeout time.Duration, q *postgrest.FilterBuilder, dst any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if _, err := q.ExecuteToWithContext(ctx, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

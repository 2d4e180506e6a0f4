package supabase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingURL = errors.New("supabase: project URL is required (SUPABASE_URL)")
	ErrMissingKey = errors.New("supabase: publishable key is required (SUPABASE_PUBLISHABLE_KEY)")
	ErrInvalidURL = errors.New("supabase: project URL must be an absolute http(s) URL")
)

// Config holds the project credentials. The NEXT_PUBLIC_ names are
// accepted as fallbacks so existing deployment environments keep working.
type Config struct {
	URL            string `env:"SUPABASE_URL,expand" envDefault:"${NEXT_PUBLIC_SUPABASE_URL}"`
	PublishableKey string `env:"SUPABASE_PUBLISHABLE_KEY,expand" envDefault:"${NEXT_PUBLIC_SUPABASE_PUBLISHABLE_KEY}"`
}

// Validate checks that both credentials are present and the URL is usable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.URL) == "" {
		errs = append(errs, ErrMissingURL)
	} else if _, err := parseProjectURL(c.URL); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.PublishableKey) == "" {
		errs = append(errs, ErrMissingKey)
	}
	return errors.Join(errs...)
}

func parseProjectURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery, u.Fragment = "", ""
	return u, nil
}

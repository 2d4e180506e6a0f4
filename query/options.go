package query

import (
	"encoding/json"
	"time"
)

// DefaultStaleTime is how long a fetched value is served from cache.
const DefaultStaleTime = 60 * time.Second

// Options apply to every entry of a Client.
type Options struct {
	// StaleTime is how long a value is fresh. Zero or less disables
	// caching, so every Fetch calls its loader.
	StaleTime time.Duration
	// RefetchOnWindowFocus is forwarded to browser scripts; the server
	// never refetches on its own.
	RefetchOnWindowFocus bool
}

// DefaultOptions returns a 60 second stale window with refetch on focus
// disabled.
func DefaultOptions() Options {
	return Options{StaleTime: DefaultStaleTime}
}

// MarshalJSON encodes the options the way browser query clients expect
// them, with the stale time in milliseconds.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StaleTime            int64 `json:"staleTime"`
		RefetchOnWindowFocus bool  `json:"refetchOnWindowFocus"`
	}{
		StaleTime:            o.StaleTime.Milliseconds(),
		RefetchOnWindowFocus: o.RefetchOnWindowFocus,
	})
}

// Config is the environment form of Options.
type Config struct {
	StaleTime            time.Duration `env:"QUERY_STALE_TIME" envDefault:"60s"`
	RefetchOnWindowFocus bool          `env:"QUERY_REFETCH_ON_WINDOW_FOCUS" envDefault:"false"`
}

// Options converts the configuration.
func (c Config) Options() Options {
	return Options{StaleTime: c.StaleTime, RefetchOnWindowFocus: c.RefetchOnWindowFocus}
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when the environment cannot be parsed into
// the target struct, including missing required variables.
var ErrParsingConfig = errors.New("failed to parse environment configuration")

var (
	dotenvOnce sync.Once

	cacheMu sync.Mutex
	cache   = map[reflect.Type]any{}
)

// Load fills cfg from the environment. The first call for a type parses
// the environment; later calls for the same type copy the cached value.
// A .env file in the working directory is loaded once, if present, and
// never overrides variables that are already set.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(cfg).Elem()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", typ, err))
	}
	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is Load that panics on error. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration so the next Load reads the
// environment again. Tests use it between cases.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[reflect.Type]any{}
}

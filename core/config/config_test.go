package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurodata/site/core/config"
)

type serverConfig struct {
	Addr    string        `env:"CONFIG_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Key string `env:"CONFIG_TEST_REQUIRED_KEY,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults and overrides", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_ADDR", ":9000")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_ADDR", ":1111")

		var first serverConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CONFIG_TEST_ADDR", ":2222")
		var second serverConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)

		config.Reset()
		var third serverConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, ":2222", third.Addr)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Contains(t, err.Error(), "CONFIG_TEST_REQUIRED_KEY")
	})

	t.Run("must load panics", func(t *testing.T) {
		config.Reset()

		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}

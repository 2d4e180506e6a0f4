package eurodata

import (
	"github.com/eurodata/site/core/server"
	"github.com/eurodata/site/query"
	"github.com/eurodata/site/supabase"
)

type Config struct {
	Server   server.Config
	Supabase supabase.Config
	Query    query.Config

	AppName  string `env:"APP_NAME" envDefault:"eurodata"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// IsDevelopment reports whether the app runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

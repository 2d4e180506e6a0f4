// Package config loads typed configuration from environment variables.
// Each configuration type is parsed once and cached for later calls.
//
// A .env file is loaded on first use; variables are parsed with
// caarlos0/env, so structs declare their variables with env tags:
//
//	type Config struct {
//		URL string `env:"SUPABASE_URL,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Different types are cached independently. Reset clears the cache.
package config

// Package config loads the library's runtime settings from environment
// variables. A .env file, when present, is loaded once before the first
// parse; it is optional and its absence is not an error.
//
// Settings structs declare their variables with caarlos0/env tags:
//
//	type CacheConfig struct {
//	    Capacity int           `env:"REGVAL_CACHE_CAPACITY" envDefault:"1000"`
//	    TTL      time.Duration `env:"REGVAL_CACHE_TTL" envDefault:"5m"`
//	}
//
// Load parses into any such struct. Defaults mirror the batch layer's
// compiled-in defaults, so an empty environment yields a working setup.
package config

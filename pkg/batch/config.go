package batch

import (
	"time"

	"github.com/openreg/regval/pkg/config"
)

// Config holds the cache and drain-loop settings. The zero value is not
// usable directly; use DefaultConfig, FromEnv, or normalize via New which
// replaces non-positive fields with their defaults.
type Config struct {
	// ReportCacheCapacity bounds the report-result cache.
	ReportCacheCapacity int `env:"REGVAL_REPORT_CACHE_CAPACITY" envDefault:"1000"`
	// FieldCacheCapacity bounds the field-outcome cache.
	FieldCacheCapacity int `env:"REGVAL_FIELD_CACHE_CAPACITY" envDefault:"5000"`
	// DefaultTTL applies when a caller passes a zero TTL.
	DefaultTTL time.Duration `env:"REGVAL_CACHE_TTL" envDefault:"5m"`
	// SweepInterval is the period of the expired-entry sweeper.
	SweepInterval time.Duration `env:"REGVAL_CACHE_SWEEP_INTERVAL" envDefault:"1m"`
	// GroupSize is how many queued requests one drain iteration takes.
	GroupSize int `env:"REGVAL_BATCH_GROUP_SIZE" envDefault:"10"`
	// ChunkSize is the number of requests validated concurrently within a
	// group; it is the parallelism bound.
	ChunkSize int `env:"REGVAL_BATCH_CHUNK_SIZE" envDefault:"4"`
	// GroupDelay is the pause between groups, bounding peak load.
	GroupDelay time.Duration `env:"REGVAL_BATCH_GROUP_DELAY" envDefault:"50ms"`
}

// DefaultConfig returns the compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		ReportCacheCapacity: 1000,
		FieldCacheCapacity:  5000,
		DefaultTTL:          5 * time.Minute,
		SweepInterval:       time.Minute,
		GroupSize:           10,
		ChunkSize:           4,
		GroupDelay:          50 * time.Millisecond,
	}
}

// FromEnv loads the configuration from environment variables, falling back
// to the same defaults as DefaultConfig.
func FromEnv() (Config, error) {
	var c Config
	if err := config.Load(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.ReportCacheCapacity <= 0 {
		c.ReportCacheCapacity = def.ReportCacheCapacity
	}
	if c.FieldCacheCapacity <= 0 {
		c.FieldCacheCapacity = def.FieldCacheCapacity
	}
	if c.DefaultTTL <= 0 {
		c.DefaultTTL = def.DefaultTTL
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.GroupSize <= 0 {
		c.GroupSize = def.GroupSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.GroupDelay < 0 {
		c.GroupDelay = def.GroupDelay
	}
	return c
}

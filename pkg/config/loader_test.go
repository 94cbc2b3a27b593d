package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreg/regval/pkg/config"
)

type testSettings struct {
	Capacity int           `env:"REGVAL_TEST_CAPACITY" envDefault:"1000"`
	TTL      time.Duration `env:"REGVAL_TEST_TTL" envDefault:"5m"`
	Name     string        `env:"REGVAL_TEST_NAME" envDefault:"regval"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply with an empty environment", func(t *testing.T) {
		var s testSettings
		require.NoError(t, config.Load(&s))

		assert.Equal(t, 1000, s.Capacity)
		assert.Equal(t, 5*time.Minute, s.TTL)
		assert.Equal(t, "regval", s.Name)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("REGVAL_TEST_CAPACITY", "25")
		t.Setenv("REGVAL_TEST_TTL", "30s")

		var s testSettings
		require.NoError(t, config.Load(&s))

		assert.Equal(t, 25, s.Capacity)
		assert.Equal(t, 30*time.Second, s.TTL)
	})

	t.Run("malformed values error", func(t *testing.T) {
		t.Setenv("REGVAL_TEST_CAPACITY", "not-a-number")

		var s testSettings
		assert.Error(t, config.Load(&s))
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[testSettings](nil), config.ErrNilPointer)
	})
}

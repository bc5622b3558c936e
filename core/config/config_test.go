package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/core/config"
)

type sampleConfig struct {
	Name    string        `env:"FOLIO_TEST_NAME" envDefault:"folio"`
	Timeout time.Duration `env:"FOLIO_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"FOLIO_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.Reset()

		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "folio", cfg.Name)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads environment and caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("FOLIO_TEST_NAME", "from-env")

		var first sampleConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "from-env", first.Name)

		t.Setenv("FOLIO_TEST_NAME", "changed")

		var second sampleConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "from-env", second.Name, "cached value must be returned")
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FOLIO_TEST_REQUIRED_SECRET")
	})

	t.Run("nil target", func(t *testing.T) {
		var cfg *sampleConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilTarget)
	})
}

func TestMustLoadPanics(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

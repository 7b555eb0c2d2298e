package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/pkg/config"
)

type testConfig struct {
	Name    string        `env:"LOADER_TEST_NAME" envDefault:"fallback"`
	Timeout time.Duration `env:"LOADER_TEST_TIMEOUT" envDefault:"15s"`
}

type requiredConfig struct {
	Secret string `env:"LOADER_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("LOADER_TEST_NAME", "gadisewa")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "gadisewa", cfg.Name)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("LOADER_TEST_NAME", "first")

	var first testConfig
	require.NoError(t, config.Load(&first))

	// A later change to the environment must not produce a second,
	// diverging copy of the same config type.
	t.Setenv("LOADER_TEST_NAME", "second")
	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Name, second.Name)
}

func TestLoadNilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storelocator/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"TEST_CFG_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
	Secret  string        `env:"TEST_CFG_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEST_CFG_SECRET", "s3cret")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TEST_CFG_SECRET", "s3cret")
	t.Setenv("TEST_CFG_ADDR", ":9999")
	t.Setenv("TEST_CFG_TIMEOUT", "250ms")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeowayLabs/gbm/format"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	f, err := cfg.Soak.FourCC()
	require.NoError(t, err)
	assert.Equal(t, format.XRGB8888, f)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DUMBGBM_CARD", "/dev/dri/card1")
	t.Setenv("DUMBGBM_STRICT", "true")
	t.Setenv("DUMBGBM_SOAK_WORKERS", "9")
	t.Setenv("DUMBGBM_SOAK_DURATION", "2m")
	t.Setenv("DUMBGBM_SOAK_FORMAT", "AR24")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/dev/dri/card1", cfg.Card)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 9, cfg.Soak.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Soak.Duration)
	assert.Equal(t, "AR24", cfg.Soak.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dumbgbm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
card: /dev/dri/card2
log:
  level: debug
  console: false
soak:
  width: 640
  height: 480
`), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/dri/card2", cfg.Card)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
	assert.Equal(t, uint32(640), cfg.Soak.Width)
	assert.Equal(t, uint32(480), cfg.Soak.Height)
	assert.Equal(t, 4, cfg.Soak.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DUMBGBM_SOAK_WORKERS", "9")

	flags := pflag.NewFlagSet("soak", pflag.ContinueOnError)
	flags.Int("workers", 1, "")
	require.NoError(t, flags.Parse([]string{"--workers", "3"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("soak.workers", flags.Lookup("workers")))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Soak.Workers)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"no card":        func(c *Config) { c.Card = "" },
		"bad level":      func(c *Config) { c.Log.Level = "loud" },
		"no workers":     func(c *Config) { c.Soak.Workers = 0 },
		"no duration":    func(c *Config) { c.Soak.Duration = 0 },
		"empty buffer":   func(c *Config) { c.Soak.Height = 0 },
		"unknown format": func(c *Config) { c.Soak.Format = "NV12" },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
	assert.NoError(t, DefaultConfig().Validate())
}

// Package config loads dumbgbm settings from flags, DUMBGBM_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NeowayLabs/gbm/format"
)

const EnvPrefix = "DUMBGBM"

type Config struct {
	Card   string     `mapstructure:"card"`
	Strict bool       `mapstructure:"strict"`
	Log    LogConfig  `mapstructure:"log"`
	Soak   SoakConfig `mapstructure:"soak"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// SoakConfig drives the soak command. Format is a fourcc name such as
// XR24.
type SoakConfig struct {
	Workers  int           `mapstructure:"workers"`
	Duration time.Duration `mapstructure:"duration"`
	Listen   string        `mapstructure:"listen"`
	Width    uint32        `mapstructure:"width"`
	Height   uint32        `mapstructure:"height"`
	Format   string        `mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Card: "/dev/dri/card0",
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Soak: SoakConfig{
			Workers:  4,
			Duration: 30 * time.Second,
			Listen:   ":9464",
			Width:    1920,
			Height:   1080,
			Format:   "XR24",
		},
	}
}

// Load reads the configuration through v, which may already have flags
// bound to it. cfgFile is optional; without it only defaults, flags and
// environment are used.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Card == "" {
		return errors.New("card must be set")
	}
	validLevels := []string{"trace", "debug", "info", "warn", "warning", "error"}
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of: %v", validLevels)
	}
	if c.Soak.Workers < 1 {
		return errors.New("soak.workers must be at least 1")
	}
	if c.Soak.Duration <= 0 {
		return errors.New("soak.duration must be positive")
	}
	if c.Soak.Width == 0 || c.Soak.Height == 0 {
		return errors.New("soak.width and soak.height must be positive")
	}
	if _, err := c.Soak.FourCC(); err != nil {
		return fmt.Errorf("soak.format: %w", err)
	}
	return nil
}

// FourCC returns the soak buffer format code.
func (s SoakConfig) FourCC() (uint32, error) {
	return format.Parse(s.Format)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("card", cfg.Card)
	v.SetDefault("strict", cfg.Strict)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.console", cfg.Log.Console)

	v.SetDefault("soak.workers", cfg.Soak.Workers)
	v.SetDefault("soak.duration", cfg.Soak.Duration)
	v.SetDefault("soak.listen", cfg.Soak.Listen)
	v.SetDefault("soak.width", cfg.Soak.Width)
	v.SetDefault("soak.height", cfg.Soak.Height)
	v.SetDefault("soak.format", cfg.Soak.Format)
}

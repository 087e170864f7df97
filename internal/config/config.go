// Package config loads the continuo configuration from a TOML or YAML file
// and CONTINUO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Precision int     `toml:"precision" yaml:"precision" env:"CONTINUO_PRECISION" env-default:"50" env-description:"decimal digits of approximate results"`
	Threshold int64   `toml:"threshold" yaml:"threshold" env:"CONTINUO_THRESHOLD" env-description:"integers at or above it take the Gamma path, 0 is unset"`
	Tolerance float64 `toml:"tolerance" yaml:"tolerance" env:"CONTINUO_TOLERANCE" env-description:"distance within which a value counts as an integer"`

	Cache       CacheConfig       `toml:"cache" yaml:"cache" env-prefix:"CONTINUO_CACHE_"`
	Log         LogConfig         `toml:"log" yaml:"log" env-prefix:"CONTINUO_LOG_"`
	Concurrency ConcurrencyConfig `toml:"concurrency" yaml:"concurrency" env-prefix:"CONTINUO_CONCURRENCY_"`
	Bench       BenchConfig       `toml:"bench" yaml:"bench" env-prefix:"CONTINUO_BENCH_"`
}

type CacheConfig struct {
	NumCounters int64 `toml:"num_counters" yaml:"num_counters" env:"NUM_COUNTERS" env-default:"10000"`
	MaxCost     int64 `toml:"max_cost" yaml:"max_cost" env:"MAX_COST" env-default:"1024"`
	BufferItems int64 `toml:"buffer_items" yaml:"buffer_items" env:"BUFFER_ITEMS" env-default:"64"`
}

type LogConfig struct {
	Level       string `toml:"level" yaml:"level" env:"LEVEL" env-default:"info"`
	Development bool   `toml:"development" yaml:"development" env:"DEVELOPMENT"`
	BufferSize  int    `toml:"buffer_size" yaml:"buffer_size" env:"BUFFER_SIZE" env-default:"16"`
}

type ConcurrencyConfig struct {
	BufferSize int `toml:"buffer_size" yaml:"buffer_size" env:"BUFFER_SIZE" env-default:"4"`
}

type BenchConfig struct {
	Precisions []int `toml:"precisions" yaml:"precisions" env:"PRECISIONS" env-default:"30,60,120,240"`
}

// Load reads path, when given, and then the environment, which wins.
// Unset fields take their defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no evaluation could use. A precision below
// continuation.MinPrecision is accepted; it is raised at evaluation time.
func (c *Config) Validate() error {
	var errs []error
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must not be negative, got %d", c.Threshold))
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		errs = append(errs, fmt.Errorf("tolerance must be a finite non-negative number, got %v", c.Tolerance))
	}
	if c.Cache.NumCounters <= 0 || c.Cache.MaxCost <= 0 || c.Cache.BufferItems <= 0 {
		errs = append(errs, fmt.Errorf("cache sizes must be positive, got %+v", c.Cache))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.BufferSize < 1 {
		errs = append(errs, fmt.Errorf("log.buffer_size must be positive, got %d", c.Log.BufferSize))
	}
	if c.Concurrency.BufferSize < 1 {
		errs = append(errs, fmt.Errorf("concurrency.buffer_size must be positive, got %d", c.Concurrency.BufferSize))
	}
	for _, p := range c.Bench.Precisions {
		if p < 1 {
			errs = append(errs, fmt.Errorf("bench.precisions must be positive, got %d", p))
			break
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Build returns the zap logger the log section describes.
func (l LogConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (c CacheConfig) Evaluator() continuation.CacheConfig {
	return continuation.CacheConfig{
		NumCounters: c.NumCounters,
		MaxCost:     c.MaxCost,
		BufferItems: c.BufferItems,
	}
}

// Encode writes the configuration as "toml" or "yaml".
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("config: unknown format %q, want toml or yaml", format)
	}
}

// Bindings exposes the configuration to the binding effect.
func (c *Config) Bindings() map[string]any {
	return map[string]any{
		configkeys.ConfigContinuationPrecision:              c.Precision,
		configkeys.ConfigContinuationThreshold:              c.Threshold,
		configkeys.ConfigContinuationTolerance:              c.Tolerance,
		configkeys.ConfigBenchPrecisions:                    append([]int(nil), c.Bench.Precisions...),
		configkeys.ConfigEffectLogHandlerBufferSize:         c.Log.BufferSize,
		configkeys.ConfigEffectConcurrencyHandlerBufferSize: c.Concurrency.BufferSize,
	}
}

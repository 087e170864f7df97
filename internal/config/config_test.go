package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"github.com/on-the-ground/continuation_go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Precision)
	assert.Equal(t, int64(0), cfg.Threshold)
	assert.Equal(t, 0.0, cfg.Tolerance)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, 16, cfg.Log.BufferSize)
	assert.Equal(t, 4, cfg.Concurrency.BufferSize)
	assert.Equal(t, []int{30, 60, 120, 240}, cfg.Bench.Precisions)
	assert.Equal(t, int64(10000), cfg.Cache.NumCounters)
	assert.Equal(t, int64(1024), cfg.Cache.MaxCost)
	assert.Equal(t, int64(64), cfg.Cache.BufferItems)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONTINUO_PRECISION", "80")
	t.Setenv("CONTINUO_THRESHOLD", "1000")
	t.Setenv("CONTINUO_LOG_LEVEL", "debug")
	t.Setenv("CONTINUO_BENCH_PRECISIONS", "10,20")
	t.Setenv("CONTINUO_CACHE_MAX_COST", "7")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Precision)
	assert.Equal(t, int64(1000), cfg.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []int{10, 20}, cfg.Bench.Precisions)
	assert.Equal(t, int64(7), cfg.Cache.MaxCost)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeFile(t, "continuo.toml", `
precision = 120
threshold = 500
tolerance = 1e-9

[log]
level = "warn"
development = true

[bench]
precisions = [15, 25]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Precision)
	assert.Equal(t, int64(500), cfg.Threshold)
	assert.Equal(t, 1e-9, cfg.Tolerance)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, []int{15, 25}, cfg.Bench.Precisions)
	// untouched sections keep their defaults
	assert.Equal(t, 16, cfg.Log.BufferSize)
	assert.Equal(t, int64(10000), cfg.Cache.NumCounters)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := writeFile(t, "continuo.yaml", `
precision: 30
log:
  level: error
`)
	t.Setenv("CONTINUO_PRECISION", "60")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Precision)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.toml", "threshold = -3\n[log]\nlevel = \"loud\"\n")
	_, err = config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
	assert.Contains(t, err.Error(), "loud")
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Bench.Precisions = []int{30, 0}
	assert.ErrorContains(t, cfg.Validate(), "bench.precisions")

	cfg, _ = config.Load("")
	cfg.Tolerance = -1
	assert.ErrorContains(t, cfg.Validate(), "tolerance")

	cfg, _ = config.Load("")
	cfg.Cache.BufferItems = 0
	assert.ErrorContains(t, cfg.Validate(), "cache")

	// low precisions are raised later, not rejected
	cfg, _ = config.Load("")
	cfg.Precision = 0
	assert.NoError(t, cfg.Validate())
}

func TestEncode(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Threshold = 1000

	var tb bytes.Buffer
	require.NoError(t, cfg.Encode(&tb, "toml"))
	var fromTOML config.Config
	_, err = toml.Decode(tb.String(), &fromTOML)
	require.NoError(t, err)
	assert.Equal(t, *cfg, fromTOML)

	var yb bytes.Buffer
	require.NoError(t, cfg.Encode(&yb, "yaml"))
	assert.Contains(t, yb.String(), "threshold: 1000")
	var fromYAML config.Config
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	assert.Equal(t, *cfg, fromYAML)

	assert.Error(t, cfg.Encode(&yb, "json"))
}

func TestLogBuild(t *testing.T) {
	logger, err := config.LogConfig{Level: "debug", Development: true}.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	logger, err = config.LogConfig{Level: "warn"}.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0))

	_, err = config.LogConfig{Level: "nope"}.Build()
	assert.Error(t, err)
}

func TestBindings(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	b := cfg.Bindings()
	assert.Equal(t, 50, b[configkeys.ConfigContinuationPrecision])
	assert.Equal(t, int64(0), b[configkeys.ConfigContinuationThreshold])
	assert.Equal(t, 0.0, b[configkeys.ConfigContinuationTolerance])
	assert.Equal(t, []int{30, 60, 120, 240}, b[configkeys.ConfigBenchPrecisions])
	assert.Equal(t, 16, b[configkeys.ConfigEffectLogHandlerBufferSize])
	assert.Equal(t, 4, b[configkeys.ConfigEffectConcurrencyHandlerBufferSize])

	// the bound slice is a copy
	b[configkeys.ConfigBenchPrecisions].([]int)[0] = 1
	assert.Equal(t, 30, cfg.Bench.Precisions[0])

	ec := cfg.Cache.Evaluator()
	assert.Equal(t, cfg.Cache.MaxCost, ec.MaxCost)
}

package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/on-the-ground/continuation_go/cmd/continuo/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := cmd.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestFactorial_ExactInteger(t *testing.T) {
	out, errOut, err := run(t, "factorial", "--x", "5")
	require.NoError(t, err)
	assert.Equal(t, "5!  =  120\n", out)
	assert.Empty(t, errOut)
}

func TestFactorial_DefaultIsHalfInteger(t *testing.T) {
	out, _, err := run(t, "factorial", "--prec", "25")
	require.NoError(t, err)
	assert.Equal(t, "-0.5!  =  1.772453850905516027298167\n", out)
}

func TestFactorial_Pole(t *testing.T) {
	out, errOut, err := run(t, "factorial", "--x", "-2")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: "), out)
	assert.Contains(t, out, "pole of the Gamma function")
	assert.Empty(t, errOut)
}

func TestFactorial_ThresholdSwitchesToGamma(t *testing.T) {
	out, _, err := run(t, "factorial", "--x", "30", "--threshold", "10", "--prec", "20")
	require.NoError(t, err)
	assert.Equal(t, "30!  =  2.6525285981219105864e+32\n", out)
}

func TestFactorial_RejectsNegativeFlags(t *testing.T) {
	_, errOut, err := run(t, "factorial", "--x", "3", "--tol", "-0.1")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: --threshold and --tol must not be negative")
}

func TestFactorial_RejectsUnboundedTolerance(t *testing.T) {
	for _, tol := range []string{"+Inf", "NaN"} {
		_, errOut, err := run(t, "factorial", "--x", "3.5", "--tol", tol)
		require.Error(t, err)
		assert.Contains(t, errOut, "Error: --tol must be a finite number")
	}
}

func TestFactorial_HugeIntegerNeedsThreshold(t *testing.T) {
	out, _, err := run(t, "factorial", "--x", "1e9")
	require.Error(t, err)
	assert.Contains(t, out, "set a threshold")

	out, _, err = run(t, "factorial", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "set --threshold to evaluate larger integers")
}

func TestFactorial_Timeout(t *testing.T) {
	out, _, err := run(t, "factorial", "--x", "0.3", "--prec", "3000", "--timeout", "1ns")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, out, "Error: context deadline exceeded")
}

func TestFactorial_Benchmark(t *testing.T) {
	out, _, err := run(t, "factorial", "--bench", "--x", "-0.5", "--prec-list", "20,40")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[Benchmark] Evaluating Gamma(x+1) at x=-0.5 for precisions: [20 40]", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  p=  20 digits  ->  "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " s"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  p=  40 digits  ->  "), lines[2])
}

func TestFactorial_BenchmarkUsesConfiguredPrecisions(t *testing.T) {
	t.Setenv("CONTINUO_BENCH_PRECISIONS", "25")
	out, _, err := run(t, "factorial", "--bench", "--x", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "for precisions: [25]")
	assert.Contains(t, out, "p=  25 digits")
}

func TestZeta(t *testing.T) {
	out, _, err := run(t, "zeta", "--re", "2", "--prec", "20")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ζ(2)  =  1.6449340668482264365 "), out)

	out, _, err = run(t, "zeta", "--re", "1")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: "), out)
}

func TestZeta_PrecisionFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "continuo.toml")
	require.NoError(t, os.WriteFile(path, []byte("precision = 20\n"), 0o600))

	out, _, err := run(t, "--config", path, "zeta", "--re", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ζ(2)  =  1.6449340668482264365 "), out)
}

func TestDemo(t *testing.T) {
	out, _, err := run(t, "demo", "--demo", "sum")
	require.NoError(t, err)
	assert.Contains(t, out, "Data 解析延拓 (Analytic Continuation of Data)")
	assert.Contains(t, out, "ζ(-1) = -0.083333333333333")
	assert.NotContains(t, out, "=== Data Sampling and Continuation ===")

	_, errOut, err := run(t, "demo", "--demo", "nope")
	require.Error(t, err)
	assert.Contains(t, errOut, `unknown demo "nope"`)
}

func TestCangjie(t *testing.T) {
	out, _, err := run(t, "cangjie")
	require.NoError(t, err)
	assert.Contains(t, out, "Chinese: 一 + 二 = 三")
}

func TestConfig(t *testing.T) {
	t.Setenv("CONTINUO_PRECISION", "70")

	out, _, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "precision = 70")

	out, _, err = run(t, "config", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "precision: 70")

	_, errOut, err := run(t, "config", "--format", "ini")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: ")
}

func TestInvalidConfiguration(t *testing.T) {
	_, errOut, err := run(t, "--log-level", "loud", "factorial")
	require.Error(t, err)
	assert.Contains(t, errOut, "loud")

	_, errOut, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "factorial")
	require.Error(t, err)
	assert.Contains(t, errOut, "missing.toml")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "continuo v"+cmd.Version+"\n"), out)
	assert.Contains(t, out, "Go Version: go")
}

func TestUnknownFlag(t *testing.T) {
	_, errOut, err := run(t, "factorial", "--nope")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: unknown flag: --nope")
}

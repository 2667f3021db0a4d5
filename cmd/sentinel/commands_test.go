package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/config"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig() func() *config.Config {
	cfg := config.Default()
	cfg.Roulette.Classifier.Forest.Trees = 10
	cfg.Crash.Forest.Forest.Trees = 10
	return func() *config.Config { return cfg }
}

func TestSplitValues(t *testing.T) {
	assert.Equal(t, []string{"1.2", "3.4", "2", "1.01"}, splitValues("1.2, 3.4\n2;1.01 "))
	assert.Empty(t, splitValues(" , "))
}

func TestCrashCmd(t *testing.T) {
	out, err := run(t, newCrashCmd(testConfig()), "--values", "1.2 1.3 1.4")
	require.NoError(t, err)
	assert.Contains(t, out, "1.20x to 1.80x")
	assert.Contains(t, out, "Continuous drop")

	out, err = run(t, newCrashCmd(testConfig()), "--forest", "--values", "1.2,2.5,1.8,3.1,1.4,2.2,1.05,5.6,1.9,2.4,1.3")
	require.NoError(t, err)
	assert.Contains(t, out, "[random_forest]")

	_, err = run(t, newCrashCmd(testConfig()), "--values", "1.2 zero")
	assert.Error(t, err)
}

func TestRouletteCmd(t *testing.T) {
	out, err := run(t, newRouletteCmd(testConfig()), "--input", "12, 5 7\n0 32 15 19")
	require.NoError(t, err)
	assert.Contains(t, out, "Forecast")
	assert.Contains(t, out, "Total: 7")

	_, err = run(t, newRouletteCmd(testConfig()), "--input", "40")
	assert.Error(t, err)
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, newSimulateCmd(testConfig()), "--input", "1 3 5", "--balance", "100", "--stake", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Final balance: 130")

	_, err = run(t, newSimulateCmd(testConfig()), "--input", "1", "--policy", "fibonacci")
	assert.Error(t, err)
}

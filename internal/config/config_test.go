package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcision/prepkit/pkg/errors"
)

const fullConfig = `
log_level: debug
log_format: zerolog
input: data.csv
output: out.csv
label: target
categorical: [color]
steps:
  - name: impute
    strategy: median
  - name: minmax
    range: [-1, 1]
  - name: poly
    degree: 3
  - name: standardize
correlation:
  enabled: true
  heatmap: corr.svg
split:
  enabled: true
  test_size: 0.25
  seed: 7
  train_output: train.csv
  test_output: test.csv
summary: summary.yaml
`

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "zerolog", cfg.LogFormat)
	assert.Equal(t, "data.csv", cfg.Input)
	assert.Equal(t, "target", cfg.Label)
	assert.Equal(t, []string{"color"}, cfg.Categorical)
	assert.Equal(t, []Step{
		{Name: StepImpute, Strategy: "median"},
		{Name: StepMinMax, Range: []float64{-1, 1}},
		{Name: StepPoly, Degree: 3},
		{Name: StepStandardize},
	}, cfg.Steps)
	assert.Equal(t, Correlation{Enabled: true, Heatmap: "corr.svg"}, cfg.Correlation)
	assert.Equal(t, Split{
		Enabled:     true,
		TestSize:    0.25,
		Seed:        7,
		TrainOutput: "train.csv",
		TestOutput:  "test.csv",
	}, cfg.Split)
	assert.Equal(t, "summary.yaml", cfg.Summary)
}

func TestReadDefaults(t *testing.T) {
	cfg, err := Read(strings.NewReader("steps: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "-", cfg.Input)
	assert.Equal(t, "-", cfg.Output)
	assert.False(t, cfg.Correlation.Enabled)
	assert.False(t, cfg.Split.Enabled)
	assert.Equal(t, 0.2, cfg.Split.TestSize)
	assert.Empty(t, cfg.Steps)
}

func TestReadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PREPKIT_LOG_LEVEL", "warn")
	t.Setenv("PREPKIT_SPLIT_TEST_SIZE", "0.5")

	cfg, err := Read(strings.NewReader("log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.Split.TestSize)
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown step", "steps: [{name: scale}]", "Name"},
		{"impute without strategy", "steps: [{name: impute}]", "Strategy"},
		{"bad strategy", "steps: [{name: impute, strategy: mode}]", "Strategy"},
		{"poly without degree", "steps: [{name: poly}]", "Degree"},
		{"range of three", "steps: [{name: minmax, range: [0, 1, 2]}]", "Range"},
		{"inverted range", "steps: [{name: minmax, range: [1, 0]}]", "Range"},
		{"test size of one", "split: {test_size: 1}", "TestSize"},
		{"split without outputs", "split: {enabled: true}", "TrainOutput"},
		{"bad log level", "log_level: loud", "LogLevel"},
		{"label is categorical", "label: a\ncategorical: [a]", "Label"},
		{"duplicate categorical", "categorical: [a, a]", "Categorical"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)

			var verr *errors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.ParamName, tt.field)
		})
	}
}

func TestReadMalformedYAML(t *testing.T) {
	_, err := Read(strings.NewReader("steps: [unterminated"))
	assert.Error(t, err)
}

func TestLoadWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: from-file.csv\noutput: out.csv\n"), 0o600))

	fs := pflag.NewFlagSet("prepkit", pflag.ContinueOnError)
	fs.String("input", "", "")
	fs.String("output", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--input", "from-flag.csv", "--log-level", "error"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.csv", cfg.Input)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

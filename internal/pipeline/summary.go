package pipeline

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dishcision/prepkit/pkg/errors"
)

// Summary describes a finished run.
type Summary struct {
	RunID          string        `yaml:"run_id"`
	Samples        int           `yaml:"samples"`
	InputFeatures  int           `yaml:"input_features"`
	OutputFeatures int           `yaml:"output_features"`
	Steps          []StepSummary `yaml:"steps"`

	// ConstantColumns are the columns whose self-correlation is 0.
	ConstantColumns []string `yaml:"constant_columns,omitempty"`

	TrainSamples int `yaml:"train_samples,omitempty"`
	TestSamples  int `yaml:"test_samples,omitempty"`
}

// StepSummary describes one executed step.
type StepSummary struct {
	Name          string  `yaml:"name"`
	Features      int     `yaml:"features"`
	MissingFilled int     `yaml:"missing_filled,omitempty"`
	DurationMs    float64 `yaml:"duration_ms"`
}

// WriteSummary encodes s as YAML.
func WriteSummary(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encode summary")
	}
	return errors.Wrap(enc.Close(), "encode summary")
}

// ReadSummary decodes a summary written by WriteSummary.
func ReadSummary(r io.Reader) (Summary, error) {
	var s Summary
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, errors.Wrap(err, "decode summary")
	}
	return s, nil
}

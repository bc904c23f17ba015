package pipeline

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcision/prepkit/internal/config"
	"github.com/dishcision/prepkit/internal/dataset"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
)

const sampleCSV = `a,b,color,y
1,10,red,0
2,NA,blue,1
3,30,red,0
4,40,green,1
`

const sampleConfig = `
label: y
categorical: [color]
steps:
  - name: impute
    strategy: mean
  - name: minmax
  - name: poly
    degree: 2
correlation:
  enabled: true
split:
  enabled: true
  test_size: 0.25
  seed: 1
  train_output: train.csv
  test_output: test.csv
`

// loadSample parses yaml and reads sampleCSV. The color column is always
// categorical since it holds strings.
func loadSample(t *testing.T, yaml string) (*config.Config, *dataset.Frame) {
	t.Helper()
	cfg, err := config.Read(strings.NewReader(yaml))
	require.NoError(t, err)
	cfg.Categorical = []string{"color"}
	f, err := dataset.ReadCSV(strings.NewReader(sampleCSV), dataset.ReadOptions{Categorical: cfg.Categorical})
	require.NoError(t, err)
	return cfg, f
}

func TestRun(t *testing.T) {
	cfg, f := loadSample(t, sampleConfig)
	p, err := New(cfg)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "a^2", "b^2", "color=red", "color=blue", "color=green"}, res.Names)
	assert.Equal(t, "y", res.LabelName)
	assert.Equal(t, []float64{0, 1, 0, 1}, res.Labels)

	require.Len(t, res.Rows, 4)
	for _, row := range res.Rows {
		require.Len(t, row, 7)
		for _, v := range row {
			assert.False(t, math.IsNaN(v))
		}
	}
	// b = [10, 80/3, 30, 40] after mean imputation, then scaled to [0, 1]
	assert.InDelta(t, (80.0/3-10)/30, res.Rows[1][1], 1e-12)
	assert.InDelta(t, 1.0/9, res.Rows[1][2], 1e-12)
	assert.Equal(t, []float64{0, 1, 0}, res.Rows[1][4:])

	r, c := res.Correlation.Dims()
	assert.Equal(t, 7, r)
	assert.Equal(t, 7, c)

	require.NotNil(t, res.Split)
	assert.Len(t, res.Split.Train, 3)
	assert.Len(t, res.Split.Test, 1)
	assert.Len(t, res.Split.TrainLabels, 3)
	assert.Len(t, res.Split.TestLabels, 1)

	// rows and labels stay aligned through the shuffle
	labelOf := map[float64]float64{}
	for i, row := range res.Rows {
		labelOf[row[0]] = res.Labels[i]
	}
	for i, row := range res.Split.Train {
		assert.Equal(t, labelOf[row[0]], res.Split.TrainLabels[i])
	}
	assert.Equal(t, labelOf[res.Split.Test[0][0]], res.Split.TestLabels[0])

	s := res.Summary
	assert.Equal(t, p.RunID(), s.RunID)
	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, 2, s.InputFeatures)
	assert.Equal(t, 7, s.OutputFeatures)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, "impute", s.Steps[0].Name)
	assert.Equal(t, 1, s.Steps[0].MissingFilled)
	assert.Equal(t, 4, s.Steps[2].Features)
	assert.Empty(t, s.ConstantColumns)
	assert.Equal(t, 3, s.TrainSamples)
	assert.Equal(t, 1, s.TestSamples)
}

func TestRunDeterministicSplit(t *testing.T) {
	cfg, f1 := loadSample(t, sampleConfig)
	_, f2 := loadSample(t, sampleConfig)

	p1, err := New(cfg)
	require.NoError(t, err)
	p2, err := New(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, p1.RunID(), p2.RunID())

	r1, err := p1.Run(context.Background(), f1)
	require.NoError(t, err)
	r2, err := p2.Run(context.Background(), f2)
	require.NoError(t, err)
	assert.Equal(t, r1.Split, r2.Split)
}

func TestRunReportsConstantColumns(t *testing.T) {
	cfg, f := loadSample(t, "steps: [{name: impute, strategy: zero}]\ncorrelation: {enabled: true}\n")
	for i := range f.Rows {
		f.Rows[i][0] = 5
	}
	p, err := New(cfg)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Summary.ConstantColumns)
	assert.Nil(t, res.Split)
}

func TestRunStepError(t *testing.T) {
	cfg, f := loadSample(t, "steps: [{name: normalize}]\n")
	for i := range f.Rows {
		f.Rows[i] = []float64{1, 1, 1}
	}
	p, err := New(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "step 0 (normalize)")
}

func TestRunCancelled(t *testing.T) {
	cfg, f := loadSample(t, "steps: [{name: standardize}]\n")
	p, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, f)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunMissingLabel(t *testing.T) {
	cfg, f := loadSample(t, "label: nope\n")
	p, err := New(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), f)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestRunWithoutStepsLeavesFrameRows(t *testing.T) {
	cfg, f := loadSample(t, "label: y\n")
	want := [][]float64{{1, 10}, {2, math.NaN()}, {3, 30}, {4, 40}}

	p, err := New(cfg)
	require.NoError(t, err)
	res, err := p.Run(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "color=red", "color=blue", "color=green"}, res.Names)
	assert.Equal(t, []float64{3, 30, 1, 0, 0}, res.Rows[2])
	assert.Equal(t, []string{"a", "b"}, f.Names)
	require.Len(t, f.Rows, len(want))
	for i, row := range f.Rows {
		require.Len(t, row, len(f.Names), "row %d", i)
		assert.Equal(t, want[i][0], row[0])
		if math.IsNaN(want[i][1]) {
			assert.True(t, math.IsNaN(row[1]))
		} else {
			assert.Equal(t, want[i][1], row[1])
		}
	}
}

func TestRunLogsWithRunID(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	defer log.ResetProvider()

	cfg, f := loadSample(t, sampleConfig)
	p, err := New(cfg)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), f)
	require.NoError(t, err)

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("step finished"))
	assert.True(t, logger.ContainsMessage("dataset split"))
	assert.True(t, logger.ContainsField(log.RunIDKey, p.RunID()))
	assert.True(t, logger.ContainsField(log.StepNameKey, "poly"))
}

func TestCompile(t *testing.T) {
	steps, err := Compile([]config.Step{
		{Name: config.StepMinMax, Range: []float64{-1, 1}},
		{Name: config.StepPoly, Degree: 3},
	})
	require.NoError(t, err)
	require.Len(t, steps, 2)

	out, names, err := steps[1].Apply([][]float64{{2}}, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 4, 8}}, out)
	assert.Equal(t, []string{"x", "x^2", "x^3"}, names)

	for _, bad := range []config.Step{
		{Name: "scale"},
		{Name: config.StepImpute, Strategy: "mode"},
		{Name: config.StepMinMax, Range: []float64{1, 0}},
		{Name: config.StepPoly, Degree: -2},
	} {
		_, err := Compile([]config.Step{bad})
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "step %+v", bad)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	yaml := sampleConfig + `
output: ` + filepath.Join(dir, "out.csv") + `
summary: ` + filepath.Join(dir, "summary.yaml") + `
`
	cfg, f := loadSample(t, yaml)
	cfg.Correlation.Heatmap = filepath.Join(dir, "corr.svg")
	cfg.Split.TrainOutput = filepath.Join(dir, "train.csv")
	cfg.Split.TestOutput = filepath.Join(dir, "test.csv")

	p, err := New(cfg)
	require.NoError(t, err)
	res, err := p.Run(context.Background(), f)
	require.NoError(t, err)
	require.NoError(t, Export(res, cfg, &bytes.Buffer{}))

	out := readCSV(t, cfg.Output)
	assert.Equal(t, append(append([]string(nil), res.Names...), "y"), out.Names)
	assert.Len(t, out.Rows, 4)

	train := readCSV(t, cfg.Split.TrainOutput)
	assert.Len(t, train.Rows, 3)
	test := readCSV(t, cfg.Split.TestOutput)
	assert.Len(t, test.Rows, 1)
	assert.Equal(t, res.Split.TestLabels[0], test.Rows[0][len(test.Rows[0])-1])

	info, err := os.Stat(cfg.Correlation.Heatmap)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	sf, err := os.Open(cfg.Summary)
	require.NoError(t, err)
	defer sf.Close()
	summary, err := ReadSummary(sf)
	require.NoError(t, err)
	assert.Equal(t, res.Summary, summary)
}

func TestExportToStdout(t *testing.T) {
	cfg, f := loadSample(t, "steps: [{name: impute, strategy: zero}]\n")
	p, err := New(cfg)
	require.NoError(t, err)
	res, err := p.Run(context.Background(), f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(res, cfg, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "a,b,y,color=red,color=blue,color=green\n"), buf.String())
}

func readCSV(t *testing.T, path string) *dataset.Frame {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	f, err := dataset.ReadCSV(fh, dataset.ReadOptions{})
	require.NoError(t, err)
	return f
}

// Package pipeline runs a configured sequence of preprocessing steps over a
// dataset and collects the optional correlation and train/test stages.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/internal/config"
	"github.com/dishcision/prepkit/internal/dataset"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
	"github.com/dishcision/prepkit/preprocessing"
)

// Pipeline is a compiled run configuration.
type Pipeline struct {
	cfg    *config.Config
	steps  []Step
	runID  string
	logger log.Logger
}

// Result holds everything a run produced.
type Result struct {
	// Names and Rows are the transformed features, one-hot columns last.
	Names []string
	Rows  preprocessing.Table

	// LabelName and Labels are set when a label column was configured.
	LabelName string
	Labels    []float64

	// Correlation is set when the correlation stage is enabled.
	Correlation *mat.SymDense

	// Split is set when the split stage is enabled.
	Split *Split

	Summary Summary
}

// Split is a train/test partition of the transformed rows and their labels.
type Split struct {
	Train       preprocessing.Table
	Test        preprocessing.Table
	TrainLabels []float64
	TestLabels  []float64
}

// New compiles cfg. Every run of the returned pipeline shares one run ID.
func New(cfg *config.Config) (*Pipeline, error) {
	steps, err := Compile(cfg.Steps)
	if err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	return &Pipeline{
		cfg:    cfg,
		steps:  steps,
		runID:  runID,
		logger: log.GetLoggerWithName("pipeline").With(log.RunIDKey, runID),
	}, nil
}

// RunID identifies this pipeline in logs and summaries.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run transforms f. The label column, if any, is removed from f.
func (p *Pipeline) Run(ctx context.Context, f *dataset.Frame) (*Result, error) {
	res := &Result{LabelName: p.cfg.Label}
	if p.cfg.Label != "" {
		labels, err := f.Drop(p.cfg.Label)
		if err != nil {
			return nil, err
		}
		res.Labels = labels
	}

	table, names := preprocessing.Table(f.Rows), f.Names
	res.Summary = Summary{
		RunID:         p.runID,
		Samples:       len(table),
		InputFeatures: len(names),
	}
	p.logger.Info("pipeline started",
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, len(table),
		log.FeaturesKey, len(names),
	)

	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled")
		}
		missing := countMissing(table)
		start := time.Now()

		var out preprocessing.Table
		var outNames []string
		err := errors.SafeExecute(s.Name, func() error {
			var err error
			out, outNames, err = s.Apply(table, names)
			return err
		})
		if err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, s.Name)
		}
		table, names = out, outNames

		elapsed := float64(time.Since(start).Microseconds()) / 1000
		step := StepSummary{Name: s.Name, Features: len(names), DurationMs: elapsed}
		if s.Name == config.StepImpute {
			step.MissingFilled = missing
		}
		res.Summary.Steps = append(res.Summary.Steps, step)

		p.logger.Debug("step finished",
			log.StepKey, i,
			log.StepNameKey, s.Name,
			log.SamplesKey, len(table),
			log.FeaturesKey, len(names),
			log.MissingKey, missing,
			log.DurationMsKey, elapsed,
		)
	}

	table, names = p.appendCategorical(table, names, f)
	res.Rows, res.Names = table, names
	res.Summary.OutputFeatures = len(names)

	if p.cfg.Correlation.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled")
		}
		corr, err := preprocessing.CorrelationMatrix(table)
		if err != nil {
			return nil, errors.Wrap(err, "correlation")
		}
		res.Correlation = corr
		for j, name := range names {
			if corr.At(j, j) == 0 {
				res.Summary.ConstantColumns = append(res.Summary.ConstantColumns, name)
			}
		}
	}

	if p.cfg.Split.Enabled {
		split, err := p.split(table, res.Labels)
		if err != nil {
			return nil, errors.Wrap(err, "split")
		}
		res.Split = split
		res.Summary.TrainSamples = len(split.Train)
		res.Summary.TestSamples = len(split.Test)
	}

	p.logger.Info("pipeline finished",
		log.SamplesKey, len(table),
		log.FeaturesKey, len(names),
	)
	return res, nil
}

// appendCategorical one-hot encodes every categorical column of f and
// appends the indicator columns, named "column=value". The rows are copied
// first since table may still share storage with f.Rows.
func (p *Pipeline) appendCategorical(table preprocessing.Table, names []string, f *dataset.Frame) (preprocessing.Table, []string) {
	if len(f.CategoricalNames) == 0 {
		return table, names
	}
	widened := make(preprocessing.Table, len(table))
	for i, row := range table {
		widened[i] = append([]float64(nil), row...)
	}
	table = widened
	names = append([]string(nil), names...)

	for _, col := range f.CategoricalNames {
		values := f.Categorical[col]
		cats := preprocessing.Categories(values)
		encoded := preprocessing.OneHotEncode(values)
		for i := range table {
			table[i] = append(table[i], encoded[i]...)
		}
		for _, c := range cats {
			names = append(names, col+"="+c)
		}
		p.logger.Debug("categorical column encoded",
			log.StepNameKey, "onehot",
			log.CategoriesKey, len(cats),
			"column", col,
		)
	}
	return table, names
}

func (p *Pipeline) split(table preprocessing.Table, labels []float64) (*Split, error) {
	cfg := p.cfg.Split
	train, test, err := preprocessing.TrainTestSplitIndices(len(table), cfg.TestSize, preprocessing.NewSeededShuffler(cfg.Seed))
	if err != nil {
		return nil, err
	}
	s := &Split{
		Train: preprocessing.Take(table, train),
		Test:  preprocessing.Take(table, test),
	}
	if labels != nil {
		s.TrainLabels = preprocessing.Take(labels, train)
		s.TestLabels = preprocessing.Take(labels, test)
	}

	p.logger.Info("dataset split",
		log.PhaseKey, log.PhaseSplit,
		log.TrainSizeKey, len(train),
		log.TestSizeKey, len(test),
		log.RandomSeedKey, cfg.Seed,
	)
	return s, nil
}

func countMissing(t preprocessing.Table) int {
	n := 0
	for _, row := range t {
		for _, v := range row {
			if preprocessing.IsMissing(v) {
				n++
			}
		}
	}
	return n
}

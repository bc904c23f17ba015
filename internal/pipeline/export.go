package pipeline

import (
	"io"
	"os"

	"github.com/dishcision/prepkit/internal/config"
	"github.com/dishcision/prepkit/internal/dataset"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
	"github.com/dishcision/prepkit/preprocessing"
	"github.com/dishcision/prepkit/report"
)

// Export writes the artifacts cfg asks for: the transformed table, the
// heatmap, the train and test tables and the summary. An output of "-" or ""
// goes to stdout. The label column, if any, is written last.
func Export(res *Result, cfg *config.Config, stdout io.Writer) error {
	logger := log.GetLoggerWithName("pipeline").With(log.RunIDKey, res.Summary.RunID)

	names, rows := withLabel(res.Names, res.Rows, res.LabelName, res.Labels)
	if cfg.Output == "" || cfg.Output == "-" {
		if err := dataset.WriteCSV(stdout, names, rows); err != nil {
			return err
		}
	} else if err := writeFile(cfg.Output, func(w io.Writer) error {
		return dataset.WriteCSV(w, names, rows)
	}); err != nil {
		return err
	}

	if res.Correlation != nil && cfg.Correlation.Heatmap != "" {
		if err := report.SaveCorrelationHeatmap(cfg.Correlation.Heatmap, res.Correlation, res.Names); err != nil {
			return err
		}
	}

	if res.Split != nil {
		parts := []struct {
			path   string
			rows   preprocessing.Table
			labels []float64
		}{
			{cfg.Split.TrainOutput, res.Split.Train, res.Split.TrainLabels},
			{cfg.Split.TestOutput, res.Split.Test, res.Split.TestLabels},
		}
		for _, part := range parts {
			n, r := withLabel(res.Names, part.rows, res.LabelName, part.labels)
			if err := writeFile(part.path, func(w io.Writer) error {
				return dataset.WriteCSV(w, n, r)
			}); err != nil {
				return err
			}
			logger.Info("split written", log.OutputPathKey, part.path, log.SamplesKey, len(part.rows))
		}
	}

	if cfg.Summary != "" {
		if err := writeFile(cfg.Summary, func(w io.Writer) error {
			return WriteSummary(w, res.Summary)
		}); err != nil {
			return err
		}
	}
	return nil
}

// withLabel appends the label column when labels is non-nil.
func withLabel(names []string, rows preprocessing.Table, label string, labels []float64) ([]string, preprocessing.Table) {
	if labels == nil {
		return names, rows
	}
	outNames := append(append([]string(nil), names...), label)
	out := make(preprocessing.Table, len(rows))
	for i, row := range rows {
		out[i] = append(append(make([]float64, 0, len(row)+1), row...), labels[i])
	}
	return outNames, out
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return write(f)
}

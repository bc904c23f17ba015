package pipeline

import (
	"github.com/dishcision/prepkit/internal/config"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/preprocessing"
)

// Step is one compiled transformation. Apply returns the new table and the
// names of its columns.
type Step struct {
	Name  string
	Apply func(t preprocessing.Table, names []string) (preprocessing.Table, []string, error)
}

// Compile turns configured steps into runnable ones, resolving strategies
// and ranges up front so a bad step fails before any data is touched.
func Compile(steps []config.Step) ([]Step, error) {
	out := make([]Step, 0, len(steps))
	for i, s := range steps {
		st, err := compileStep(s)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, s.Name)
		}
		out = append(out, st)
	}
	return out, nil
}

func compileStep(s config.Step) (Step, error) {
	switch s.Name {
	case config.StepImpute:
		strategy, err := preprocessing.ParseImputeStrategy(s.Strategy)
		if err != nil {
			return Step{}, err
		}
		return Step{Name: s.Name, Apply: sameNames(func(t preprocessing.Table) (preprocessing.Table, error) {
			return preprocessing.FillMissing(t, strategy)
		})}, nil

	case config.StepNormalize:
		return Step{Name: s.Name, Apply: sameNames(preprocessing.Normalize)}, nil

	case config.StepStandardize:
		return Step{Name: s.Name, Apply: sameNames(preprocessing.Standardize)}, nil

	case config.StepMinMax:
		r := preprocessing.DefaultFeatureRange
		if len(s.Range) == 2 {
			r = preprocessing.FeatureRange{Low: s.Range[0], High: s.Range[1]}
		}
		if err := r.Validate(); err != nil {
			return Step{}, err
		}
		return Step{Name: s.Name, Apply: sameNames(func(t preprocessing.Table) (preprocessing.Table, error) {
			return preprocessing.MinMaxScale(t, r)
		})}, nil

	case config.StepPoly:
		degree := s.Degree
		if degree < 0 {
			return Step{}, errors.NewValidationError("degree", "must be non-negative", degree)
		}
		return Step{Name: s.Name, Apply: func(t preprocessing.Table, names []string) (preprocessing.Table, []string, error) {
			out, err := preprocessing.PolynomialFeatures(t, degree)
			if err != nil {
				return nil, nil, err
			}
			return out, preprocessing.PolynomialFeatureNames(names, degree), nil
		}}, nil

	default:
		return Step{}, errors.NewValidationError("name", "unknown step", s.Name)
	}
}

func sameNames(fn func(preprocessing.Table) (preprocessing.Table, error)) func(preprocessing.Table, []string) (preprocessing.Table, []string, error) {
	return func(t preprocessing.Table, names []string) (preprocessing.Table, []string, error) {
		out, err := fn(t)
		if err != nil {
			return nil, nil, err
		}
		return out, names, nil
	}
}

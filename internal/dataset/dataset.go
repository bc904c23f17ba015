// Package dataset moves tables between CSV files and the numeric form used by
// the preprocessing package.
package dataset

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dishcision/prepkit/pkg/errors"
)

// MissingTokens are the cell values read as missing.
var MissingTokens = []string{"", "NA", "NaN", "null"}

// Frame is a CSV table split into numeric features and categorical columns.
type Frame struct {
	// Names are the numeric column names, in file order.
	Names []string
	// Rows holds the numeric cells; missing cells are NaN.
	Rows [][]float64
	// Categorical holds the raw values of every categorical column by name.
	Categorical map[string][]string
	// CategoricalNames lists the categorical columns in file order.
	CategoricalNames []string
}

// ReadOptions selects columns that are not parsed as numbers.
type ReadOptions struct {
	Categorical []string
}

// ReadCSV reads a CSV with a header row. Columns named in opts.Categorical
// are kept as strings; every other column must hold numbers or a missing token.
func ReadCSV(r io.Reader, opts ReadOptions) (*Frame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "read csv")
	}

	categorical := make(map[string]bool, len(opts.Categorical))
	for _, name := range opts.Categorical {
		categorical[name] = true
	}

	names := df.Names()
	for _, name := range opts.Categorical {
		if !contains(names, name) {
			return nil, errors.NewValueError("ReadCSV", "categorical column "+strconv.Quote(name)+" not found")
		}
	}

	nrow := df.Nrow()
	f := &Frame{
		Rows:        make([][]float64, nrow),
		Categorical: make(map[string][]string),
	}
	for i := range f.Rows {
		f.Rows[i] = make([]float64, 0, len(names)-len(opts.Categorical))
	}

	for _, name := range names {
		records := df.Col(name).Records()
		if categorical[name] {
			f.CategoricalNames = append(f.CategoricalNames, name)
			f.Categorical[name] = records
			continue
		}
		f.Names = append(f.Names, name)
		for i, rec := range records {
			v, err := parseCell(rec)
			if err != nil {
				return nil, errors.NewValueError("ReadCSV",
					"column "+strconv.Quote(name)+" row "+strconv.Itoa(i+1)+": "+strconv.Quote(rec)+" is not a number")
			}
			f.Rows[i] = append(f.Rows[i], v)
		}
	}
	return f, nil
}

func parseCell(rec string) (float64, error) {
	rec = strings.TrimSpace(rec)
	for _, tok := range MissingTokens {
		if rec == tok {
			return math.NaN(), nil
		}
	}
	return strconv.ParseFloat(rec, 64)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Drop removes the numeric column name and returns its values.
func (f *Frame) Drop(name string) ([]float64, error) {
	j := -1
	for k, n := range f.Names {
		if n == name {
			j = k
			break
		}
	}
	if j < 0 {
		return nil, errors.NewValueError("Frame.Drop", "column "+strconv.Quote(name)+" not found")
	}

	col := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		col[i] = row[j]
		f.Rows[i] = append(row[:j:j], row[j+1:]...)
	}
	f.Names = append(f.Names[:j:j], f.Names[j+1:]...)
	return col, nil
}

// WriteCSV writes names as the header and rows below it. Values are written
// in the shortest form that parses back to the same float64; NaN is written
// as NaN.
func WriteCSV(w io.Writer, names []string, rows [][]float64) error {
	if len(names) == 0 {
		return errors.NewEmptyDataError("WriteCSV")
	}
	cols := make([]series.Series, len(names))
	for j, name := range names {
		values := make([]string, len(rows))
		for i, row := range rows {
			if len(row) != len(names) {
				return errors.NewDimensionError("WriteCSV", len(names), len(row), 1)
			}
			values[i] = strconv.FormatFloat(row[j], 'g', -1, 64)
		}
		cols[j] = series.New(values, series.String, name)
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return errors.Wrap(df.Err, "build csv frame")
	}
	return errors.Wrap(df.WriteCSV(w), "write csv")
}

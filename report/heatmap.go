// Package report renders preprocessing results as images.
package report

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
)

// Formats lists the accepted output formats.
var Formats = []string{"png", "svg", "pdf"}

// paletteSize is the number of colours sampled from the colour map.
const paletteSize = 255

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Column c and
// row r of the grid are features c and r.
type corrGrid struct {
	m mat.Symmetric
}

func (g corrGrid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap builds a heatmap of m labelled with names on both axes.
// Colours run from blue at -1 through white to red at 1.
func CorrelationHeatmap(m mat.Symmetric, names []string) (*plot.Plot, error) {
	n := m.SymmetricDim()
	if n == 0 {
		return nil, errors.NewEmptyDataError("CorrelationHeatmap")
	}
	if len(names) != n {
		return nil, errors.NewDimensionError("CorrelationHeatmap", n, len(names), 0)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	h := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(paletteSize))
	// fixed so a constant matrix still maps onto the palette
	h.Min, h.Max = -1, 1

	p := plot.New()
	p.Title.Text = "Feature correlation"
	p.Add(h)
	p.NominalX(names...)
	p.NominalY(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func side(n int) vg.Length {
	return 4*vg.Inch + vg.Length(n)*0.3*vg.Inch
}

// WriteCorrelationHeatmap renders the heatmap of m to w in format, one of Formats.
func WriteCorrelationHeatmap(w io.Writer, m mat.Symmetric, names []string, format string) (err error) {
	defer errors.Recover(&err, "WriteCorrelationHeatmap")
	format = strings.ToLower(format)
	if !supported(format) {
		return errors.NewValidationError("format", "must be one of png, svg, pdf", format)
	}
	p, err := CorrelationHeatmap(m, names)
	if err != nil {
		return err
	}

	s := side(len(names))
	wt, err := p.WriterTo(s, s, format)
	if err != nil {
		return errors.Wrap(err, "render heatmap")
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write heatmap")
}

// SaveCorrelationHeatmap writes the heatmap of m to path. The format is
// taken from the file extension.
func SaveCorrelationHeatmap(path string, m mat.Symmetric, names []string) (err error) {
	defer errors.Recover(&err, "SaveCorrelationHeatmap")
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supported(format) {
		return errors.NewValidationError("path", "extension must be .png, .svg or .pdf", path)
	}
	p, err := CorrelationHeatmap(m, names)
	if err != nil {
		return err
	}

	s := side(len(names))
	if err := p.Save(s, s, path); err != nil {
		return errors.Wrapf(err, "save heatmap %s", path)
	}
	log.GetLoggerWithName("report").Info("heatmap written",
		log.PhaseKey, log.PhaseReport,
		log.FeaturesKey, len(names),
		log.OutputPathKey, path,
	)
	return nil
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Package report renders diagnostic plots of transformed feature matrices.
package report

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// Bins is the number of histogram bins per feature.
const Bins = 20

// Histograms writes a PNG with one histogram per selected column of m, stacked vertically.
// names holds the names of all columns of m.
func Histograms(path string, names []string, m mat.Matrix, columns []int) error {
	r, c := m.Dims()
	if len(names) != c {
		return errors.NewDimensionError("report.Histograms", c, len(names))
	}
	if len(columns) == 0 || r == 0 {
		return errors.NewModelError("report.Histograms", "nothing to plot", errors.ErrEmptyData)
	}

	plots := make([][]*plot.Plot, len(columns))
	for k, j := range columns {
		if j < 0 || j >= c {
			return errors.NewValidationError("columns", "column index out of range", j)
		}
		p := plot.New()
		p.Title.Text = names[j]
		p.Y.Label.Text = "count"

		values := make(plotter.Values, r)
		mat.Col(values, j, m)
		h, err := plotter.NewHist(values, Bins)
		if err != nil {
			return errors.Wrapf(err, "failed to build histogram for %s", names[j])
		}
		p.Add(h)
		plots[k] = []*plot.Plot{p}
	}

	const width, rowHeight = 6 * vg.Inch, 3 * vg.Inch
	img := vgimg.New(width, rowHeight*vg.Length(len(columns)))
	tiles := draw.Tiles{Rows: len(columns), Cols: 1, PadY: vg.Millimeter}
	// plot panics on degenerate axis ranges.
	err := errors.SafeExecute("report.Histograms", func() error {
		canvases := plot.Align(plots, tiles, draw.New(img))
		for k := range plots {
			plots[k][0].Draw(canvases[k][0])
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create output directory"), errors.ErrPersistence)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create file"), errors.ErrPersistence)
	}
	defer func() { _ = file.Close() }()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to encode png"), errors.ErrPersistence)
	}
	return errors.Mark(file.Close(), errors.ErrPersistence)
}

package export

import (
	"math"

	"github.com/fpawel/antenna/internal/antdata"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// minPlotRange is the least dynamic range of a polar plot, dB.
const minPlotRange = 40

// NewPlot draws both patterns in polar coordinates, the radius being the
// dynamic range minus the loss. Angles of undefined gain are skipped.
func NewPlot(s antdata.Specs) (*plot.Plot, error) {
	dynRange := plotRange(s)

	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = "relative gain, dB"
	p.X.Min, p.X.Max = -dynRange, dynRange
	p.Y.Min, p.Y.Max = -dynRange, dynRange
	p.Add(plotter.NewGrid())

	for r := 10.0; r <= dynRange; r += 10 {
		ring, err := plotter.NewLine(circle(r))
		if err != nil {
			return nil, err
		}
		ring.Color = plotutil.Color(6)
		ring.Dashes = plotutil.Dashes(2)
		p.Add(ring)
	}
	err := plotutil.AddLines(p,
		"Horizontal", polar(s.Horizontal, dynRange),
		"Vertical", polar(s.Vertical, dynRange))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SavePlot writes the plot image, format by file extension: png, svg, pdf,
// jpg, tif, eps.
func SavePlot(filename string, s antdata.Specs) error {
	p, err := NewPlot(s)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

func plotRange(s antdata.Specs) float64 {
	var losses []float64
	for _, pattern := range []antdata.Pattern{s.Horizontal, s.Vertical} {
		for _, x := range pattern {
			if x.Loss.Valid {
				losses = append(losses, x.Loss.Float64)
			}
		}
	}
	if len(losses) == 0 {
		return minPlotRange
	}
	return math.Max(minPlotRange, 10*math.Ceil(floats.Max(losses)/10))
}

func polar(pattern antdata.Pattern, dynRange float64) plotter.XYs {
	xs := make(plotter.XYs, 0, len(pattern))
	for _, x := range pattern {
		if !x.Loss.Valid {
			continue
		}
		r := math.Max(0, dynRange-x.Loss.Float64)
		a := antdata.Rad(float64(x.Angle))
		xs = append(xs, plotter.XY{X: r * math.Sin(a), Y: r * math.Cos(a)})
	}
	return xs
}

func circle(r float64) plotter.XYs {
	xs := make(plotter.XYs, 361)
	for i := range xs {
		a := antdata.Rad(float64(i))
		xs[i] = plotter.XY{X: r * math.Sin(a), Y: r * math.Cos(a)}
	}
	return xs
}

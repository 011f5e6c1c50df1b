package antdata

import (
	"github.com/ansel1/merry"
)

// PatternSize is the number of points in a pattern plane: every integer angle
// from 0 to 360 degrees inclusive.
const PatternSize = 361

const (
	DefaultMake         = "ITU"
	DefaultPolarization = NotAvailable
)

type Point struct {
	Angle int       `json:"angle" yaml:"angle" db:"angle"`
	Loss  NullFloat `json:"loss" yaml:"loss" db:"loss"`
}

// Pattern holds the loss relative to the peak gain toward each angle of a plane.
type Pattern []Point

// Specs is the summary of a configured model: the fields of an MSI Planet
// antenna file plus the horizontal and vertical patterns.
type Specs struct {
	Name         string    `json:"name" yaml:"name"`
	Make         string    `json:"make" yaml:"make"`
	Frequency    NullFloat `json:"frequency" yaml:"frequency"`
	HWidth       NullFloat `json:"h_width" yaml:"h_width"`
	VWidth       NullFloat `json:"v_width" yaml:"v_width"`
	FrontToBack  NullFloat `json:"front_to_back" yaml:"front_to_back"`
	Gain         float64   `json:"gain" yaml:"gain"`
	Tilt         float64   `json:"tilt" yaml:"tilt"`
	Polarization string    `json:"polarization" yaml:"polarization"`
	Comment      string    `json:"comment" yaml:"comment"`
	Horizontal   Pattern   `json:"horizontal" yaml:"horizontal"`
	Vertical     Pattern   `json:"vertical" yaml:"vertical"`
}

// PlaneFunc returns the gain toward the angle of a pattern plane.
type PlaneFunc func(angle int) (NullFloat, error)

// Sweep evaluates gain at every angle from 0 to 360 degrees and returns the
// loss relative to peak.
func Sweep(peak float64, gain PlaneFunc) (Pattern, error) {
	xs := make(Pattern, PatternSize)
	for angle := range xs {
		g, err := gain(angle)
		if err != nil {
			return nil, merry.Prependf(err, "angle %d", angle)
		}
		xs[angle] = Point{Angle: angle, Loss: Loss(peak, g)}
	}
	return xs, nil
}

// Loss is peak minus gain, undefined where gain is undefined.
func Loss(peak float64, gain NullFloat) NullFloat {
	if !gain.Valid {
		return NA
	}
	return Float(peak - gain.Float64)
}

// FrontToBack is the gain toward the main beam minus the gain in the opposite
// direction, undefined unless both are defined.
func FrontToBack(front, back NullFloat) NullFloat {
	if !front.Valid || !back.Valid {
		return NA
	}
	return Float(front.Float64 - back.Float64)
}

// Undefined returns the angles where the loss is undefined.
func (p Pattern) Undefined() []int {
	var xs []int
	for _, x := range p {
		if !x.Loss.Valid {
			xs = append(xs, x.Angle)
		}
	}
	return xs
}

func (p Pattern) Round(precision int) Pattern {
	if p == nil {
		return nil
	}
	r := make(Pattern, len(p))
	for i, x := range p {
		r[i] = Point{Angle: x.Angle, Loss: x.Loss.Round(precision)}
	}
	return r
}

// Round returns a copy of s with every number rounded to precision decimal
// places. A negative precision returns an exact copy.
func (s Specs) Round(precision int) Specs {
	r := s
	r.Frequency = s.Frequency.Round(precision)
	r.HWidth = s.HWidth.Round(precision)
	r.VWidth = s.VWidth.Round(precision)
	r.FrontToBack = s.FrontToBack.Round(precision)
	r.Gain = Round(s.Gain, precision)
	r.Tilt = Round(s.Tilt, precision)
	r.Horizontal = s.Horizontal.Round(precision)
	r.Vertical = s.Vertical.Round(precision)
	return r
}

package itu

import (
	"fmt"
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// S465 is the reference radiation pattern of earth station antennas of
// Rec. ITU-R S.465-6, 2 GHz to 31 GHz. Gain is undefined inside the minimum
// off-axis angle.
type S465 struct {
	holder
}

var s465Schema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(2000, 31000),
		Doc:      "operating frequency, MHz",
	},
	{
		Name:     ParamDiameter,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.001, 99.999),
		Doc:      "antenna diameter, m",
	},
	{
		Name:     ParamDToL,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.001, 10000),
		Doc:      "antenna diameter to wavelength ratio",
	},
}

type s465Config struct {
	params antdata.Params
	dToL   float64
	phiMin float64
}

func NewS465() *S465 {
	return new(S465)
}

func (*S465) Name() string { return "ITUS465" }
func (*S465) Title() string { return "ITU-R S.465-6" }
func (*S465) Schema() antdata.Schema { return s465Schema }
func (*S465) Arguments() []string { return offAxisArgs }
func (x *S465) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *S465) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(s465Schema, raw)
	if err != nil {
		return err
	}
	c, err := resolveS465(p)
	if err != nil {
		return err
	}
	x.publish(c)
	return nil
}

func resolveS465(p antdata.Params) (*s465Config, error) {
	d, err := resolveEarthStationDToL(p)
	if err != nil {
		return nil, err
	}
	c := &s465Config{params: p, dToL: d}
	switch {
	case d >= 50:
		c.phiMin = math.Max(1, 100/d)
	case d >= 33.3:
		c.phiMin = math.Max(2, 114*math.Pow(d, -1.09))
	default:
		c.phiMin = 2.5
	}
	p[ParamPhiMin] = c.phiMin
	return c, nil
}

// resolveEarthStationDToL takes the diameter to wavelength ratio when given,
// otherwise computes it from frequency and diameter.
func resolveEarthStationDToL(p antdata.Params) (float64, error) {
	if d, ok := p.Float(ParamDToL); ok {
		return d, nil
	}
	freq, hasFreq := p.Float(ParamFreq)
	diameter, hasDiameter := p.Float(ParamDiameter)
	if !hasFreq || !hasDiameter {
		return 0, antdata.Errorf(antdata.ErrIncompleteParameters,
			"either %q or both %q and %q are required", ParamDToL, ParamFreq, ParamDiameter)
	}
	d := diameter / antdata.Wavelength(freq)
	p[ParamDToL] = d
	return d, nil
}

func (c *s465Config) values() antdata.Params { return c.params }

func (x *S465) config() (*s465Config, error) {
	c, _ := x.load().(*s465Config)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *S465) Gain(args antdata.Values) (antdata.NullFloat, error) {
	xs, err := antdata.Arguments(args, offAxisArgs...)
	if err != nil {
		return antdata.NA, err
	}
	return x.GainAt(xs[0])
}

// GainAt returns the gain in dBi toward the off-axis angle phi in degrees,
// undefined below the minimum off-axis angle.
func (x *S465) GainAt(phi float64) (antdata.NullFloat, error) {
	c, err := x.config()
	if err != nil {
		return antdata.NA, err
	}
	return c.gain(phi), nil
}

func (c *s465Config) gain(phi float64) antdata.NullFloat {
	phi = antdata.NormalizeOffAxis(phi)
	switch {
	case phi < c.phiMin:
		return antdata.NA
	case phi < 48:
		return antdata.Float(32 - 25*log10(phi))
	default:
		return antdata.Float(-10)
	}
}

func (x *S465) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	return earthStationSpecs(x.Title(), c.params, c.dToL, c.phiMin, func(phi float64) (antdata.NullFloat, error) {
		return c.gain(phi), nil
	})
}

// earthStationSpecs reports the gain at the minimum off-axis angle as the
// peak gain since the main lobe is not modelled.
func earthStationSpecs(title string, p antdata.Params, dToL, phiMin float64, gain angleGainFunc) (antdata.Specs, error) {
	freq := antdata.NA
	if f, ok := p.Float(ParamFreq); ok {
		freq = antdata.Float(f)
	}
	s := newSpecs(title, freq)
	s.Comment = fmt.Sprintf("D/lambda: %.2f. Gain relates to +/-%.2f deg.", dToL, phiMin)
	peak, err := gain(phiMin)
	if err != nil {
		return s, err
	}
	return offAxisSpecs(s, peak.Float64, gain)
}

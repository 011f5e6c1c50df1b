package itu

import (
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// S580 is the design objective radiation pattern of earth station antennas of
// Rec. ITU-R S.580-6. Beyond 20 deg it follows S.465-6 computed by an owned
// S465 instance with the same diameter to wavelength ratio.
type S580 struct {
	holder
	s465 *S465
}

var s580Schema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(1000, 100000),
		Doc:      "operating frequency, MHz",
	},
	{
		Name:     ParamDiameter,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.001, 14.999),
		Doc:      "antenna diameter, m",
	},
	{
		Name:     ParamDToL,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(50, 10000),
		Doc:      "antenna diameter to wavelength ratio",
	},
}

type s580Config struct {
	params antdata.Params
	dToL   float64
	phiMin float64
	s465   *s465Config
}

func NewS580() *S580 {
	return &S580{s465: NewS465()}
}

func (*S580) Name() string { return "ITUS580" }
func (*S580) Title() string { return "ITU-R S.580-6" }
func (*S580) Schema() antdata.Schema { return s580Schema }
func (*S580) Arguments() []string { return offAxisArgs }
func (x *S580) Params() (antdata.Params, error) { return x.params(x.Name()) }

// S465 returns the wide angle delegate.
func (x *S580) S465() *S465 {
	return x.s465
}

func (x *S580) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(s580Schema, raw)
	if err != nil {
		return err
	}
	c, err := resolveS580(p)
	if err != nil {
		return err
	}
	x.publish(c)
	x.s465.publish(c.s465)
	return nil
}

func resolveS580(p antdata.Params) (*s580Config, error) {
	d, err := resolveEarthStationDToL(p)
	if err != nil {
		return nil, err
	}
	if d < 50 {
		return nil, antdata.Errorf(antdata.ErrInvalidDerivedValue,
			"D/lambda %.2f is below 50, the lowest ratio the pattern applies to", d)
	}
	p465, err := antdata.Validate(s465Schema, antdata.Values{ParamDToL: d})
	if err != nil {
		return nil, err
	}
	c465, err := resolveS465(p465)
	if err != nil {
		return nil, err
	}
	c := &s580Config{
		params: p,
		dToL:   d,
		phiMin: math.Max(1, 100/d),
		s465:   c465,
	}
	p[ParamPhiMin] = c.phiMin
	return c, nil
}

func (c *s580Config) values() antdata.Params { return c.params }

func (x *S580) config() (*s580Config, error) {
	c, _ := x.load().(*s580Config)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *S580) Gain(args antdata.Values) (antdata.NullFloat, error) {
	xs, err := antdata.Arguments(args, offAxisArgs...)
	if err != nil {
		return antdata.NA, err
	}
	return x.GainAt(xs[0])
}

// GainAt returns the gain in dBi toward the off-axis angle phi in degrees,
// undefined below the minimum off-axis angle.
func (x *S580) GainAt(phi float64) (antdata.NullFloat, error) {
	c, err := x.config()
	if err != nil {
		return antdata.NA, err
	}
	return c.gain(phi), nil
}

func (c *s580Config) gain(phi float64) antdata.NullFloat {
	phi = antdata.NormalizeOffAxis(phi)
	switch {
	case phi < c.phiMin:
		return antdata.NA
	case phi < 20:
		return antdata.Float(29 - 25*log10(phi))
	case phi < 26.3:
		g := c.s465.gain(phi)
		if g.Valid {
			g.Float64 = math.Min(-3.5, g.Float64)
		}
		return g
	default:
		return c.s465.gain(phi)
	}
}

func (x *S580) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	return earthStationSpecs(x.Title(), c.params, c.dToL, c.phiMin, func(phi float64) (antdata.NullFloat, error) {
		return c.gain(phi), nil
	})
}

package itu

import (
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// F1336lg is the peak side lobe pattern of Rec. ITU-R F.1336-5 for low gain
// antennas with circular symmetry, 1 GHz to 3 GHz, gain up to about 20 dBi.
type F1336lg struct {
	holder
}

var f1336lgSchema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(1000, 3000),
		Doc:      "operating frequency, MHz",
	},
	{
		Name:     ParamMaxGain,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(-29.9, 20),
		Doc:      "main lobe gain, dBi",
	},
}

type f1336lgConfig struct {
	params antdata.Params
	gMax   float64
	phi3   float64
	phi1   float64
	phi2   float64
}

func NewF1336lg() *F1336lg {
	return new(F1336lg)
}

func (*F1336lg) Name() string { return "ITUF1336lg" }
func (*F1336lg) Title() string { return "ITU-R F.1336-5 Low-Gain" }
func (*F1336lg) Schema() antdata.Schema { return f1336lgSchema }
func (*F1336lg) Arguments() []string { return offAxisArgs }
func (x *F1336lg) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *F1336lg) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(f1336lgSchema, raw)
	if err != nil {
		return err
	}
	c := &f1336lgConfig{params: p}
	c.gMax, _ = p.Float(ParamMaxGain)
	c.phi3 = math.Sqrt(27000 * math.Pow(10, -0.1*c.gMax))
	c.phi1 = 1.9 * c.phi3
	c.phi2 = c.phi1 * math.Pow(10, (c.gMax-6)/32)
	x.publish(c)
	return nil
}

func (c *f1336lgConfig) values() antdata.Params { return c.params }

func (x *F1336lg) config() (*f1336lgConfig, error) {
	c, _ := x.load().(*f1336lgConfig)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *F1336lg) Gain(args antdata.Values) (antdata.NullFloat, error) {
	xs, err := antdata.Arguments(args, offAxisArgs...)
	if err != nil {
		return antdata.NA, err
	}
	g, err := x.GainAt(xs[0])
	if err != nil {
		return antdata.NA, err
	}
	return antdata.Float(g), nil
}

// GainAt returns the gain in dBi toward the off-axis angle in degrees.
func (x *F1336lg) GainAt(theta float64) (float64, error) {
	c, err := x.config()
	if err != nil {
		return 0, err
	}
	return c.gain(theta), nil
}

func (c *f1336lgConfig) gain(theta float64) float64 {
	theta = antdata.NormalizeOffAxis(theta)
	switch {
	case theta < 1.08*c.phi3:
		return c.gMax - 12*sq(theta/c.phi3)
	case theta < c.phi1:
		return c.gMax - 14
	case theta < c.phi2:
		return c.gMax - 14 - 32*log10(theta/c.phi1)
	default:
		return -8
	}
}

func (x *F1336lg) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	freq, _ := c.params.Float(ParamFreq)
	s := newSpecs(x.Title(), antdata.Float(freq))
	s.HWidth = antdata.Float(c.phi3)
	s.VWidth = antdata.Float(c.phi3)
	return offAxisSpecs(s, c.gMax, func(theta float64) (antdata.NullFloat, error) {
		return antdata.Float(c.gain(theta)), nil
	})
}

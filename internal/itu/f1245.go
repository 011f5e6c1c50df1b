package itu

import (
	"fmt"
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// F1245 is the mathematical model of average and related radiation patterns
// for line-of-sight point-to-point fixed wireless antennas of
// Rec. ITU-R F.1245-3, 1 GHz to 86 GHz.
type F1245 struct {
	holder
}

const (
	CalcRec2 = "Rec. 2"
	CalcRec3 = "Rec. 3"
)

var f1245Schema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(1000, 86000),
		Doc:      "operating frequency, MHz",
	},
	{
		Name:     ParamCalcOpt,
		Category: antdata.Mandatory,
		Kind:     antdata.KindString,
		Allowed:  []string{CalcRec2, CalcRec3},
		Doc:      "calculation option: average pattern of recommends 2 or 3",
	},
	{
		Name:     ParamMaxGain,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(-29.9, 89.9),
		Doc:      "main lobe gain, dBi",
	},
	{
		Name:     ParamDiameter,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.001, 99.999),
		Doc:      "antenna diameter, m",
	},
}

type f1245Config struct {
	params  antdata.Params
	band    string
	calcOpt string
	dToL    float64
	gMax    float64
	g1      float64
	phiM    float64
	phiR    float64
	errPhiM error
}

func NewF1245() *F1245 {
	return new(F1245)
}

func (*F1245) Name() string { return "ITUF1245" }
func (*F1245) Title() string { return "ITU-R F.1245-3" }
func (*F1245) Schema() antdata.Schema { return f1245Schema }
func (*F1245) Arguments() []string { return offAxisArgs }
func (x *F1245) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *F1245) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(f1245Schema, raw)
	if err != nil {
		return err
	}
	c, err := resolveF1245(p)
	if err != nil {
		return err
	}
	x.publish(c)
	return nil
}

func resolveF1245(p antdata.Params) (*f1245Config, error) {
	freq, _ := p.Float(ParamFreq)
	gain, hasGain := p.Float(ParamMaxGain)
	diameter, hasDiameter := p.Float(ParamDiameter)

	c := &f1245Config{
		params:  p,
		calcOpt: p.String(ParamCalcOpt),
		band:    band1to70,
	}
	if freq >= 70000 {
		c.band = band70to86
	}

	switch {
	case hasDiameter:
		c.dToL = diameter / antdata.Wavelength(freq)
		if !hasGain {
			gain = gainFromDToL(c.dToL)
		}
	case hasGain:
		c.dToL = dToLFromGain(gain)
	default:
		return nil, antdata.Errorf(antdata.ErrIncompleteParameters,
			"at least one of %q, %q is required", ParamMaxGain, ParamDiameter)
	}
	c.gMax = gain
	p[ParamMaxGain] = gain
	p[ParamDToL] = c.dToL
	p[ParamFreqBand] = c.band

	c.g1 = 2 + 15*log10(c.dToL)
	if c.calcOpt == CalcRec2 {
		c.phiM, c.errPhiM = mainLobeEdge(c.gMax, c.g1, c.dToL)
		c.phiR = 12.02 * math.Pow(c.dToL, -0.6)
	} else if c.dToL > 100 {
		c.phiR = 15.85 * math.Pow(c.dToL, -0.6)
	} else {
		c.phiR = 39.8 * math.Pow(c.dToL, -0.8)
	}
	return c, nil
}

func (c *f1245Config) values() antdata.Params { return c.params }

func (x *F1245) config() (*f1245Config, error) {
	c, _ := x.load().(*f1245Config)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *F1245) Gain(args antdata.Values) (antdata.NullFloat, error) {
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

// GainAt returns the gain in dBi toward the off-axis angle phi in degrees.
func (x *F1245) GainAt(phi float64) (float64, error) {
	c, err := x.config()
	if err != nil {
		return 0, err
	}
	return c.gain(phi)
}

func (c *f1245Config) gain(phi float64) (float64, error) {
	phi = antdata.NormalizeOffAxis(phi)
	if phi == 0 {
		return c.gMax, nil
	}
	if c.calcOpt == CalcRec3 {
		return c.gainRec3(phi), nil
	}
	if c.errPhiM != nil {
		return 0, c.errPhiM
	}
	return c.gainRec2(phi), nil
}

func (c *f1245Config) gainRec2(phi float64) float64 {
	far := 48.0
	if c.band == band70to86 {
		far = 120
	}
	if c.dToL > 100 {
		back := -13.0
		if c.band == band70to86 {
			back = -23
		}
		switch {
		case phi < c.phiM:
			return mainLobe(c.gMax, c.dToL, phi)
		case phi < c.phiR:
			return c.g1
		case phi < far:
			return 29 - 25*log10(phi)
		default:
			return back
		}
	}
	back := -3 - 5*log10(c.dToL)
	if c.band == band70to86 {
		back = -13 - 5*log10(c.dToL)
	}
	switch {
	case phi < c.phiM:
		return mainLobe(c.gMax, c.dToL, phi)
	case phi < far:
		return 39 - 5*log10(c.dToL) - 25*log10(phi)
	default:
		return back
	}
}

func (c *f1245Config) gainRec3(phi float64) float64 {
	// sine argument 3*pi*phi/(2*phiR) is taken in degrees
	f := 10 * log10(0.9*sq(math.Sin(antdata.Rad(3*math.Pi*phi/(2*c.phiR))))+0.1)
	if phi < c.phiR {
		return math.Max(mainLobe(c.gMax, c.dToL, phi), c.g1+f)
	}
	far := 48.0
	if c.band == band70to86 {
		far = 120
	}
	if c.dToL > 100 {
		back := -10.0
		if c.band == band70to86 {
			back = -20
		}
		if phi < far {
			return 32 - 25*log10(phi) + f
		}
		return back + f
	}
	back := -5 * log10(c.dToL)
	if c.band == band70to86 {
		back = -10 - 5*log10(c.dToL)
	}
	if phi < far {
		return 42 - 5*log10(c.dToL) - 25*log10(phi) + f
	}
	return back + f
}

func (x *F1245) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	freq, _ := c.params.Float(ParamFreq)
	s := newSpecs(x.Title(), antdata.Float(freq))
	s.HWidth = antdata.Float(35 / c.dToL)
	s.VWidth = s.HWidth
	s.Comment = fmt.Sprintf("Ant. diam to wavelength ratio: %.2f", c.dToL)
	return offAxisSpecs(s, c.gMax, defined(c.gain))
}

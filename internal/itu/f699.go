package itu

import (
	"fmt"
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// F699 is the reference radiation pattern of line-of-sight point-to-point
// fixed wireless antennas of Rec. ITU-R F.699-8, 100 MHz to 86 GHz.
type F699 struct {
	holder
}

const (
	band01to1  = "0.1-1 GHz"
	band1to70  = "1-70 GHz"
	band70to86 = "70-86 GHz"
)

var f699Schema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(100, 86000),
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
		Name:     ParamMaxGain,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(-29.9, 89.9),
		Doc:      "main lobe gain, dBi",
	},
	{
		Name:     ParamBeamwidth,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.001, 179.999),
		Doc:      "3 dB beamwidth, deg",
	},
}

type f699Config struct {
	params antdata.Params
	band   string
	dToL   float64
	gMax   float64
	g1     float64
	phiM   float64
	phiR   float64
	phiS   float64
	// err fails every query, errPhiM every query off the boresight
	err     error
	errPhiM error
}

func NewF699() *F699 {
	return new(F699)
}

func (*F699) Name() string { return "ITUF699" }
func (*F699) Title() string { return "ITU-R F.699-8" }
func (*F699) Schema() antdata.Schema { return f699Schema }
func (*F699) Arguments() []string { return offAxisArgs }
func (x *F699) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *F699) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(f699Schema, raw)
	if err != nil {
		return err
	}
	c, err := resolveF699(p)
	if err != nil {
		return err
	}
	x.publish(c)
	return nil
}

func resolveF699(p antdata.Params) (*f699Config, error) {
	freq, _ := p.Float(ParamFreq)
	gain, hasGain := p.Float(ParamMaxGain)
	diameter, hasDiameter := p.Float(ParamDiameter)
	beamwidth, hasBeamwidth := p.Float(ParamBeamwidth)

	c := &f699Config{params: p}
	switch {
	case freq <= 1000:
		c.band = band01to1
	case freq <= 70000:
		c.band = band1to70
	default:
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
	case hasBeamwidth:
		c.dToL = 70 / beamwidth
		gain = 44.5 - 20*log10(beamwidth)
	default:
		return nil, antdata.Errorf(antdata.ErrIncompleteParameters,
			"at least one of %q, %q, %q is required", ParamMaxGain, ParamDiameter, ParamBeamwidth)
	}
	c.gMax = gain
	p[ParamMaxGain] = gain
	p[ParamDToL] = c.dToL
	p[ParamFreqBand] = c.band

	c.g1 = 2 + 15*log10(c.dToL)
	c.phiM, c.errPhiM = mainLobeEdge(c.gMax, c.g1, c.dToL)
	c.phiR = 15.85 * math.Pow(c.dToL, -0.6)
	c.phiS = 144.5 * math.Pow(c.dToL, -0.2)
	if c.band == band01to1 && c.dToL < 0.63 {
		c.err = antdata.Errorf(antdata.ErrInvalidDerivedValue,
			"D/lambda %.3f is below 0.63, the lowest ratio of the %s band", c.dToL, band01to1)
	}
	return c, nil
}

func (c *f699Config) values() antdata.Params { return c.params }

func (x *F699) config() (*f699Config, error) {
	c, _ := x.load().(*f699Config)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *F699) Gain(args antdata.Values) (antdata.NullFloat, error) {
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
func (x *F699) GainAt(phi float64) (float64, error) {
	c, err := x.config()
	if err != nil {
		return 0, err
	}
	return c.gain(phi)
}

func (c *f699Config) gain(phi float64) (float64, error) {
	phi = antdata.NormalizeOffAxis(phi)
	if c.err != nil {
		return 0, c.err
	}
	if phi == 0 {
		return c.gMax, nil
	}
	if c.errPhiM != nil {
		return 0, c.errPhiM
	}
	switch {
	case c.band == band01to1:
		return c.gainLowBand(phi), nil
	case c.dToL > 100:
		return c.gainLarge(phi), nil
	default:
		return c.gainSmall(phi), nil
	}
}

func (c *f699Config) gainLarge(phi float64) float64 {
	far, back := 48.0, -10.0
	if c.band == band70to86 {
		far, back = 120, -20
	}
	switch {
	case phi < c.phiM:
		return mainLobe(c.gMax, c.dToL, phi)
	case phi < c.phiR:
		return c.g1
	case phi < far:
		return 32 - 25*log10(phi)
	default:
		return back
	}
}

func (c *f699Config) gainSmall(phi float64) float64 {
	far, back := 48.0, 10-10*log10(c.dToL)
	if c.band == band70to86 {
		far, back = 120, -10*log10(c.dToL)
	}
	switch {
	case phi < c.phiM:
		return mainLobe(c.gMax, c.dToL, phi)
	case phi < 100/c.dToL:
		return c.g1
	case phi < far:
		return 52 - 10*log10(c.dToL) - 25*log10(phi)
	default:
		return back
	}
}

func (c *f699Config) gainLowBand(phi float64) float64 {
	switch {
	case phi < c.phiM:
		return mainLobe(c.gMax, c.dToL, phi)
	case phi < 100/c.dToL:
		return c.g1
	case phi < c.phiS:
		return 52 - 10*log10(c.dToL) - 25*log10(phi)
	default:
		return -2 - 5*log10(c.dToL)
	}
}

func (x *F699) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	freq, _ := c.params.Float(ParamFreq)
	s := newSpecs(x.Title(), antdata.Float(freq))
	beamwidth := math.Pow(10, (44.5-c.gMax)/20)
	s.HWidth = antdata.Float(beamwidth)
	s.VWidth = antdata.Float(beamwidth)
	s.Comment = fmt.Sprintf("Ant. diam to wavelength ratio: %.2f", c.dToL)
	return offAxisSpecs(s, c.gMax, defined(c.gain))
}

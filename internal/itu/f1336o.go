package itu

import (
	"fmt"
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// F1336o is the omnidirectional reference radiation pattern of
// Rec. ITU-R F.1336-5, 400 MHz to 70 GHz. Gain depends on elevation only.
type F1336o struct {
	holder
}

var f1336oSchema = antdata.Schema{
	{
		Name:     ParamFreq,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(400, 70000),
		Doc:      "operating frequency, MHz",
	},
	{
		Name:     ParamMaxGain,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(-29.9, 59.9),
		Doc:      "main lobe gain, dBi",
	},
	{
		Name:     ParamPatternType,
		Category: antdata.Mandatory,
		Kind:     antdata.KindString,
		Allowed:  []string{PatternAverage, PatternPeak},
		Doc:      "side lobe pattern type",
	},
	{
		Name:     ParamPerformanceType,
		Category: antdata.Mandatory,
		Kind:     antdata.KindString,
		Allowed:  []string{PerformanceTypical, PerformanceImproved},
		Doc:      "side lobe performance type",
	},
	{
		Name:     ParamTiltType,
		Category: antdata.Mandatory,
		Kind:     antdata.KindString,
		Allowed:  []string{TiltNone, TiltElectrical},
		Doc:      "downward tilt type",
	},
	{
		Name:     ParamTiltAngle,
		Category: antdata.WhenNot(ParamTiltType, TiltNone),
		Kind:     antdata.KindNumber,
		Range:    rangeOf(-89.9, 89.9),
		Doc:      "downward tilt angle, deg, positive below the horizon",
	},
	{
		Name:     ParamBeamwidthEl,
		Category: antdata.Optional,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.1, 179.9),
		Doc:      "3 dB beamwidth in the elevation plane, deg",
	},
	{
		Name:     ParamK,
		Category: antdata.Optional,
		Kind:     antdata.KindFloat,
		Range:    rangeOf(0.001, 0.999),
		Doc:      "side lobe increase factor",
	},
}

type f1336oConfig struct {
	params      antdata.Params
	gMax        float64
	patternType string
	tiltType    string
	tilt        float64
	theta3      float64
	k           float64
	theta4      float64
	theta5      float64
}

func NewF1336o() *F1336o {
	return new(F1336o)
}

func (*F1336o) Name() string { return "ITUF1336o" }
func (*F1336o) Title() string { return "ITU-R F.1336-5 Omnidirectional" }
func (*F1336o) Schema() antdata.Schema { return f1336oSchema }
func (*F1336o) Arguments() []string { return elevationArgs }
func (x *F1336o) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *F1336o) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(f1336oSchema, raw)
	if err != nil {
		return err
	}
	x.publish(resolveF1336o(p))
	return nil
}

func resolveF1336o(p antdata.Params) *f1336oConfig {
	freq, _ := p.Float(ParamFreq)
	c := &f1336oConfig{
		params:      p,
		patternType: p.String(ParamPatternType),
		tiltType:    p.String(ParamTiltType),
	}
	c.gMax, _ = p.Float(ParamMaxGain)

	var ok bool
	if c.theta3, ok = p.Float(ParamBeamwidthEl); !ok {
		c.theta3 = 107.6 * math.Pow(10, -0.1*c.gMax)
		p[ParamBeamwidthEl] = c.theta3
	}
	if c.tilt, ok = p.Float(ParamTiltAngle); !ok || c.tiltType == TiltNone {
		c.tilt = 0
		p[ParamTiltAngle] = c.tilt
	}
	if c.k, ok = p.Float(ParamK); !ok {
		c.k = 0
		if p.String(ParamPerformanceType) == PerformanceTypical && freq <= 3000 {
			c.k = 0.7
		}
		p[ParamK] = c.k
	}

	c.theta4 = c.theta3 * math.Sqrt(1-log10(c.k+1)/1.2)
	c.theta5 = c.theta3 * math.Sqrt(1.25+log10(c.k+1)/1.2)
	return c
}

func (c *f1336oConfig) values() antdata.Params { return c.params }

func (x *F1336o) config() (*f1336oConfig, error) {
	c, _ := x.load().(*f1336oConfig)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *F1336o) Gain(args antdata.Values) (antdata.NullFloat, error) {
	xs, err := antdata.Arguments(args, elevationArgs...)
	if err != nil {
		return antdata.NA, err
	}
	g, err := x.GainAt(xs[0])
	if err != nil {
		return antdata.NA, err
	}
	return antdata.Float(g), nil
}

// GainAt returns the gain in dBi toward the elevation in degrees.
func (x *F1336o) GainAt(elevation float64) (float64, error) {
	c, err := x.config()
	if err != nil {
		return 0, err
	}
	return c.gain(elevation), nil
}

func (c *f1336oConfig) gain(elevation float64) float64 {
	theta := antdata.NormalizeElevation(elevation)
	if c.tiltType != TiltNone && c.tilt != 0 {
		theta = antdata.TiltElectrical(theta, c.tilt)
	}
	if c.patternType == PatternPeak {
		return c.gainPeak(theta)
	}
	return c.gainAverage(theta)
}

func (c *f1336oConfig) gainPeak(theta float64) float64 {
	a := math.Abs(theta)
	switch {
	case a < c.theta4:
		return c.gMax - 12*sq(theta/c.theta3)
	case a < c.theta3:
		return c.gMax - 12 + 10*log10(c.k+1)
	default:
		return c.gMax - 12 + 10*log10(math.Pow(a/c.theta3, -1.5)+c.k)
	}
}

func (c *f1336oConfig) gainAverage(theta float64) float64 {
	a := math.Abs(theta)
	switch {
	case a < c.theta3:
		return c.gMax - 12*sq(theta/c.theta3)
	case a < c.theta5:
		return c.gMax - 15 + 10*log10(c.k+1)
	default:
		return c.gMax - 15 + 10*log10(math.Pow(a/c.theta3, -1.5)+c.k)
	}
}

func (x *F1336o) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	freq, _ := c.params.Float(ParamFreq)
	s := newSpecs(x.Title(), antdata.Float(freq))
	s.HWidth = antdata.Float(360)
	s.VWidth = antdata.Float(c.theta3)
	s.Gain = c.gMax
	s.Tilt = c.tilt
	s.Comment = fmt.Sprintf("Side-lobe: %s/%s, tilting: %s, k=%v",
		c.patternType, c.params.String(ParamPerformanceType), c.tiltType, c.k)

	horizon := c.gain(0)
	s.Horizontal, _ = antdata.Sweep(c.gMax, func(int) (antdata.NullFloat, error) {
		return antdata.Float(horizon), nil
	})
	s.Vertical, _ = antdata.Sweep(c.gMax, func(angle int) (antdata.NullFloat, error) {
		return antdata.Float(c.gain(float64(angle))), nil
	})
	return s, nil
}

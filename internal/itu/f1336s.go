package itu

import (
	"fmt"
	"math"

	"github.com/fpawel/antenna/internal/antdata"
)

// F1336s is the sectoral reference radiation pattern of Rec. ITU-R F.1336-5,
// 400 MHz to 70 GHz. Gain depends on azimuth and elevation.
type F1336s struct {
	holder
}

const (
	range04to6 = "0.4-6 GHz"
	range6to70 = "6-70 GHz"
)

var f1336sSchema = antdata.Schema{
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
		Name:     ParamBeamwidthAz,
		Category: antdata.Mandatory,
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.1, 359.9),
		Doc:      "3 dB beamwidth in the azimuth plane, deg",
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
		Allowed:  []string{TiltNone, TiltMechanical, TiltElectrical},
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
		Category: antdata.WhenAbove(ParamBeamwidthAz, 120),
		Kind:     antdata.KindNumber,
		Range:    rangeOf(0.1, 179.9),
		Doc:      "3 dB beamwidth in the elevation plane, deg",
	},
	{
		Name:     ParamKp,
		Category: antdata.Optional,
		Kind:     antdata.KindFloat,
		Range:    rangeOf(0.001, 0.999),
		Doc:      "side lobe factor of peak patterns",
	},
	{
		Name:     ParamKa,
		Category: antdata.Optional,
		Kind:     antdata.KindFloat,
		Range:    rangeOf(0.001, 0.999),
		Doc:      "side lobe factor of average patterns",
	},
	{
		Name:     ParamKh,
		Category: antdata.Optional,
		Kind:     antdata.KindFloat,
		Range:    rangeOf(0.001, 0.999),
		Doc:      "azimuth pattern adjustment factor",
	},
	{
		Name:     ParamKv,
		Category: antdata.Optional,
		Kind:     antdata.KindFloat,
		Range:    rangeOf(0.001, 0.999),
		Doc:      "elevation pattern adjustment factor",
	},
}

type f1336sConfig struct {
	params      antdata.Params
	freqRange   string
	patternType string
	tiltType    string
	tilt        float64
	gMax        float64
	phi3        float64
	theta3      float64
	kp          float64
	ka          float64
	kh          float64
	kv          float64

	// 0.4-6 GHz coefficients of the selected pattern type
	g180     float64
	lambdaKh float64
	lambdaKv float64
	xk       float64
	c        float64
	ghr0     float64
	ghr180   float64

	// 6-70 GHz azimuth threshold of the back hemisphere beamwidth
	phiTh float64
}

func NewF1336s() *F1336s {
	return new(F1336s)
}

func (*F1336s) Name() string { return "ITUF1336s" }
func (*F1336s) Title() string { return "ITU-R F.1336-5 Sectoral" }
func (*F1336s) Schema() antdata.Schema { return f1336sSchema }
func (*F1336s) Arguments() []string { return azElArgs }
func (x *F1336s) Params() (antdata.Params, error) { return x.params(x.Name()) }

func (x *F1336s) Configure(raw antdata.Values) error {
	p, err := antdata.Validate(f1336sSchema, raw)
	if err != nil {
		return err
	}
	x.publish(resolveF1336s(p))
	return nil
}

func resolveF1336s(p antdata.Params) *f1336sConfig {
	freq, _ := p.Float(ParamFreq)
	c := &f1336sConfig{
		params:      p,
		freqRange:   range04to6,
		patternType: p.String(ParamPatternType),
		tiltType:    p.String(ParamTiltType),
	}
	if freq > 6000 {
		c.freqRange = range6to70
	}
	p[ParamFreqRange] = c.freqRange
	c.gMax, _ = p.Float(ParamMaxGain)
	c.phi3, _ = p.Float(ParamBeamwidthAz)

	typical := p.String(ParamPerformanceType) == PerformanceTypical
	orDefault := func(name string, value float64) float64 {
		if v, ok := p.Float(name); ok {
			return v
		}
		p[name] = value
		return value
	}
	var ok bool
	if c.tilt, ok = p.Float(ParamTiltAngle); !ok || c.tiltType == TiltNone {
		c.tilt = 0
		p[ParamTiltAngle] = c.tilt
	}
	c.theta3 = orDefault(ParamBeamwidthEl, 31000*math.Pow(10, -0.1*c.gMax)/c.phi3)
	c.kp = orDefault(ParamKp, 0.7)
	c.ka = orDefault(ParamKa, 0.7)
	if typical {
		c.kh = orDefault(ParamKh, 0.8)
		c.kv = orDefault(ParamKv, 0.7)
	} else {
		c.kh = orDefault(ParamKh, 0.7)
		c.kv = orDefault(ParamKv, 0.3)
	}

	k := c.kp
	c.g180 = -12 + 10*log10(1+8*c.kp) - 15*log10(180/c.theta3)
	c.xk = math.Sqrt(1 - 0.36*c.kv)
	c.phiTh = c.phi3
	if c.patternType == PatternAverage {
		k = c.ka
		c.g180 = -15 + 10*log10(1+8*c.ka) - 15*log10(180/c.theta3)
		c.xk = math.Sqrt(1.33 - 0.33*c.kv)
		c.phiTh = 1.152 * c.phi3
	}
	c.lambdaKh = 3 * (1 - math.Pow(0.5, -c.kh))
	// c is unused when theta3 is 22.5 deg since the region it shapes is empty
	c.c = log10(math.Pow(180/c.theta3, 1.5)*(math.Pow(4, -1.5)+c.kv)/(1+8*k)) / log10(22.5/c.theta3)
	c.lambdaKv = 12 - c.c*log10(4) - 10*log10(math.Pow(4, -1.5)+c.kv)
	c.ghr0 = c.ghr(0)
	c.ghr180 = c.ghr(180 / c.phi3)
	return c
}

func (c *f1336sConfig) values() antdata.Params { return c.params }

func (x *F1336s) config() (*f1336sConfig, error) {
	c, _ := x.load().(*f1336sConfig)
	if c == nil {
		return nil, notConfigured(x.Name())
	}
	return c, nil
}

func (x *F1336s) Gain(args antdata.Values) (antdata.NullFloat, error) {
	xs, err := antdata.Arguments(args, azElArgs...)
	if err != nil {
		return antdata.NA, err
	}
	g, err := x.GainAt(xs[0], xs[1])
	if err != nil {
		return antdata.NA, err
	}
	return antdata.Float(g), nil
}

// GainAt returns the gain in dBi toward the azimuth and elevation in degrees.
func (x *F1336s) GainAt(azimuth, elevation float64) (float64, error) {
	c, err := x.config()
	if err != nil {
		return 0, err
	}
	return c.gain(azimuth, elevation), nil
}

func (c *f1336sConfig) gain(azimuth, elevation float64) float64 {
	phi, theta := c.tilted(antdata.NormalizeAzimuth(azimuth), antdata.NormalizeElevation(elevation))
	if c.freqRange == range04to6 {
		return c.gainLowRange(phi, theta)
	}
	return c.gainHighRange(phi, theta)
}

func (c *f1336sConfig) tilted(phi, theta float64) (float64, float64) {
	switch {
	case c.tiltType == TiltNone || c.tilt == 0:
		return phi, theta
	case c.tiltType == TiltElectrical:
		return phi, antdata.TiltElectrical(theta, c.tilt)
	default:
		return antdata.TiltMechanical(phi, theta, c.tilt)
	}
}

func (c *f1336sConfig) gainLowRange(phi, theta float64) float64 {
	xh := math.Abs(phi) / c.phi3
	xv := math.Abs(theta) / c.theta3
	ghr := c.ghr(xh)
	r := (ghr - c.ghr180) / (c.ghr0 - c.ghr180)
	return c.gMax + ghr + r*c.gvr(xv)
}

// ghr is the relative gain in the azimuth plane.
func (c *f1336sConfig) ghr(xh float64) float64 {
	g := -12 * sq(xh)
	if xh >= 0.5 {
		g = -12*math.Pow(xh, 2-c.kh) - c.lambdaKh
	}
	return math.Max(g, c.g180)
}

// gvr is the relative gain in the elevation plane.
func (c *f1336sConfig) gvr(xv float64) float64 {
	side, shift := -12.0, 0.0
	if c.patternType == PatternAverage {
		side, shift = -15, -3
	}
	switch {
	case xv < c.xk:
		return -12 * sq(xv)
	case xv < 4:
		return side + 10*log10(math.Pow(xv, -1.5)+c.kv)
	case xv < 90/c.theta3:
		return -c.lambdaKv + shift - c.c*log10(xv)
	default:
		return c.g180
	}
}

func (c *f1336sConfig) gainHighRange(phi, theta float64) float64 {
	psi := antdata.Deg(math.Acos(math.Max(-1, math.Min(1,
		math.Cos(antdata.Rad(phi))*math.Cos(antdata.Rad(theta))))))
	x := psi / c.psiAlpha(psi, phi, theta)
	if c.patternType == PatternPeak {
		if x < 1 {
			return c.gMax - 12*sq(x)
		}
		return c.gMax - 12 - 15*log10(x)
	}
	if x < 1.152 {
		return c.gMax - 12*sq(x)
	}
	return c.gMax - 15 - 15*log10(x)
}

// psiAlpha is the beamwidth of the elliptical main beam cut by the plane of
// the off-axis angle psi.
func (c *f1336sConfig) psiAlpha(psi, phi, theta float64) float64 {
	if psi < 90 {
		alpha := math.Atan2(math.Tan(antdata.Rad(theta)), math.Sin(antdata.Rad(phi)))
		return 1 / math.Hypot(math.Cos(alpha)/c.phi3, math.Sin(alpha)/c.theta3)
	}
	t := antdata.Rad(theta)
	return 1 / math.Hypot(math.Cos(t)/c.phi3m(phi), math.Sin(t)/c.theta3)
}

func (c *f1336sConfig) phi3m(phi float64) float64 {
	a := math.Abs(phi)
	if a < c.phiTh {
		return c.phi3
	}
	x := antdata.Rad((a - c.phiTh) / (180 - c.phiTh) * 90)
	return 1 / math.Hypot(math.Cos(x)/c.phi3, math.Sin(x)/c.theta3)
}

func (x *F1336s) Specs() (antdata.Specs, error) {
	c, err := x.config()
	if err != nil {
		return antdata.Specs{}, err
	}
	freq, _ := c.params.Float(ParamFreq)
	s := newSpecs(x.Title(), antdata.Float(freq))
	s.HWidth = antdata.Float(c.phi3)
	s.VWidth = antdata.Float(c.theta3)
	s.FrontToBack = antdata.Float(c.gain(0, 0) - c.gain(180, 0))
	s.Gain = c.gMax
	s.Tilt = c.tilt
	s.Comment = fmt.Sprintf("Side-lobe: %s/%s, tilting: %s, %s, kp=%v, ka=%v, kh=%v, kv=%v",
		c.patternType, c.params.String(ParamPerformanceType), c.tiltType, c.freqRange,
		c.kp, c.ka, c.kh, c.kv)

	s.Horizontal, _ = antdata.Sweep(c.gMax, func(angle int) (antdata.NullFloat, error) {
		return antdata.Float(c.gain(float64(angle), 0)), nil
	})
	s.Vertical, _ = antdata.Sweep(c.gMax, func(angle int) (antdata.NullFloat, error) {
		azimuth := 0.0
		if angle > 90 && angle < 270 {
			azimuth = 180
		}
		return antdata.Float(c.gain(azimuth, float64(angle))), nil
	})
	return s, nil
}

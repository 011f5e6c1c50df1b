// Package itu implements the ITU-R reference radiation patterns of fixed
// service and earth station antennas.
package itu

import (
	"math"
	"sync"

	"github.com/fpawel/antenna/internal/antdata"
)

// Parameter names shared by the models.
const (
	ParamFreq            = "oper_freq_mhz"
	ParamDiameter        = "diameter_m"
	ParamMaxGain         = "max_gain_dbi"
	ParamBeamwidth       = "beamwidth_deg"
	ParamCalcOpt         = "calc_opt"
	ParamDToL            = "d_to_l"
	ParamPatternType     = "pattern_type"
	ParamPerformanceType = "performance_type"
	ParamTiltType        = "tilt_type"
	ParamTiltAngle       = "tilt_angle_deg"
	ParamBeamwidthAz     = "beamwidth_az_deg"
	ParamBeamwidthEl     = "beamwidth_el_deg"
	ParamK               = "k"
	ParamKp              = "k_p"
	ParamKa              = "k_a"
	ParamKh              = "k_h"
	ParamKv              = "k_v"

	// derived
	ParamFreqBand  = "freq_band"
	ParamFreqRange = "freq_range"
	ParamPhiMin    = "phi_min"
)

const (
	PatternPeak    = "peak"
	PatternAverage = "average"

	PerformanceTypical  = "typical"
	PerformanceImproved = "improved"

	TiltNone       = "none"
	TiltMechanical = "mechanical"
	TiltElectrical = "electrical"
)

var (
	offAxisArgs   = []string{antdata.ArgOffAxis}
	elevationArgs = []string{antdata.ArgElevation}
	azElArgs      = []string{antdata.ArgAzimuth, antdata.ArgElevation}
)

type configured interface {
	values() antdata.Params
}

// holder publishes a fully resolved configuration by a single pointer swap.
// Readers always observe either the previous or the new configuration.
type holder struct {
	mu  sync.RWMutex
	cfg configured
}

func (x *holder) publish(c configured) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.cfg = c
}

func (x *holder) load() configured {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.cfg
}

func (x *holder) params(name string) (antdata.Params, error) {
	c := x.load()
	if c == nil {
		return nil, notConfigured(name)
	}
	return c.values().Clone(), nil
}

func notConfigured(name string) error {
	return antdata.Errorf(antdata.ErrNotConfigured, "%s is not configured", name)
}

func rangeOf(min, max float64) *antdata.Range {
	return &antdata.Range{Min: min, Max: max}
}

func dToLFromGain(g float64) float64 {
	return math.Pow(10, (g-7.7)/20)
}

func gainFromDToL(d float64) float64 {
	return 20*math.Log10(d) + 7.7
}

func sq(x float64) float64 {
	return x * x
}

func log10(x float64) float64 {
	return math.Log10(x)
}

// mainLobe is the parabolic main beam approximation shared by the fixed
// service patterns.
func mainLobe(gMax, dToL, phi float64) float64 {
	return gMax - 2.5e-3*sq(dToL*phi)
}

// mainLobeEdge returns the off-axis angle where the main beam meets the
// first side lobe level g1.
func mainLobeEdge(gMax, g1, dToL float64) (float64, error) {
	if gMax < g1 {
		return 0, antdata.Errorf(antdata.ErrInvalidDerivedValue,
			"peak gain %.2f dBi is below the first side lobe level %.2f dBi for D/lambda %.3f",
			gMax, g1, dToL)
	}
	return 20 / dToL * math.Sqrt(gMax-g1), nil
}

type angleGainFunc = func(float64) (antdata.NullFloat, error)

func defined(f func(float64) (float64, error)) angleGainFunc {
	return func(angle float64) (antdata.NullFloat, error) {
		g, err := f(angle)
		if err != nil {
			return antdata.NA, err
		}
		return antdata.Float(g), nil
	}
}

func plane(f angleGainFunc) antdata.PlaneFunc {
	return func(angle int) (antdata.NullFloat, error) {
		return f(float64(angle))
	}
}

// offAxisSpecs fills both patterns of a circularly symmetric model from the
// same off-axis sweep.
func offAxisSpecs(s antdata.Specs, peak float64, gain angleGainFunc) (antdata.Specs, error) {
	front, err := gain(0)
	if err != nil {
		return s, err
	}
	back, err := gain(180)
	if err != nil {
		return s, err
	}
	s.FrontToBack = antdata.FrontToBack(front, back)
	s.Gain = peak
	if s.Horizontal, err = antdata.Sweep(peak, plane(gain)); err != nil {
		return s, err
	}
	s.Vertical = append(antdata.Pattern(nil), s.Horizontal...)
	return s, nil
}

func newSpecs(title string, freq antdata.NullFloat) antdata.Specs {
	return antdata.Specs{
		Name:         title,
		Make:         antdata.DefaultMake,
		Frequency:    freq,
		HWidth:       antdata.NA,
		VWidth:       antdata.NA,
		FrontToBack:  antdata.NA,
		Polarization: antdata.DefaultPolarization,
	}
}

// Package anttypes is the registry of the antenna models by name.
package anttypes

import (
	"sort"

	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/itu"
)

type ModelType struct {
	New func() antdata.Model
	// Example is a complete parameter set of a typical antenna of the model
	Example antdata.Values
}

var ModelTypes = map[string]ModelType{
	"ITUF699": {
		New: func() antdata.Model { return itu.NewF699() },
		Example: antdata.Values{
			itu.ParamFreq:    26875.0,
			itu.ParamMaxGain: 48.0,
		},
	},
	"ITUF1245": {
		New: func() antdata.Model { return itu.NewF1245() },
		Example: antdata.Values{
			itu.ParamFreq:    26875.0,
			itu.ParamCalcOpt: itu.CalcRec2,
			itu.ParamMaxGain: 48.0,
		},
	},
	"ITUF1336o": {
		New: func() antdata.Model { return itu.NewF1336o() },
		Example: antdata.Values{
			itu.ParamFreq:            1000.0,
			itu.ParamMaxGain:         10.0,
			itu.ParamPatternType:     itu.PatternAverage,
			itu.ParamPerformanceType: itu.PerformanceTypical,
			itu.ParamTiltType:        itu.TiltNone,
		},
	},
	"ITUF1336s": {
		New: func() antdata.Model { return itu.NewF1336s() },
		Example: antdata.Values{
			itu.ParamFreq:            806.0,
			itu.ParamMaxGain:         15.0,
			itu.ParamBeamwidthAz:     65.0,
			itu.ParamPatternType:     itu.PatternAverage,
			itu.ParamPerformanceType: itu.PerformanceImproved,
			itu.ParamTiltType:        itu.TiltElectrical,
			itu.ParamTiltAngle:       3.0,
			itu.ParamKa:              0.7,
			itu.ParamKh:              0.7,
			itu.ParamKv:              0.3,
		},
	},
	"ITUF1336lg": {
		New: func() antdata.Model { return itu.NewF1336lg() },
		Example: antdata.Values{
			itu.ParamFreq:    2000.0,
			itu.ParamMaxGain: 8.0,
		},
	},
	"ITUS465": {
		New: func() antdata.Model { return itu.NewS465() },
		Example: antdata.Values{
			itu.ParamFreq:     20000.0,
			itu.ParamDiameter: 1.2,
		},
	},
	"ITUS580": {
		New: func() antdata.Model { return itu.NewS580() },
		Example: antdata.Values{
			itu.ParamFreq:     77500.0,
			itu.ParamDiameter: 1.85,
		},
	},
}

// New returns a fresh unconfigured instance of the named model.
func New(name string) (antdata.Model, error) {
	x, ok := ModelTypes[name]
	if !ok {
		return nil, antdata.Errorf(antdata.ErrUnknownModel, "unknown antenna model %q, expected one of %v",
			name, Names())
	}
	return x.New(), nil
}

// Example returns a copy of the example parameters of the named model.
func Example(name string) (antdata.Values, error) {
	x, ok := ModelTypes[name]
	if !ok {
		return nil, antdata.Errorf(antdata.ErrUnknownModel, "unknown antenna model %q", name)
	}
	r := make(antdata.Values, len(x.Example))
	for k, v := range x.Example {
		r[k] = v
	}
	return r, nil
}

func Names() []string {
	xs := make([]string, 0, len(ModelTypes))
	for name := range ModelTypes {
		xs = append(xs, name)
	}
	sort.Strings(xs)
	return xs
}

// Configured returns the named model configured with raw parameters.
func Configured(name string, raw antdata.Values) (antdata.Model, error) {
	m, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := m.Configure(raw); err != nil {
		return nil, err
	}
	return m, nil
}

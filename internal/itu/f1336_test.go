package itu

import (
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func omniValues(freq, gain float64, patternType, performanceType string) antdata.Values {
	return antdata.Values{
		ParamFreq:            freq,
		ParamMaxGain:         gain,
		ParamPatternType:     patternType,
		ParamPerformanceType: performanceType,
		ParamTiltType:        TiltNone,
	}
}

func TestF1336oDefaults(t *testing.T) {
	for _, tc := range []struct {
		freq            float64
		performanceType string
		k               float64
	}{
		{2000, PerformanceTypical, 0.7},
		{3000, PerformanceTypical, 0.7},
		{5000, PerformanceTypical, 0},
		{2000, PerformanceImproved, 0},
	} {
		m := NewF1336o()
		require.NoError(t, m.Configure(omniValues(tc.freq, 10, PatternPeak, tc.performanceType)))
		p, err := m.Params()
		require.NoError(t, err)
		assert.Equal(t, tc.k, p[ParamK], "%v %s", tc.freq, tc.performanceType)
		assert.Equal(t, 107.6*math.Pow(10, -1.0), p[ParamBeamwidthEl])
		assert.Equal(t, 0.0, p[ParamTiltAngle])
	}

	m := NewF1336o()
	v := omniValues(2000, 10, PatternPeak, PerformanceTypical)
	v[ParamK] = 0.25
	v[ParamBeamwidthEl] = 8
	v[ParamTiltAngle] = 4
	require.NoError(t, m.Configure(v))
	p, _ := m.Params()
	assert.Equal(t, 0.25, p[ParamK])
	assert.Equal(t, 8.0, p[ParamBeamwidthEl])
	// ignored without a tilt type
	assert.Equal(t, 0.0, p[ParamTiltAngle])
}

func TestF1336oValidation(t *testing.T) {
	m := NewF1336o()
	v := omniValues(2000, 10, PatternPeak, PerformanceTypical)
	v[ParamTiltType] = TiltElectrical
	err := m.Configure(v)
	assert.True(t, merry.Is(err, antdata.ErrMissingParameter), "%v", err)

	v = omniValues(2000, 10, PatternPeak, PerformanceTypical)
	v[ParamTiltType] = TiltMechanical
	err = m.Configure(v)
	assert.True(t, merry.Is(err, antdata.ErrNotAllowed), "%v", err)

	v = omniValues(2000, 10, PatternPeak, PerformanceTypical)
	v[ParamK] = 1
	err = m.Configure(v)
	assert.True(t, merry.Is(err, antdata.ErrTypeMismatch), "%v", err)
}

func TestF1336oGain(t *testing.T) {
	m := NewF1336o()
	require.NoError(t, m.Configure(omniValues(2000, 10, PatternPeak, PerformanceTypical)))
	c, _ := m.config()

	g, err := m.GainAt(0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, g)
	g, _ = m.GainAt(c.theta4 / 2)
	assert.InDelta(t, 10-12*sq(c.theta4/2/c.theta3), g, 1e-12)
	g, _ = m.GainAt(-c.theta4)
	assert.InDelta(t, 10-12+10*math.Log10(1.7), g, 1e-12)
	g, _ = m.GainAt(c.theta3)
	assert.InDelta(t, 10-12+10*math.Log10(1.7), g, 1e-12)
	g, _ = m.GainAt(4 * c.theta3)
	assert.InDelta(t, 10-12+10*math.Log10(1.0/8+0.7), g, 1e-12)

	require.NoError(t, m.Configure(omniValues(2000, 10, PatternAverage, PerformanceTypical)))
	c, _ = m.config()
	g, _ = m.GainAt(c.theta3)
	assert.InDelta(t, 10-15+10*math.Log10(1.7), g, 1e-12)
	g, _ = m.GainAt(4 * c.theta5)
	assert.InDelta(t, 10-15+10*math.Log10(math.Pow(4*c.theta5/c.theta3, -1.5)+0.7), g, 1e-12)

	_, err = m.Gain(antdata.Values{antdata.ArgAzimuth: 0})
	assert.True(t, merry.Is(err, antdata.ErrUnsupportedQuery), "%v", err)
}

func TestF1336oElectricalTilt(t *testing.T) {
	m := NewF1336o()
	v := omniValues(2000, 10, PatternPeak, PerformanceTypical)
	v[ParamTiltType] = TiltElectrical
	v[ParamTiltAngle] = 5
	require.NoError(t, m.Configure(v))

	g, err := m.GainAt(-5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, g)
	g0, _ := m.GainAt(0)
	assert.True(t, g0 < 10)

	s, err := m.Specs()
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.Tilt)
	for _, x := range s.Horizontal {
		assert.Equal(t, antdata.Float(10-g0), x.Loss)
	}
}

func TestF1336oSpecs(t *testing.T) {
	m := NewF1336o()
	require.NoError(t, m.Configure(omniValues(2000, 10, PatternPeak, PerformanceTypical)))
	s, err := m.Specs()
	require.NoError(t, err)
	c, _ := m.config()

	assert.Equal(t, "ITU-R F.1336-5 Omnidirectional", s.Name)
	assert.Equal(t, antdata.Float(360), s.HWidth)
	assert.Equal(t, antdata.Float(c.theta3), s.VWidth)
	assert.Equal(t, antdata.NA, s.FrontToBack)
	assert.Equal(t, "Side-lobe: peak/typical, tilting: none, k=0.7", s.Comment)
	require.Len(t, s.Vertical, antdata.PatternSize)
	for i, x := range s.Vertical {
		g, err := m.Gain(antdata.Values{antdata.ArgElevation: i})
		require.NoError(t, err)
		assert.Equal(t, antdata.Loss(10, g), x.Loss, "angle %d", i)
		assert.True(t, x.Loss.Float64 >= -1e-9)
		assert.Equal(t, antdata.Float(0), s.Horizontal[i].Loss)
	}
	assert.Equal(t, s.Vertical[10].Loss, s.Vertical[170].Loss)
}

func sectoralValues(freq float64, patternType, performanceType string) antdata.Values {
	return antdata.Values{
		ParamFreq:            freq,
		ParamMaxGain:         17,
		ParamBeamwidthAz:     65,
		ParamPatternType:     patternType,
		ParamPerformanceType: performanceType,
		ParamTiltType:        TiltNone,
	}
}

func TestF1336sDefaults(t *testing.T) {
	m := NewF1336s()
	require.NoError(t, m.Configure(sectoralValues(3500, PatternPeak, PerformanceTypical)))
	p, err := m.Params()
	require.NoError(t, err)
	assert.Equal(t, range04to6, p[ParamFreqRange])
	assert.InDelta(t, 31000*math.Pow(10, -1.7)/65, p[ParamBeamwidthEl], 1e-9)
	assert.Equal(t, 0.7, p[ParamKp])
	assert.Equal(t, 0.7, p[ParamKa])
	assert.Equal(t, 0.8, p[ParamKh])
	assert.Equal(t, 0.7, p[ParamKv])

	require.NoError(t, m.Configure(sectoralValues(26000, PatternPeak, PerformanceImproved)))
	p, _ = m.Params()
	assert.Equal(t, range6to70, p[ParamFreqRange])
	assert.Equal(t, 0.7, p[ParamKh])
	assert.Equal(t, 0.3, p[ParamKv])
}

func TestF1336sConditionalBeamwidth(t *testing.T) {
	m := NewF1336s()
	v := sectoralValues(3500, PatternPeak, PerformanceTypical)
	v[ParamBeamwidthAz] = 130
	err := m.Configure(v)
	assert.True(t, merry.Is(err, antdata.ErrMissingParameter), "%v", err)

	v[ParamBeamwidthEl] = 12
	require.NoError(t, m.Configure(v))
	p, _ := m.Params()
	assert.Equal(t, 12.0, p[ParamBeamwidthEl])
}

func TestF1336sBoresight(t *testing.T) {
	for _, freq := range []float64{3500, 26000} {
		for _, patternType := range []string{PatternPeak, PatternAverage} {
			m := NewF1336s()
			require.NoError(t, m.Configure(sectoralValues(freq, patternType, PerformanceTypical)))
			g, err := m.GainAt(0, 0)
			require.NoError(t, err)
			assert.Equal(t, 17.0, g, "%v %s", freq, patternType)

			a, _ := m.GainAt(40, 10)
			b, _ := m.GainAt(-40, 10)
			assert.InDelta(t, a, b, 1e-12, "%v %s", freq, patternType)
			assert.True(t, a < 17)
		}
	}
}

func TestF1336sLowRange(t *testing.T) {
	m := NewF1336s()
	require.NoError(t, m.Configure(sectoralValues(3500, PatternPeak, PerformanceTypical)))
	c, _ := m.config()

	g, _ := m.GainAt(20, 0)
	assert.InDelta(t, 17-12*sq(20.0/65), g, 1e-12)
	g, _ = m.GainAt(0, 5)
	assert.InDelta(t, 17-12*sq(5/c.theta3), g, 1e-12)

	// the elevation pattern vanishes toward the back
	g0, _ := m.GainAt(180, 0)
	g30, _ := m.GainAt(180, 30)
	assert.Equal(t, g0, g30)
	assert.Equal(t, 17+c.ghr180, g0)
}

func TestF1336sHighRange(t *testing.T) {
	m := NewF1336s()
	require.NoError(t, m.Configure(sectoralValues(26000, PatternPeak, PerformanceTypical)))
	c, _ := m.config()

	g, _ := m.GainAt(30, 0)
	assert.InDelta(t, 17-12*sq(30.0/65), g, 1e-9)
	g, _ = m.GainAt(0, 5)
	assert.InDelta(t, 17-12*sq(5/c.theta3), g, 1e-9)
	g, _ = m.GainAt(130, 0)
	assert.InDelta(t, 17-12-15*math.Log10(130/c.phi3m(130)), g, 1e-9)
}

func TestF1336sTilt(t *testing.T) {
	for _, tiltType := range []string{TiltElectrical, TiltMechanical} {
		m := NewF1336s()
		v := sectoralValues(3500, PatternPeak, PerformanceTypical)
		v[ParamTiltType] = tiltType
		v[ParamTiltAngle] = 6
		require.NoError(t, m.Configure(v))

		g, err := m.GainAt(0, -6)
		require.NoError(t, err)
		assert.InDelta(t, 17, g, 1e-6, tiltType)
		g, _ = m.GainAt(0, 0)
		assert.True(t, g < 17, tiltType)
	}
}

func TestF1336sSpecs(t *testing.T) {
	m := NewF1336s()
	require.NoError(t, m.Configure(sectoralValues(3500, PatternPeak, PerformanceTypical)))
	s, err := m.Specs()
	require.NoError(t, err)
	c, _ := m.config()

	assert.Equal(t, "ITU-R F.1336-5 Sectoral", s.Name)
	assert.Equal(t, antdata.Float(65), s.HWidth)
	assert.Equal(t, antdata.Float(c.theta3), s.VWidth)
	assert.InDelta(t, -c.ghr180, s.FrontToBack.Float64, 1e-12)
	assert.Contains(t, s.Comment, range04to6)
	require.Len(t, s.Horizontal, antdata.PatternSize)
	require.Len(t, s.Vertical, antdata.PatternSize)
	for i := range s.Horizontal {
		g, err := m.Gain(antdata.Values{antdata.ArgAzimuth: i, antdata.ArgElevation: 0})
		require.NoError(t, err)
		assert.Equal(t, antdata.Loss(17, g), s.Horizontal[i].Loss, "angle %d", i)
		assert.True(t, s.Horizontal[i].Loss.Float64 >= -1e-9, "angle %d", i)
		assert.True(t, s.Vertical[i].Loss.Float64 >= -1e-9, "angle %d", i)
	}
	g, _ := m.GainAt(180, 80)
	assert.Equal(t, antdata.Loss(17, antdata.Float(g)), s.Vertical[100].Loss)
}

func TestF1336lg(t *testing.T) {
	m := NewF1336lg()
	require.NoError(t, m.Configure(antdata.Values{ParamFreq: 2000, ParamMaxGain: 8}))
	c, _ := m.config()
	assert.Equal(t, math.Sqrt(27000*math.Pow(10, -0.8)), c.phi3)

	g, _ := m.GainAt(0)
	assert.Equal(t, 8.0, g)
	g, _ = m.GainAt(c.phi3)
	assert.InDelta(t, 8-12, g, 1e-12)
	g, _ = m.GainAt(1.08 * c.phi3)
	assert.Equal(t, 8.0-14, g)
	g, _ = m.GainAt(c.phi1)
	assert.InDelta(t, 8-14, g, 1e-12)
	g, _ = m.GainAt(c.phi2)
	assert.Equal(t, -8.0, g)
	g, _ = m.GainAt(180)
	assert.Equal(t, -8.0, g)

	s, err := m.Specs()
	require.NoError(t, err)
	assert.Equal(t, antdata.Float(c.phi3), s.HWidth)
	assert.Equal(t, antdata.Float(16), s.FrontToBack)
	assert.Empty(t, s.Comment)
	checkOffAxisPatterns(t, m, s)
}

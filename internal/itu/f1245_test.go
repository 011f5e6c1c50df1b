package itu

import (
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestF1245Incomplete(t *testing.T) {
	m := NewF1245()
	err := m.Configure(antdata.Values{ParamFreq: 26875, ParamCalcOpt: CalcRec2})
	assert.True(t, merry.Is(err, antdata.ErrIncompleteParameters), "%v", err)

	err = m.Configure(antdata.Values{ParamFreq: 26875, ParamCalcOpt: "Rec. 4", ParamMaxGain: 40})
	assert.True(t, merry.Is(err, antdata.ErrNotAllowed), "%v", err)

	err = m.Configure(antdata.Values{ParamFreq: 26875, ParamMaxGain: 40})
	assert.True(t, merry.Is(err, antdata.ErrMissingParameter), "%v", err)
}

func TestF1245Rec2Large(t *testing.T) {
	m := NewF1245()
	require.NoError(t, m.Configure(antdata.Values{ParamFreq: 23000, ParamDiameter: 2, ParamCalcOpt: CalcRec2}))
	c, err := m.config()
	require.NoError(t, err)
	require.True(t, c.dToL > 100)
	require.True(t, c.phiM < c.phiR)

	p, _ := m.Params()
	assert.Equal(t, band1to70, p[ParamFreqBand])
	assert.Equal(t, gainFromDToL(c.dToL), p[ParamMaxGain])

	g, _ := m.GainAt(0)
	assert.Equal(t, c.gMax, g)
	g, _ = m.GainAt(c.phiM / 2)
	assert.Equal(t, mainLobe(c.gMax, c.dToL, c.phiM/2), g)
	g, _ = m.GainAt(c.phiM)
	assert.Equal(t, c.g1, g)
	g, _ = m.GainAt(30)
	assert.InDelta(t, 29-25*math.Log10(30), g, 1e-12)
	g, _ = m.GainAt(90)
	assert.Equal(t, -13.0, g)
}

func TestF1245Rec2Small7086(t *testing.T) {
	m := NewF1245()
	require.NoError(t, m.Configure(antdata.Values{ParamFreq: 80000, ParamDiameter: 0.1, ParamCalcOpt: CalcRec2}))
	c, err := m.config()
	require.NoError(t, err)
	require.True(t, c.dToL < 100)
	assert.Equal(t, band70to86, c.band)

	g, _ := m.GainAt(100)
	assert.InDelta(t, 39-5*math.Log10(c.dToL)-50, g, 1e-12)
	g, _ = m.GainAt(150)
	assert.InDelta(t, -13-5*math.Log10(c.dToL), g, 1e-12)
}

func TestF1245Rec2BelowFirstSideLobe(t *testing.T) {
	m := NewF1245()
	require.NoError(t, m.Configure(antdata.Values{
		ParamFreq: 23000, ParamDiameter: 2, ParamMaxGain: 20, ParamCalcOpt: CalcRec2}))
	g, err := m.GainAt(0)
	require.NoError(t, err)
	assert.Equal(t, 20.0, g)
	_, err = m.GainAt(10)
	assert.True(t, merry.Is(err, antdata.ErrInvalidDerivedValue), "%v", err)
}

func TestF1245Rec3(t *testing.T) {
	for _, tc := range []struct {
		diameter float64
		want     func(dToL, phi float64) float64
	}{
		{2, func(_, phi float64) float64 { return 32 - 25*math.Log10(phi) }},
		{0.5, func(d, phi float64) float64 { return 42 - 5*math.Log10(d) - 25*math.Log10(phi) }},
	} {
		m := NewF1245()
		require.NoError(t, m.Configure(antdata.Values{
			ParamFreq: 23000, ParamDiameter: tc.diameter, ParamCalcOpt: CalcRec3}))
		c, err := m.config()
		require.NoError(t, err)

		g, _ := m.GainAt(0)
		assert.Equal(t, c.gMax, g)

		// the side lobe ripple vanishes where 3*pi*phi/(2*phiR) equals 90
		phi := 60 * c.phiR / math.Pi
		require.True(t, phi > c.phiR && phi < 48)
		g, _ = m.GainAt(phi)
		assert.InDelta(t, tc.want(c.dToL, phi), g, 1e-9, "D %v", tc.diameter)

		for _, phi := range []float64{c.phiR, 20, 47.5} {
			g, _ = m.GainAt(phi)
			assert.True(t, g <= tc.want(c.dToL, phi)+1e-9, "D %v phi %v", tc.diameter, phi)
			assert.True(t, g >= tc.want(c.dToL, phi)-10-1e-9, "D %v phi %v", tc.diameter, phi)
		}
	}
}

func TestF1245Specs(t *testing.T) {
	for _, calcOpt := range []string{CalcRec2, CalcRec3} {
		m := NewF1245()
		require.NoError(t, m.Configure(antdata.Values{ParamFreq: 38000, ParamMaxGain: 38, ParamCalcOpt: calcOpt}))
		s, err := m.Specs()
		require.NoError(t, err)
		c, _ := m.config()

		assert.Equal(t, "ITU-R F.1245-3", s.Name)
		assert.Equal(t, antdata.Float(35/c.dToL), s.HWidth)
		assert.Equal(t, s.HWidth, s.VWidth)
		assert.Equal(t, 38.0, s.Gain)
		g180, _ := m.GainAt(180)
		assert.Equal(t, antdata.Float(38-g180), s.FrontToBack)
		checkOffAxisPatterns(t, m, s)
	}
}

package antdata

import (
	"encoding/json"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSweep(t *testing.T) {
	xs, err := Sweep(10, func(angle int) (NullFloat, error) {
		if angle < 3 {
			return NA, nil
		}
		return Float(10 - float64(angle)/10), nil
	})
	require.NoError(t, err)
	require.Len(t, xs, PatternSize)
	for i, x := range xs {
		assert.Equal(t, i, x.Angle)
	}
	assert.Equal(t, []int{0, 1, 2}, xs.Undefined())
	assert.Equal(t, Float(10-(10-3.0/10)), xs[3].Loss)
	assert.Equal(t, Float(10-(10-36.0)), xs[360].Loss)
}

func TestSweepError(t *testing.T) {
	_, err := Sweep(0, func(angle int) (NullFloat, error) {
		if angle == 7 {
			return NA, Errorf(ErrInvalidDerivedValue, "negative discriminant")
		}
		return Float(0), nil
	})
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrInvalidDerivedValue))
	assert.Contains(t, err.Error(), "angle 7")
}

func TestFrontToBack(t *testing.T) {
	assert.Equal(t, Float(30), FrontToBack(Float(20), Float(-10)))
	assert.Equal(t, NA, FrontToBack(NA, Float(-10)))
	assert.Equal(t, NA, FrontToBack(Float(1), NA))
}

func TestNullFloatEncoding(t *testing.T) {
	b, err := json.Marshal([]NullFloat{Float(1.25), NA})
	require.NoError(t, err)
	assert.Equal(t, `[1.25,"n/a"]`, string(b))

	var xs []NullFloat
	require.NoError(t, json.Unmarshal([]byte(`[1.25,"n/a",null,"-3"]`), &xs))
	assert.Equal(t, []NullFloat{Float(1.25), NA, NA, Float(-3)}, xs)

	b, err = yaml.Marshal(map[string]NullFloat{"a": Float(2), "b": NA})
	require.NoError(t, err)
	assert.Equal(t, "a: 2\nb: n/a\n", string(b))

	var m map[string]NullFloat
	require.NoError(t, yaml.Unmarshal(b, &m))
	assert.Equal(t, map[string]NullFloat{"a": Float(2), "b": NA}, m)
}

func TestSpecsRound(t *testing.T) {
	s := Specs{
		Gain:       48.123456,
		HWidth:     Float(1.005),
		VWidth:     NA,
		Horizontal: Pattern{{Angle: 0, Loss: Float(0.126)}, {Angle: 1, Loss: NA}},
	}
	r := s.Round(2)
	assert.Equal(t, 48.12, r.Gain)
	assert.Equal(t, NA, r.VWidth)
	assert.Equal(t, Float(0.13), r.Horizontal[0].Loss)
	assert.Equal(t, NA, r.Horizontal[1].Loss)
	assert.Equal(t, Float(0.126), s.Horizontal[0].Loss, "source is untouched")
	assert.Equal(t, s, s.Round(-1))
}

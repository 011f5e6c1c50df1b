package antdata

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "freq", Category: Mandatory, Kind: KindNumber, Range: &Range{100, 1000}},
	{Name: "mode", Category: Mandatory, Kind: KindString, Allowed: []string{"none", "electrical"}},
	{Name: "tilt", Category: WhenNot("mode", "none"), Kind: KindNumber, Range: &Range{-89.9, 89.9}},
	{Name: "width", Category: Optional, Kind: KindNumber, Range: &Range{1, 360}},
	{Name: "height", Category: WhenAbove("width", 120), Kind: KindNumber, Range: &Range{0.1, 179.9}},
	{Name: "k", Category: Optional, Kind: KindFloat, Range: &Range{0.001, 0.999}},
}

func TestValidateAccepts(t *testing.T) {
	p, err := Validate(testSchema, Values{
		"freq":  500,
		"mode":  "none",
		"width": 65.5,
		"k":     0.5,
		"extra": "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, Params{"freq": 500.0, "mode": "none", "width": 65.5, "k": 0.5}, p)
}

func TestValidateRangeInclusive(t *testing.T) {
	for _, freq := range []interface{}{100, 1000, 100.0, int64(1000), float32(250)} {
		_, err := Validate(testSchema, Values{"freq": freq, "mode": "none"})
		assert.NoError(t, err, "freq %v", freq)
	}
}

func TestValidateErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  Values
		kind merry.Error
	}{
		{"mandatory absent", Values{"mode": "none"}, ErrMissingParameter},
		{"mandatory nil", Values{"freq": nil, "mode": "none"}, ErrMissingParameter},
		{"string for number", Values{"freq": "500", "mode": "none"}, ErrTypeMismatch},
		{"bool for number", Values{"freq": true, "mode": "none"}, ErrTypeMismatch},
		{"below range", Values{"freq": 99.999, "mode": "none"}, ErrOutOfRange},
		{"above range", Values{"freq": 1000.001, "mode": "none"}, ErrOutOfRange},
		{"not allowed", Values{"freq": 500, "mode": "mechanical"}, ErrNotAllowed},
		{"number for string", Values{"freq": 500, "mode": 1}, ErrTypeMismatch},
		{"conditional required", Values{"freq": 500, "mode": "electrical"}, ErrMissingParameter},
		{"conditional range", Values{"freq": 500, "mode": "electrical", "tilt": 90}, ErrOutOfRange},
		{"conditional on number", Values{"freq": 500, "mode": "none", "width": 130}, ErrMissingParameter},
		{"integer for float", Values{"freq": 500, "mode": "none", "k": 0}, ErrTypeMismatch},
		{"float out of range", Values{"freq": 500, "mode": "none", "k": 0.0}, ErrOutOfRange},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(testSchema, tc.raw)
			require.Error(t, err)
			assert.True(t, merry.Is(err, tc.kind), "%v", err)
		})
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	_, err := Validate(testSchema, Values{"freq": 5, "mode": "bad"})
	assert.True(t, merry.Is(err, ErrOutOfRange), "%v", err)

	_, err = Validate(testSchema, Values{"freq": 500, "mode": "electrical", "width": 1000})
	assert.True(t, merry.Is(err, ErrMissingParameter), "%v", err)
	assert.Contains(t, err.Error(), `"tilt"`)
	assert.Contains(t, err.Error(), `"mode"`)
}

func TestValidateConditional(t *testing.T) {
	p, err := Validate(testSchema, Values{"freq": 500, "mode": "electrical", "tilt": -3, "width": 120})
	require.NoError(t, err)
	assert.Equal(t, -3.0, p["tilt"])
	assert.False(t, p.Has("height"))

	p, err = Validate(testSchema, Values{"freq": 500, "mode": "none", "width": 121, "height": 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, p["height"])

	// a conditional value is checked even when its dependency does not require it
	_, err = Validate(testSchema, Values{"freq": 500, "mode": "none", "tilt": 100})
	assert.True(t, merry.Is(err, ErrOutOfRange), "%v", err)
}

func TestSchemaInfo(t *testing.T) {
	xs := testSchema.Info()
	require.Len(t, xs, len(testSchema))
	assert.Equal(t, "mandatory", xs[0].Category)
	assert.Equal(t, []float64{100, 1000}, xs[0].Range)
	assert.Equal(t, "conditional", xs[2].Category)
	assert.Equal(t, "mode != none", xs[2].DependsOn)
	assert.Equal(t, "width > 120", xs[4].DependsOn)
	assert.Equal(t, "float", xs[5].Type)
	assert.Nil(t, xs[1].Range)
}

func TestArguments(t *testing.T) {
	xs, err := Arguments(Values{ArgAzimuth: 10, ArgElevation: -2.5}, ArgAzimuth, ArgElevation)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, -2.5}, xs)

	_, err = Arguments(Values{ArgAzimuth: 10}, ArgAzimuth, ArgElevation)
	assert.True(t, merry.Is(err, ErrUnsupportedQuery))

	_, err = Arguments(Values{ArgOffAxis: "10"}, ArgOffAxis)
	assert.True(t, merry.Is(err, ErrUnsupportedQuery))
}

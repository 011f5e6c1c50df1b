package antdata

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"

	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"
)

// NotAvailable is the text of an undefined value in every output format.
const NotAvailable = "n/a"

// NullFloat is a float64 that may be undefined: a gain below the valid
// angular range of a model, or a record field a model does not provide.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// NA is the undefined value.
var NA = NullFloat{}

func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

func (x NullFloat) String() string {
	if !x.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(x.Float64, 'f', -1, 64)
}

// Round rounds to precision decimal places; a negative precision keeps x.
func (x NullFloat) Round(precision int) NullFloat {
	if !x.Valid || precision < 0 {
		return x
	}
	return Float(Round(x.Float64, precision))
}

func Round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	k := math.Pow(10, float64(precision))
	return math.Round(v*k) / k
}

// ParseNullFloat parses a number or the n/a text.
func ParseNullFloat(s string) (NullFloat, error) {
	if s == NotAvailable {
		return NA, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NA, merry.Prependf(err, "parse %q", s)
	}
	return Float(v), nil
}

func (x NullFloat) MarshalJSON() ([]byte, error) {
	if !x.Valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(x.Float64)
}

func (x *NullFloat) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return x.set(v)
}

func (x NullFloat) MarshalYAML() (interface{}, error) {
	if !x.Valid {
		return NotAvailable, nil
	}
	return x.Float64, nil
}

func (x *NullFloat) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}
	return x.set(v)
}

func (x *NullFloat) set(v interface{}) error {
	switch v := v.(type) {
	case nil:
		*x = NA
		return nil
	case string:
		y, err := ParseNullFloat(v)
		*x = y
		return err
	}
	f, ok := Number(v)
	if !ok {
		return merry.Errorf("unexpected value %v of type %T", v, v)
	}
	*x = Float(f)
	return nil
}

// Value implements driver.Valuer, undefined value is stored as NULL.
func (x NullFloat) Value() (driver.Value, error) {
	if !x.Valid {
		return nil, nil
	}
	return x.Float64, nil
}

// Scan implements sql.Scanner.
func (x *NullFloat) Scan(src interface{}) error {
	if src == nil {
		*x = NA
		return nil
	}
	return x.set(src)
}

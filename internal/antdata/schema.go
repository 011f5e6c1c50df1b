package antdata

import (
	"fmt"
	"math"
	"sort"
)

// Values are raw name/value pairs supplied by a caller: model parameters or
// gain query arguments.
type Values map[string]interface{}

// Params is the validated parameter set of a configured model together with
// the entries derived from it. Numbers are stored as float64.
type Params map[string]interface{}

type Kind int

const (
	// KindNumber accepts any integer or floating point value.
	KindNumber Kind = iota
	// KindFloat accepts floating point values only.
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Category tells whether a parameter must be supplied.
type Category interface {
	category() string
}

type mandatory struct{}

type optional struct{}

// Conditional parameter is required when Holds reports true for the raw
// value of parameter On. Holds receives nil when On is absent.
type Conditional struct {
	On    string
	What  string
	Holds func(v interface{}) bool
}

var (
	Mandatory Category = mandatory{}
	Optional  Category = optional{}
)

func (mandatory) category() string   { return "mandatory" }
func (optional) category() string    { return "optional" }
func (Conditional) category() string { return "conditional" }

// WhenNot makes a parameter required unless parameter on equals value.
func WhenNot(on, value string) Category {
	return Conditional{
		On:   on,
		What: fmt.Sprintf("%s != %s", on, value),
		Holds: func(v interface{}) bool {
			s, ok := v.(string)
			return !ok || s != value
		},
	}
}

// WhenAbove makes a parameter required when parameter on is greater than limit.
func WhenAbove(on string, limit float64) Category {
	return Conditional{
		On:   on,
		What: fmt.Sprintf("%s > %v", on, limit),
		Holds: func(v interface{}) bool {
			x, ok := Number(v)
			return ok && x > limit
		},
	}
}

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

type ParamSpec struct {
	Name     string
	Category Category
	Kind     Kind
	Range    *Range
	Allowed  []string
	Doc      string
}

// Schema is the ordered parameter declaration of a model. Validation walks it
// in order and reports the first violation.
type Schema []ParamSpec

func (s Schema) Lookup(name string) (ParamSpec, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// ParamInfo is the serializable description of a ParamSpec.
type ParamInfo struct {
	Name      string    `json:"name" yaml:"name"`
	Category  string    `json:"category" yaml:"category"`
	Type      string    `json:"type" yaml:"type"`
	Range     []float64 `json:"range,omitempty" yaml:"range,omitempty,flow"`
	Allowed   []string  `json:"allowed,omitempty" yaml:"allowed,omitempty,flow"`
	DependsOn string    `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Doc       string    `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (s Schema) Info() []ParamInfo {
	xs := make([]ParamInfo, 0, len(s))
	for _, p := range s {
		x := ParamInfo{
			Name:     p.Name,
			Category: p.Category.category(),
			Type:     p.Kind.String(),
			Allowed:  p.Allowed,
			Doc:      p.Doc,
		}
		if p.Range != nil {
			x.Range = []float64{p.Range.Min, p.Range.Max}
		}
		if c, ok := p.Category.(Conditional); ok {
			x.DependsOn = c.What
		}
		xs = append(xs, x)
	}
	return xs
}

// Float returns the numeric entry name.
func (p Params) Float(name string) (float64, bool) {
	v, ok := p[name].(float64)
	return v, ok
}

func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p Params) Clone() Params {
	r := make(Params, len(p))
	for k, v := range p {
		r[k] = v
	}
	return r
}

func (p Params) Keys() []string {
	var xs []string
	for k := range p {
		xs = append(xs, k)
	}
	sort.Strings(xs)
	return xs
}

// Number converts any Go integer or floating point value to float64.
func Number(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func isFloat(v interface{}) bool {
	switch v.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

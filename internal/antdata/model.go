package antdata

// Gain query argument names.
const (
	ArgOffAxis   = "off_axis_angle"
	ArgAzimuth   = "azimuth"
	ArgElevation = "elevation"
)

// Model is a reference radiation pattern. A model must be configured before
// gain queries. Configure replaces the whole configuration or, on failure,
// leaves the previous one untouched. Methods are safe for concurrent use.
type Model interface {
	// Name is the registry name, e.g. ITUF699.
	Name() string
	// Title is the name of the pattern in reports, e.g. ITU-R F.699-8.
	Title() string
	Schema() Schema
	// Arguments lists the argument names a gain query requires.
	Arguments() []string
	Configure(Values) error
	// Params returns a copy of the validated and derived parameters.
	Params() (Params, error)
	Gain(Values) (NullFloat, error)
	Specs() (Specs, error)
}

// Arguments extracts the named numeric gain query arguments.
func Arguments(args Values, names ...string) ([]float64, error) {
	xs := make([]float64, len(names))
	for i, name := range names {
		v, ok := args[name]
		if !ok {
			return nil, Errorf(ErrUnsupportedQuery, "missing gain argument %q", name)
		}
		x, ok := Number(v)
		if !ok {
			return nil, Errorf(ErrUnsupportedQuery, "gain argument %q must be a number, got %T", name, v)
		}
		if !isFinite(x) {
			return nil, Errorf(ErrUnsupportedQuery, "gain argument %q: %v is not finite", name, x)
		}
		xs[i] = x
	}
	return xs, nil
}

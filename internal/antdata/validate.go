package antdata

// Validate checks raw against schema in declaration order and returns the
// accepted parameters. The first violation is returned and nothing else is
// reported. Keys not declared in schema are dropped.
func Validate(schema Schema, raw Values) (Params, error) {
	params := make(Params, len(schema))
	for _, p := range schema {
		v, present := raw[p.Name]
		if v == nil {
			present = false
		}
		switch c := p.Category.(type) {
		case mandatory:
			if !present {
				return nil, Errorf(ErrMissingParameter, "missing mandatory parameter %q", p.Name)
			}
		case optional:
			if !present {
				continue
			}
		case Conditional:
			if !present {
				if c.Holds(raw[c.On]) {
					return nil, Errorf(ErrMissingParameter,
						"missing parameter %q required because %q is set to %v", p.Name, c.On, raw[c.On])
				}
				continue
			}
		}
		x, err := p.check(v)
		if err != nil {
			return nil, err
		}
		params[p.Name] = x
	}
	return params, nil
}

func (p ParamSpec) check(v interface{}) (interface{}, error) {
	if p.Kind == KindString {
		s, ok := v.(string)
		if !ok {
			return nil, Errorf(ErrTypeMismatch, "parameter %q must be a string, got %T", p.Name, v)
		}
		if len(p.Allowed) > 0 && !contains(p.Allowed, s) {
			return nil, Errorf(ErrNotAllowed, "parameter %q: %q is not one of %q", p.Name, s, p.Allowed)
		}
		return s, nil
	}

	if p.Kind == KindFloat && !isFloat(v) {
		return nil, Errorf(ErrTypeMismatch, "parameter %q must be a float, got %T", p.Name, v)
	}
	x, ok := Number(v)
	if !ok {
		return nil, Errorf(ErrTypeMismatch, "parameter %q must be a number, got %T", p.Name, v)
	}
	if p.Range != nil && !p.Range.Contains(x) {
		return nil, Errorf(ErrOutOfRange, "parameter %q: %v is out of range [%v, %v]",
			p.Name, x, p.Range.Min, p.Range.Max)
	}
	if !isFinite(x) {
		return nil, Errorf(ErrOutOfRange, "parameter %q: %v is not finite", p.Name, x)
	}
	return x, nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

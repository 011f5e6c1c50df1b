package antdata

import "github.com/ansel1/merry"

var (
	ErrMissingParameter     = merry.New("missing parameter")
	ErrTypeMismatch         = merry.New("parameter type mismatch")
	ErrOutOfRange           = merry.New("parameter out of range")
	ErrNotAllowed           = merry.New("parameter value is not allowed")
	ErrIncompleteParameters = merry.New("incomplete parameters")
	ErrInvalidDerivedValue  = merry.New("invalid derived value")
	ErrUnsupportedQuery     = merry.New("unsupported gain query")
	ErrNotConfigured        = merry.New("model is not configured")
	ErrUnknownModel         = merry.New("unknown model")
)

// Errorf returns an error of the given kind with a formatted message.
// merry.Is(err, kind) reports true for the result.
func Errorf(kind merry.Error, format string, args ...interface{}) error {
	return kind.Here().WithMessagef(format, args...)
}

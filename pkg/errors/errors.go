package errors

import "errors"

// Each ParseError carries exactly one of these as its Kind, so callers can
// branch with errors.Is instead of matching on message text.
var (
	ErrArity                 = errors.New("wrong number of arguments")
	ErrNameMismatch          = errors.New("command name mismatch")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrMissingRequired       = errors.New("missing required argument")
	ErrUnexpectedArgument    = errors.New("unexpected argument")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrInvalidNumericLiteral = errors.New("invalid numeric literal")

	// ErrInvalidValue matches both ErrTypeMismatch and ErrInvalidNumericLiteral.
	ErrInvalidValue = errors.New("invalid value")
)

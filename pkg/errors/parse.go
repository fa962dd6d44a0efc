package errors

import (
	"errors"
	"fmt"
)

// ParseError is returned by every failing parse or narrowing operation.
type ParseError struct {
	Kind   error  // one of the Err* sentinels
	Name   string // argument or command name, when known
	Token  string // offending token or stored value representation
	Target string // requested or declared type name
	Err    error  // underlying cause, e.g. a *strconv.NumError
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrArity:
		return "wrong number of arguments"
	case ErrNameMismatch:
		return fmt.Sprintf("Expected %s, got %s", e.Name, e.Token)
	case ErrUnsupportedType:
		return fmt.Sprintf("%s is not a supported type", e.Target)
	case ErrMissingRequired:
		return fmt.Sprintf("%s is required", e.Name)
	case ErrUnexpectedArgument:
		return fmt.Sprintf("Unexpected arg %s", e.Token)
	case ErrTypeMismatch:
		return fmt.Sprintf("Unable to cast %s into %s", e.Token, e.Target)
	case ErrInvalidNumericLiteral:
		return fmt.Sprintf("Invalid value for %s: %s is not a valid %s", e.Name, e.Token, e.Target)
	}

	if e.Kind == nil {
		return "parse error"
	}
	return e.Kind.Error()
}

func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *ParseError) Is(target error) bool {
	if target != ErrInvalidValue {
		return false
	}
	return e.Kind == ErrTypeMismatch || e.Kind == ErrInvalidNumericLiteral
}

// KindOf returns the sentinel kind of err, or nil if err is not a *ParseError.
func KindOf(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}

func Arity(name string) error {
	return &ParseError{Kind: ErrArity, Name: name}
}

func NameMismatch(expected, got string) error {
	return &ParseError{Kind: ErrNameMismatch, Name: expected, Token: got}
}

func UnsupportedType(typeName string) error {
	return &ParseError{Kind: ErrUnsupportedType, Target: typeName}
}

func MissingRequired(name string) error {
	return &ParseError{Kind: ErrMissingRequired, Name: name}
}

func UnexpectedArgument(token string) error {
	return &ParseError{Kind: ErrUnexpectedArgument, Token: token}
}

func TypeMismatch(actual, target string) error {
	return &ParseError{Kind: ErrTypeMismatch, Token: actual, Target: target}
}

func InvalidNumericLiteral(err error, name, token, typeName string) error {
	return &ParseError{Kind: ErrInvalidNumericLiteral, Name: name, Token: token, Target: typeName, Err: err}
}

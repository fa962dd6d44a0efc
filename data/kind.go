package data

import (
	"fmt"
	"strings"

	"github.com/mwantia/cmdargs/pkg/errors"
)

// Kind identifies the concrete representation held by a Value.
type Kind int

const (
	KindInvalid  Kind = iota // Zero value, holds nothing
	KindText                 // UTF-8 text, copied verbatim from the token
	KindUnsigned             // 64-bit unsigned integer
	KindSigned               // 64-bit signed integer
	KindFloat                // 64-bit floating point
	KindSequence             // Homogeneous sequence of scalar values
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindText:
		return "string"
	case KindUnsigned:
		return "u64"
	case KindSigned:
		return "i64"
	case KindFloat:
		return "f64"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsScalar reports whether k is one of the four kinds an argument may declare.
func (k Kind) IsScalar() bool {
	switch k {
	case KindText, KindUnsigned, KindSigned, KindFloat:
		return true
	}
	return false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = kind
	return nil
}

// ParseKind maps a declared type name onto its scalar kind.
// Only scalar kinds can be declared; sequences are expressed through the argument shape.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "text", "str":
		return KindText, nil
	case "u64", "uint", "uint64", "unsigned":
		return KindUnsigned, nil
	case "i64", "int", "int64", "signed", "integer":
		return KindSigned, nil
	case "f64", "float", "float64", "double":
		return KindFloat, nil
	}

	return KindInvalid, errors.UnsupportedType(name)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/mwantia/cmdargs/data"
)

// ArgKind decides how an argument is located in the token stream.
type ArgKind int

const (
	// Positional arguments are matched by position; required without a default,
	// optional with one.
	Positional ArgKind = iota
	// Named arguments are introduced by their own name token; required without a default.
	Named
)

func (k ArgKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Named:
		return "named"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseArgKind accepts "positional" and "named" (alias "keyword"); empty means positional.
func ParseArgKind(name string) (ArgKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "positional", "":
		return Positional, nil
	case "named", "keyword":
		return Named, nil
	}

	return Positional, fmt.Errorf("unknown argument kind '%s'", name)
}

// Shape decides how many tokens an argument consumes.
type Shape int

const (
	// Scalar consumes exactly one value token.
	Scalar Shape = iota
	// Sequence consumes a length token n followed by n element tokens.
	Sequence
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Arg declares a single argument of a command.
// For sequences, Type is the element kind.
type Arg struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        ArgKind     `json:"kind"`
	Type        data.Kind   `json:"type"`
	Shape       Shape       `json:"shape"`
	Default     *data.Value `json:"default,omitempty"`
}

func NewArg(name, description string, kind ArgKind, typ data.Kind, shape Shape, def *data.Value) Arg {
	arg := Arg{
		Name:        name,
		Description: description,
		Kind:        kind,
		Type:        typ,
		Shape:       shape,
	}
	if def != nil {
		arg = arg.WithDefault(*def)
	}
	return arg
}

// Required declares a positional argument without default.
func Required(name, description string, typ data.Kind) Arg {
	return NewArg(name, description, Positional, typ, Scalar, nil)
}

// Optional declares a positional argument whose type and shape follow def.
// A sequence default must hold at least one element to carry its element kind;
// use OptionalSequence for empty ones.
func Optional(name, description string, def data.Value) Arg {
	return inferFromDefault(NewArg(name, description, Positional, def.Kind(), Scalar, nil), def)
}

// Keyword declares a named argument without default.
func Keyword(name, description string, typ data.Kind) Arg {
	return NewArg(name, description, Named, typ, Scalar, nil)
}

// KeywordDefault declares a named argument whose type and shape follow def.
// Like Optional, it cannot infer the element kind of an empty sequence.
func KeywordDefault(name, description string, def data.Value) Arg {
	return inferFromDefault(NewArg(name, description, Named, def.Kind(), Scalar, nil), def)
}

// OptionalSequence declares a positional sequence of elem defaulting to def, which may be empty.
func OptionalSequence(name, description string, elem data.Kind, def data.Value) Arg {
	return NewArg(name, description, Positional, elem, Sequence, &def)
}

// KeywordSequence declares a named sequence of elem defaulting to def, which may be empty.
func KeywordSequence(name, description string, elem data.Kind, def data.Value) Arg {
	return NewArg(name, description, Named, elem, Sequence, &def)
}

// Sequence returns a copy of a with sequence shape; Type stays the element kind.
func (a Arg) Sequence() Arg {
	a.Shape = Sequence
	return a
}

// WithDefault returns a copy of a holding its own clone of def.
func (a Arg) WithDefault(def data.Value) Arg {
	clone := def.Clone()
	a.Default = &clone
	return a
}

func (a Arg) HasDefault() bool {
	return a.Default != nil
}

// Equal compares declarations by identity: default presence matters, default value does not.
func (a Arg) Equal(other Arg) bool {
	return a.Name == other.Name &&
		a.Kind == other.Kind &&
		a.Type == other.Type &&
		a.Shape == other.Shape &&
		a.HasDefault() == other.HasDefault()
}

func (a Arg) clone() Arg {
	if a.Default == nil {
		return a
	}
	return a.WithDefault(*a.Default)
}

func inferFromDefault(a Arg, def data.Value) Arg {
	if def.Kind() == data.KindSequence {
		a.Type = def.Elem()
		a.Shape = Sequence
	}
	return a.WithDefault(def)
}

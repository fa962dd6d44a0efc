package data

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mwantia/cmdargs/pkg/errors"
)

// Value holds exactly one scalar or one sequence of scalars.
// The zero Value has KindInvalid and fails every narrowing.
// Values have value semantics: copies never share sequence storage
// through the exported API.
type Value struct {
	kind     Kind
	text     string
	unsigned uint64
	signed   int64
	float    float64
	items    []Value
}

func Text(v string) Value {
	return Value{kind: KindText, text: v}
}

func Unsigned(v uint64) Value {
	return Value{kind: KindUnsigned, unsigned: v}
}

func Signed(v int64) Value {
	return Value{kind: KindSigned, signed: v}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, float: v}
}

// Sequence wraps items into a sequence value. The slice is copied.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: cloneItems(items)}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Elem returns the kind of the first element of a sequence,
// or KindInvalid for empty sequences and scalars.
func (v Value) Elem() Kind {
	if v.kind != KindSequence || len(v.items) == 0 {
		return KindInvalid
	}
	return v.items[0].kind
}

// Homogeneous reports whether every element of a sequence is a scalar of kind elem.
// Scalars are never homogeneous sequences.
func (v Value) Homogeneous(elem Kind) bool {
	if v.kind != KindSequence {
		return false
	}
	for _, item := range v.items {
		if item.kind != elem {
			return false
		}
	}
	return true
}

// Len returns the number of elements of a sequence, 0 for anything else.
func (v Value) Len() int {
	return len(v.items)
}

func (v Value) Clone() Value {
	c := v
	c.items = cloneItems(v.items)
	return c
}

func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", v.mismatch(KindText.String())
	}
	return v.text, nil
}

func (v Value) AsUnsigned() (uint64, error) {
	if v.kind != KindUnsigned {
		return 0, v.mismatch(KindUnsigned.String())
	}
	return v.unsigned, nil
}

func (v Value) AsSigned() (int64, error) {
	if v.kind != KindSigned {
		return 0, v.mismatch(KindSigned.String())
	}
	return v.signed, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat.String())
	}
	return v.float, nil
}

// AsSequence narrows to the opaque element list.
func (v Value) AsSequence() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, v.mismatch(KindSequence.String())
	}
	return cloneItems(v.items), nil
}

func (v Value) AsTextSequence() ([]string, error) {
	return narrowSequence(v, Value.AsText)
}

func (v Value) AsUnsignedSequence() ([]uint64, error) {
	return narrowSequence(v, Value.AsUnsigned)
}

func (v Value) AsSignedSequence() ([]int64, error) {
	return narrowSequence(v, Value.AsSigned)
}

func (v Value) AsFloatSequence() ([]float64, error) {
	return narrowSequence(v, Value.AsFloat)
}

// Equal compares kind and contents. Floats compare with ==, so NaN never equals itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindUnsigned:
		return v.unsigned == other.unsigned
	case KindSigned:
		return v.signed == other.signed
	case KindFloat:
		return v.float == other.float
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	}

	return true
}

// Interface returns the held data as a plain Go value:
// string, uint64, int64, float64, []any or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindUnsigned:
		return v.unsigned
	case KindSigned:
		return v.signed
	case KindFloat:
		return v.float
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	}
	return nil
}

// String renders the value for diagnostics. Text is quoted.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.text)
	case KindUnsigned:
		return strconv.FormatUint(v.unsigned, 10)
	case KindSigned:
		return strconv.FormatInt(v.signed, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<invalid>"
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v Value) mismatch(target string) error {
	return errors.TypeMismatch(v.String(), target)
}

func narrowSequence[T any](v Value, narrow func(Value) (T, error)) ([]T, error) {
	if v.kind != KindSequence {
		return nil, v.mismatch(KindSequence.String())
	}

	out := make([]T, 0, len(v.items))
	for _, item := range v.items {
		elem, err := narrow(item)
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

func cloneItems(items []Value) []Value {
	if items == nil {
		return nil
	}

	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

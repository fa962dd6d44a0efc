package data

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
)

type narrowFunc func(Value) (any, error)

func getNarrowers() map[Kind]narrowFunc {
	return map[Kind]narrowFunc{
		KindText:     func(v Value) (any, error) { return v.AsText() },
		KindUnsigned: func(v Value) (any, error) { return v.AsUnsigned() },
		KindSigned:   func(v Value) (any, error) { return v.AsSigned() },
		KindFloat:    func(v Value) (any, error) { return v.AsFloat() },
		KindSequence: func(v Value) (any, error) { return v.AsSequence() },
	}
}

// TestValue_NarrowOwnKind verifies narrowing to the stored kind reproduces the value
// and every other narrowing fails with a type mismatch.
func TestValue_NarrowOwnKind(t *testing.T) {
	values := map[Kind]Value{
		KindText:     Text("bar"),
		KindUnsigned: Unsigned(math.MaxUint64),
		KindSigned:   Signed(-42),
		KindFloat:    Float(3.0),
		KindSequence: Sequence(Unsigned(1), Unsigned(1)),
	}
	want := map[Kind]any{
		KindText:     "bar",
		KindUnsigned: uint64(math.MaxUint64),
		KindSigned:   int64(-42),
		KindFloat:    3.0,
	}

	for stored, value := range values {
		for target, narrow := range getNarrowers() {
			t.Run(stored.String()+"->"+target.String(), func(tst *testing.T) {
				got, err := narrow(value)
				if stored != target {
					if !errors.Is(err, cmderrors.ErrTypeMismatch) {
						tst.Fatalf("expected type mismatch, got %v", err)
					}
					return
				}
				if err != nil {
					tst.Fatalf("narrowing to own kind failed: %v", err)
				}
				if stored == KindSequence {
					items := got.([]Value)
					if len(items) != 2 || !items[0].Equal(Unsigned(1)) {
						tst.Fatalf("unexpected sequence %v", items)
					}
					return
				}
				if got != want[stored] {
					tst.Fatalf("got %v, want %v", got, want[stored])
				}
			})
		}
	}
}

func TestValue_MismatchMessage(t *testing.T) {
	_, err := Text("bar").AsUnsigned()
	if err == nil {
		t.Fatalf("expected error")
	}
	if got, want := err.Error(), `Unable to cast "bar" into u64`; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	var pe *cmderrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Token != `"bar"` || pe.Target != "u64" {
		t.Fatalf("unexpected diagnostics: %+v", pe)
	}
}

func TestValue_InvalidNarrowsNothing(t *testing.T) {
	var zero Value
	for target, narrow := range getNarrowers() {
		if _, err := narrow(zero); !errors.Is(err, cmderrors.ErrTypeMismatch) {
			t.Fatalf("zero value narrowed to %s: %v", target, err)
		}
	}
	if zero.String() != "<invalid>" {
		t.Fatalf("unexpected representation %q", zero.String())
	}
}

func TestValue_SequenceNarrowing(t *testing.T) {
	seq := Sequence(Signed(2), Signed(2), Signed(2))

	got, err := seq.AsSignedSequence()
	if err != nil {
		t.Fatalf("AsSignedSequence failed: %v", err)
	}
	if len(got) != 3 || got[0] != 2 || got[2] != 2 {
		t.Fatalf("unexpected result %v", got)
	}

	// container level mismatch
	if _, err := Signed(2).AsSignedSequence(); !errors.Is(err, cmderrors.ErrTypeMismatch) {
		t.Fatalf("scalar narrowed to sequence: %v", err)
	}

	// element level mismatch reports the first offending element
	mixed := Sequence(Text("a"), Unsigned(7), Signed(8))
	_, err = mixed.AsTextSequence()
	if err == nil {
		t.Fatalf("expected element mismatch")
	}
	if got, want := err.Error(), "Unable to cast 7 into string"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	floats, err := Sequence(Float(1.5), Float(-2)).AsFloatSequence()
	if err != nil || len(floats) != 2 || floats[1] != -2 {
		t.Fatalf("AsFloatSequence = %v, %v", floats, err)
	}

	uints, err := Sequence().AsUnsignedSequence()
	if err != nil || len(uints) != 0 {
		t.Fatalf("empty sequence narrowing = %v, %v", uints, err)
	}
}

func TestValue_CloneIsDeep(t *testing.T) {
	inner := []Value{Text("a"), Text("b")}
	original := Sequence(inner...)
	inner[0] = Text("changed")

	clone := original.Clone()
	items, _ := clone.AsSequence()
	items[1] = Text("mutated")

	got, err := original.AsTextSequence()
	if err != nil {
		t.Fatalf("AsTextSequence failed: %v", err)
	}
	if got[0] != "a" || got[1] != "b" {
		t.Fatalf("original was mutated through a copy: %v", got)
	}
	if !clone.Equal(original) {
		t.Fatalf("clone differs from original")
	}
}

func TestValue_Equal(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Text("x"), Text("x"), true},
		{Text("x"), Text("y"), false},
		{Unsigned(1), Signed(1), false},
		{Float(1), Float(1), true},
		{Float(math.NaN()), Float(math.NaN()), false},
		{Sequence(Unsigned(1)), Sequence(Unsigned(1)), true},
		{Sequence(Unsigned(1)), Sequence(Unsigned(1), Unsigned(2)), false},
		{Value{}, Value{}, true},
	}

	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("%v.Equal(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestValue_Homogeneous(t *testing.T) {
	if !Sequence(Unsigned(1), Unsigned(2)).Homogeneous(KindUnsigned) {
		t.Fatalf("expected homogeneous sequence")
	}
	if Sequence(Unsigned(1), Signed(2)).Homogeneous(KindUnsigned) {
		t.Fatalf("mixed sequence reported homogeneous")
	}
	if Unsigned(1).Homogeneous(KindUnsigned) {
		t.Fatalf("scalar reported as sequence")
	}
	if Sequence(Float(1)).Elem() != KindFloat || Sequence().Elem() != KindInvalid {
		t.Fatalf("unexpected element kinds")
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	payload := map[string]Value{
		"text": Text("bar"),
		"vec":  Sequence(Signed(-1), Signed(2)),
		"uint": Unsigned(1),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(encoded), `{"text":"bar","uint":1,"vec":[-1,2]}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"string": KindText,
		"Text":   KindText,
		"u64":    KindUnsigned,
		"uint":   KindUnsigned,
		"i64":    KindSigned,
		" int ":  KindSigned,
		"f64":    KindFloat,
		"double": KindFloat,
	}
	for name, want := range cases {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}

	_, err := ParseKind("bool")
	if !errors.Is(err, cmderrors.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if err.Error() != "bool is not a supported type" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKind_Text(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("i64")); err != nil || k != KindSigned {
		t.Fatalf("UnmarshalText = %v, %v", k, err)
	}
	text, _ := KindFloat.MarshalText()
	if string(text) != "f64" {
		t.Fatalf("MarshalText = %s", text)
	}
	if Kind(42).String() != "Kind(42)" || Kind(42).IsScalar() || KindSequence.IsScalar() {
		t.Fatalf("unexpected out-of-range kind behavior")
	}
}

func TestErrors_Collect(t *testing.T) {
	var errs Errors
	if errs.Errors() != nil {
		t.Fatalf("empty collector should yield nil")
	}

	errs.Add(nil)
	errs.Add(cmderrors.MissingRequired("a"))
	errs.Add(cmderrors.UnsupportedType("bool"))

	if errs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", errs.Len())
	}
	joined := errs.Errors()
	if !errors.Is(joined, cmderrors.ErrMissingRequired) || !errors.Is(joined, cmderrors.ErrUnsupportedType) {
		t.Fatalf("joined error lost a kind: %v", joined)
	}
}

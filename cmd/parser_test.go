package cmd

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mwantia/cmdargs/data"
	"github.com/mwantia/cmdargs/log"
	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
)

func newScalarCommand() *Command {
	return NewBuilder("test").
		Description("foo").
		AddArg(Required("required", "bar", data.KindText)).
		AddArg(Optional("optional", "baz", data.Text("foo"))).
		AddArg(KeywordDefault("uintarg", "an uint", data.Unsigned(1))).
		AddArg(Keyword("intarg", "an int", data.KindSigned)).
		AddArg(Keyword("floatarg", "a float", data.KindFloat)).
		Build()
}

func newSequenceCommand() *Command {
	return NewBuilder("test").
		AddArg(Required("foo", "", data.KindText)).
		AddArg(Required("vec1", "", data.KindUnsigned).Sequence()).
		AddArg(Keyword("vec2", "", data.KindSigned).Sequence()).
		AddArg(Keyword("fizz", "", data.KindText)).
		Build()
}

func tokens(line string) []string {
	return strings.Fields(line)
}

// TestParse_ScalarArguments covers required, optional-by-default and named scalars.
func TestParse_ScalarArguments(t *testing.T) {
	result, err := newScalarCommand().ParseArgs(tokens("test bar intarg 2 floatarg 3.00"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if len(result) != 5 {
		t.Fatalf("expected 5 entries, got %v", result.Names())
	}

	if v, err := result.Text("required"); err != nil || v != "bar" {
		t.Fatalf("required = %q, %v", v, err)
	}
	if v, err := result.Text("optional"); err != nil || v != "foo" {
		t.Fatalf("optional = %q, %v", v, err)
	}
	if v, err := result.Unsigned("uintarg"); err != nil || v != 1 {
		t.Fatalf("uintarg = %d, %v", v, err)
	}
	if v, err := result.Signed("intarg"); err != nil || v != 2 {
		t.Fatalf("intarg = %d, %v", v, err)
	}
	if v, err := result.Float("floatarg"); err != nil || v != 3.0 {
		t.Fatalf("floatarg = %f, %v", v, err)
	}
	if len(result) != 0 {
		t.Fatalf("typed helpers should consume entries, left %v", result.Names())
	}
}

func TestParse_MissingRequired(t *testing.T) {
	_, err := newScalarCommand().ParseArgs(tokens("test"))
	if !errors.Is(err, cmderrors.ErrMissingRequired) {
		t.Fatalf("expected missing required, got %v", err)
	}
	if err.Error() != "required is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// named arguments without default are checked in sorted order
	_, err = newScalarCommand().ParseArgs(tokens("test bar"))
	if err == nil || err.Error() != "floatarg is required" {
		t.Fatalf("expected floatarg to be reported first, got %v", err)
	}
}

func TestParse_SequenceArguments(t *testing.T) {
	result, err := newSequenceCommand().ParseArgs(tokens("test bar 2 1 1 vec2 3 2 2 2 fizz buzz"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}

	if v, err := result.Text("foo"); err != nil || v != "bar" {
		t.Fatalf("foo = %q, %v", v, err)
	}
	vec1, err := result.UnsignedSequence("vec1")
	if err != nil || len(vec1) != 2 || vec1[0] != 1 || vec1[1] != 1 {
		t.Fatalf("vec1 = %v, %v", vec1, err)
	}
	vec2, err := result.SignedSequence("vec2")
	if err != nil || len(vec2) != 3 || vec2[0] != 2 || vec2[2] != 2 {
		t.Fatalf("vec2 = %v, %v", vec2, err)
	}
	if v, err := result.Text("fizz"); err != nil || v != "buzz" {
		t.Fatalf("fizz = %q, %v", v, err)
	}
}

func TestParse_SequenceOrderAndLength(t *testing.T) {
	command := NewCommand("seq", "", Required("values", "", data.KindFloat).Sequence())

	result, err := command.ParseArgs(tokens("seq 4 1.5 -2 3e2 0"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	got, err := result.FloatSequence("values")
	if err != nil {
		t.Fatalf("FloatSequence failed: %v", err)
	}
	want := []float64{1.5, -2, 300, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	result, err = command.ParseArgs(tokens("seq 0"))
	if err != nil {
		t.Fatalf("empty sequence failed: %v", err)
	}
	if v, _ := result.Take("values"); v.Kind() != data.KindSequence || v.Len() != 0 {
		t.Fatalf("expected empty sequence, got %v", v)
	}
}

func TestParse_ArityErrors(t *testing.T) {
	cases := map[string]struct {
		command *Command
		line    string
	}{
		"sequence exhausted":      {newSequenceCommand(), "test bar 1"},
		"sequence short":          {newSequenceCommand(), "test bar 3 1 1"},
		"keyword without value":   {newSequenceCommand(), "test bar 0 fizz"},
		"keyword sequence short":  {newSequenceCommand(), "test bar 0 vec2 2 1"},
		"empty token stream":      {newScalarCommand(), ""},
		"keyword value at stream": {newScalarCommand(), "test bar intarg"},
	}

	for name, tc := range cases {
		t.Run(name, func(tst *testing.T) {
			_, err := tc.command.ParseArgs(tokens(tc.line))
			if !errors.Is(err, cmderrors.ErrArity) {
				tst.Fatalf("expected arity error, got %v", err)
			}
		})
	}
}

func TestParse_NameMismatch(t *testing.T) {
	_, err := newScalarCommand().ParseArgs(tokens("other bar"))
	if !errors.Is(err, cmderrors.ErrNameMismatch) {
		t.Fatalf("expected name mismatch, got %v", err)
	}
	if err.Error() != "Expected test, got other" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// the command name and keywords are matched case-insensitively
	result, err := newScalarCommand().ParseArgs(tokens("TEST bar IntArg 2 FLOATARG 1"))
	if err != nil {
		t.Fatalf("case-insensitive parse failed: %v", err)
	}
	if v, err := result.Signed("intarg"); err != nil || v != 2 {
		t.Fatalf("intarg = %d, %v", v, err)
	}
}

// TestParse_RequiredTakesPriority verifies a token is bound to the current required
// positional even if it spells a keyword.
func TestParse_RequiredTakesPriority(t *testing.T) {
	result, err := newSequenceCommand().ParseArgs(tokens("test fizz 0 fizz buzz vec2 0"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if v, _ := result.Text("foo"); v != "fizz" {
		t.Fatalf("foo = %q, want the keyword spelling bound positionally", v)
	}
	if v, _ := result.Text("fizz"); v != "buzz" {
		t.Fatalf("fizz = %q", v)
	}

	// with the only required slot taken by "fizz", "buzz" has nowhere to go
	command := NewCommand("test", "",
		Required("foo", "", data.KindText),
		KeywordDefault("fizz", "", data.Text("x")),
	)
	_, err = command.ParseArgs(tokens("test fizz buzz"))
	if !errors.Is(err, cmderrors.ErrUnexpectedArgument) {
		t.Fatalf("expected unexpected argument, got %v", err)
	}
	if err.Error() != "Unexpected arg buzz" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

// TestParse_KeywordClosesOptionals verifies optional positionals are no longer matched
// once any keyword appeared.
func TestParse_KeywordClosesOptionals(t *testing.T) {
	command := NewCommand("set", "",
		Required("key", "", data.KindText),
		Optional("first", "", data.Text("a")),
		Optional("second", "", data.Unsigned(2)),
		KeywordDefault("ttl", "", data.Unsigned(0)),
	)

	result, err := command.ParseArgs(tokens("set k x 5 ttl 10"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if v, _ := result.Text("first"); v != "x" {
		t.Fatalf("first = %q", v)
	}
	if v, _ := result.Unsigned("second"); v != 5 {
		t.Fatalf("second = %d", v)
	}
	if v, _ := result.Unsigned("ttl"); v != 10 {
		t.Fatalf("ttl = %d", v)
	}

	_, err = command.ParseArgs(tokens("set k ttl 10 x"))
	if !errors.Is(err, cmderrors.ErrUnexpectedArgument) {
		t.Fatalf("expected optional matching to be closed, got %v", err)
	}

	_, err = command.ParseArgs(tokens("set k x 5 extra"))
	if !errors.Is(err, cmderrors.ErrUnexpectedArgument) {
		t.Fatalf("expected unexpected argument once optionals are exhausted, got %v", err)
	}

	// repeated keywords keep the last value
	result, err = command.ParseArgs(tokens("set k ttl 1 ttl 2"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if v, _ := result.Unsigned("ttl"); v != 2 {
		t.Fatalf("ttl = %d, want last occurrence", v)
	}
}

// TestParse_DefaultsRoundTrip verifies omitted arguments resolve to their declared defaults.
func TestParse_DefaultsRoundTrip(t *testing.T) {
	defaults := map[string]data.Value{
		"text":  data.Text("foo"),
		"uint":  data.Unsigned(7),
		"int":   data.Signed(-7),
		"float": data.Float(0.25),
		"seq":   data.Sequence(data.Text("a"), data.Text("b")),
		"kwseq": data.Sequence(data.Float(1), data.Float(2)),
		"kwint": data.Signed(3),
	}
	command := NewCommand("defaults", "",
		Optional("text", "", defaults["text"]),
		Optional("uint", "", defaults["uint"]),
		Optional("int", "", defaults["int"]),
		Optional("float", "", defaults["float"]),
		Optional("seq", "", defaults["seq"]),
		KeywordDefault("kwseq", "", defaults["kwseq"]),
		KeywordDefault("kwint", "", defaults["kwint"]),
	)

	result, err := command.ParseArgs([]string{"defaults"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if len(result) != len(defaults) {
		t.Fatalf("expected %d entries, got %v", len(defaults), result.Names())
	}
	for name, want := range defaults {
		if got := result[name]; !got.Equal(want) {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}

	// results never alias schema defaults
	seq := result["seq"]
	items, _ := seq.AsSequence()
	items[0] = data.Text("mutated")
	again, _ := command.ParseArgs([]string{"defaults"})
	if !again["seq"].Equal(defaults["seq"]) {
		t.Fatalf("schema default was mutated through a result")
	}
}

func TestParse_InvalidNumericLiterals(t *testing.T) {
	command := NewCommand("num", "",
		KeywordDefault("u", "", data.Unsigned(0)),
		KeywordDefault("i", "", data.Signed(0)),
		KeywordDefault("f", "", data.Float(0)),
		KeywordDefault("v", "", data.Sequence(data.Unsigned(0))),
	)

	cases := []string{
		"num u -1",
		"num u +1",
		"num u 1.5",
		"num u abc",
		"num i 1.0",
		"num i 9223372036854775808",
		"num f abc",
		"num f NaN",
		"num f inf",
		"num f 0x1p3",
		"num v x",
		"num v 2 1 y",
	}

	for _, line := range cases {
		t.Run(line, func(tst *testing.T) {
			_, err := command.ParseArgs(tokens(line))
			if !errors.Is(err, cmderrors.ErrInvalidNumericLiteral) {
				tst.Fatalf("expected invalid numeric literal, got %v", err)
			}
			if !errors.Is(err, cmderrors.ErrInvalidValue) {
				tst.Fatalf("numeric failures must match the invalid value umbrella")
			}
			if errors.Is(err, cmderrors.ErrTypeMismatch) {
				tst.Fatalf("numeric failures must stay distinguishable from type mismatches")
			}
		})
	}

	result, err := command.ParseArgs(tokens("num u 18446744073709551615 i -12 f 1e-3"))
	if err != nil {
		t.Fatalf("valid literals rejected: %v", err)
	}
	if v, _ := result.Signed("i"); v != -12 {
		t.Fatalf("i = %d", v)
	}
	if v, _ := result.Float("f"); v != 0.001 {
		t.Fatalf("f = %f", v)
	}
}

func TestParse_UnsupportedType(t *testing.T) {
	cases := map[string]Arg{
		"sequence kind": Required("bad", "", data.KindSequence),
		"invalid kind":  Required("bad", "", data.KindInvalid),
		"unknown kind":  Required("bad", "", data.Kind(99)),
		"unknown shape": {Name: "bad", Kind: Positional, Type: data.KindText, Shape: Shape(7)},
	}

	for name, arg := range cases {
		t.Run(name, func(tst *testing.T) {
			_, err := NewCommand("test", "", arg).ParseArgs(tokens("test x"))
			if !errors.Is(err, cmderrors.ErrUnsupportedType) {
				tst.Fatalf("expected unsupported type, got %v", err)
			}
		})
	}
}

func TestParse_TypeMismatchOnExtraction(t *testing.T) {
	result, err := newScalarCommand().ParseArgs(tokens("test bar intarg 2 floatarg 1"))
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}

	if _, err := result.Unsigned("required"); !errors.Is(err, cmderrors.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if _, err := result.Text("undeclared"); !errors.Is(err, cmderrors.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch for absent entry, got %v", err)
	}
}

type fixedNumbers struct {
	StrconvNumbers
}

func (fixedNumbers) ParseUnsignedInteger(text string) (uint64, error) {
	if text == "many" {
		return 3, nil
	}
	return StrconvNumbers{}.ParseUnsignedInteger(text)
}

func TestParser_Options(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriterLogger("cmdargs", log.Debug, &buf)

	parser, err := NewParser(newSequenceCommand(), WithNumberParser(fixedNumbers{}), WithLogger(logger))
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	if parser.Command().Name() != "test" {
		t.Fatalf("unexpected command %q", parser.Command().Name())
	}

	result, err := parser.Parse(tokens("test bar many 1 2 3 vec2 0 fizz buzz"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := result.UnsignedSequence("vec1"); len(v) != 3 {
		t.Fatalf("vec1 = %v, want length from the custom number parser", v)
	}
	if !strings.Contains(buf.String(), "[cmdargs/test] resolved positional argument 'foo' = \"bar\"") {
		t.Fatalf("missing trace output: %q", buf.String())
	}

	if _, err := parser.Parse(tokens("test")); !errors.Is(err, cmderrors.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	if !strings.Contains(buf.String(), "rejected 1 tokens (missing required argument): foo is required") {
		t.Fatalf("missing rejection trace: %q", buf.String())
	}

	if _, err := NewParser(newSequenceCommand(), WithNumberParser(nil)); err == nil {
		t.Fatalf("expected error for nil number parser")
	}
	if _, err := NewParser(nil); err == nil {
		t.Fatalf("expected error for nil command")
	}
}

// TestParser_Concurrent verifies one schema can serve concurrent parses.
func TestParser_Concurrent(t *testing.T) {
	parser, err := NewParser(newSequenceCommand())
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := parser.Parse(tokens("test bar 2 1 1 vec2 3 2 2 2 fizz buzz"))
			if err != nil {
				errs <- err
				return
			}
			if len(result) != 4 {
				errs <- errors.New("incomplete result")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent parse failed: %v", err)
	}
}

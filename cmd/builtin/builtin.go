package builtin

import (
	"github.com/mwantia/cmdargs/catalog"
	"github.com/mwantia/cmdargs/cmd"
	"github.com/mwantia/cmdargs/data"
)

// TestCommand declares one argument of every scalar flavor.
func TestCommand() *cmd.Command {
	return cmd.NewBuilder("test").
		Description("one argument of every scalar flavor").
		AddArg(cmd.Required("required", "a required string", data.KindText)).
		AddArg(cmd.Optional("optional", "an optional string", data.Text("foo"))).
		AddArg(cmd.KeywordDefault("uintarg", "an uint", data.Unsigned(1))).
		AddArg(cmd.Keyword("intarg", "an int", data.KindSigned)).
		AddArg(cmd.Keyword("floatarg", "a float", data.KindFloat)).
		Build()
}

// VectorsCommand declares counted sequences, positional and named.
func VectorsCommand() *cmd.Command {
	return cmd.NewBuilder("vectors").
		Description("counted sequences").
		AddArg(cmd.Required("foo", "", data.KindText)).
		AddArg(cmd.Required("vec1", "unsigned values", data.KindUnsigned).Sequence()).
		AddArg(cmd.Keyword("vec2", "signed values", data.KindSigned).Sequence()).
		AddArg(cmd.Keyword("fizz", "", data.KindText)).
		Build()
}

// SetCommand looks like a key-value store write with expiry and tags.
func SetCommand() *cmd.Command {
	return cmd.NewBuilder("set").
		Description("store a value under a key").
		AddArg(cmd.Required("key", "", data.KindText)).
		AddArg(cmd.Optional("value", "", data.Text(""))).
		AddArg(cmd.KeywordDefault("ex", "expiry in seconds, 0 keeps the key", data.Unsigned(0))).
		AddArg(cmd.KeywordSequence("tags", "", data.KindText, data.Sequence())).
		Build()
}

func Commands() []*cmd.Command {
	return []*cmd.Command{
		TestCommand(),
		VectorsCommand(),
		SetCommand(),
	}
}

// Catalog returns the built-in demo commands.
func Catalog() (*catalog.Catalog, error) {
	return catalog.New(Commands()...)
}

package cmd

import (
	"slices"
	"strings"

	"github.com/tidwall/btree"
)

// Command is an immutable argument schema. It is created through a Builder
// and can be shared by any number of concurrent parses.
type Command struct {
	name        string
	description string
	required    []Arg
	optional    []Arg
	keywords    *btree.Map[string, Arg] // keyed by lower-cased name
}

// Builder collects declarations before freezing them into a Command.
type Builder struct {
	name        string
	description string
	required    []Arg
	optional    []Arg
	keywords    *btree.Map[string, Arg]
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		keywords: btree.NewMap[string, Arg](0),
	}
}

// NewCommand builds a command from args in one call.
func NewCommand(name, description string, args ...Arg) *Command {
	b := NewBuilder(name).Description(description)
	for _, arg := range args {
		b.AddArg(arg)
	}
	return b.Build()
}

func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

// AddArg classifies arg: positional without default is required, positional
// with default is optional, named goes into the keyword table. A named argument
// replaces an earlier one with the same case-insensitive name.
func (b *Builder) AddArg(arg Arg) *Builder {
	switch {
	case arg.Kind == Named:
		b.keywords.Set(strings.ToLower(arg.Name), arg)
	case arg.HasDefault():
		b.optional = append(b.optional, arg)
	default:
		b.required = append(b.required, arg)
	}
	return b
}

// Build returns a frozen copy. The builder stays usable and later
// changes to it do not affect already built commands.
func (b *Builder) Build() *Command {
	keywords := btree.NewMap[string, Arg](0)
	b.keywords.Scan(func(key string, arg Arg) bool {
		keywords.Set(key, arg.clone())
		return true
	})

	return &Command{
		name:        b.name,
		description: b.description,
		required:    cloneArgs(b.required),
		optional:    cloneArgs(b.optional),
		keywords:    keywords,
	}
}

func (c *Command) Name() string {
	return c.name
}

func (c *Command) Description() string {
	return c.description
}

// Required returns the required positionals in parse order.
func (c *Command) Required() []Arg {
	return cloneArgs(c.required)
}

// Optional returns the optional positionals in parse order.
func (c *Command) Optional() []Arg {
	return cloneArgs(c.optional)
}

// Keywords returns the named arguments sorted by lower-cased name.
func (c *Command) Keywords() []Arg {
	args := make([]Arg, 0, c.keywords.Len())
	c.keywords.Scan(func(_ string, arg Arg) bool {
		args = append(args, arg.clone())
		return true
	})
	return args
}

// Keyword looks up a named argument case-insensitively.
func (c *Command) Keyword(name string) (Arg, bool) {
	arg, ok := c.keywords.Get(strings.ToLower(name))
	return arg.clone(), ok
}

// Args returns required, optional and named declarations in that order.
func (c *Command) Args() []Arg {
	args := make([]Arg, 0, c.Len())
	args = append(args, c.Required()...)
	args = append(args, c.Optional()...)
	return append(args, c.Keywords()...)
}

// Len returns the number of declared arguments, i.e. the size of every successful result.
func (c *Command) Len() int {
	return len(c.required) + len(c.optional) + c.keywords.Len()
}

// Equal compares schemas by declaration identity, not by default values.
func (c *Command) Equal(other *Command) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.name != other.name || c.keywords.Len() != other.keywords.Len() {
		return false
	}
	if !slices.EqualFunc(c.required, other.required, Arg.Equal) ||
		!slices.EqualFunc(c.optional, other.optional, Arg.Equal) {
		return false
	}

	equal := true
	c.keywords.Scan(func(key string, arg Arg) bool {
		o, ok := other.keywords.Get(key)
		equal = ok && arg.Equal(o)
		return equal
	})
	return equal
}

// Defaults are copied so callers holding an Arg can never reach schema state.
func cloneArgs(args []Arg) []Arg {
	if args == nil {
		return nil
	}

	out := make([]Arg, len(args))
	for i, arg := range args {
		out[i] = arg.clone()
	}
	return out
}

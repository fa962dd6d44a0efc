package tui

import (
	"github.com/mwantia/cmdargs/cmd"
)

// Entry is one argument row of the selected command.
type Entry struct {
	Arg cmd.Arg
}

func entriesOf(command *cmd.Command) []*Entry {
	args := command.Args()
	entries := make([]*Entry, 0, len(args))
	for _, arg := range args {
		entries = append(entries, &Entry{Arg: arg})
	}
	return entries
}

// DisplayGroup names the slot the argument is matched by.
func (e *Entry) DisplayGroup() string {
	switch {
	case e.Arg.Kind == cmd.Named:
		return "keyword"
	case e.Arg.HasDefault():
		return "optional"
	default:
		return "required"
	}
}

// DisplayType returns the declared type, with [] for sequences.
func (e *Entry) DisplayType() string {
	if e.Arg.Shape == cmd.Sequence {
		return e.Arg.Type.String() + "[]"
	}
	return e.Arg.Type.String()
}

func (e *Entry) DisplayDefault() string {
	if !e.Arg.HasDefault() {
		return ""
	}
	return "= " + e.Arg.Default.String()
}

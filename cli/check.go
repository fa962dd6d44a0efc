package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwantia/cmdargs/cmd"
)

type commandListing struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Required    []cmd.Arg `json:"required"`
	Optional    []cmd.Arg `json:"optional"`
	Keywords    []cmd.Arg `json:"keywords"`
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [schema-file]",
		Short: "Validate a schema file and list its commands",
		Long:  "Validate a schema file and list its commands. Without a file the built-in commands are listed.",
		Example: "  cmdargs check commands.yaml\n" +
			"  cmdargs check --json commands.toml",
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			catalog, _, err := a.loadCatalog(c.Context(), firstArg(args))
			if err != nil {
				return err
			}

			commands := catalog.List()
			if a.json() {
				return writeListingJSON(c.OutOrStdout(), commands)
			}

			writeListing(c.OutOrStdout(), commands)
			return nil
		},
	}
}

func writeListingJSON(w io.Writer, commands []*cmd.Command) error {
	listing := make([]commandListing, 0, len(commands))
	for _, command := range commands {
		listing = append(listing, commandListing{
			Name:        command.Name(),
			Description: command.Description(),
			Required:    nonNil(command.Required()),
			Optional:    nonNil(command.Optional()),
			Keywords:    nonNil(command.Keywords()),
		})
	}

	return writeJSON(w, listing)
}

func writeListing(w io.Writer, commands []*cmd.Command) {
	title := color.New(color.FgCyan, color.Bold)
	group := color.New(color.FgYellow)
	ok := color.New(color.FgGreen)

	for _, command := range commands {
		title.Fprint(w, command.Name())
		if command.Description() != "" {
			fmt.Fprintf(w, " - %s", command.Description())
		}
		fmt.Fprintln(w)

		for _, arg := range command.Args() {
			label := "required"
			switch {
			case arg.Kind == cmd.Named:
				label = "keyword"
			case arg.HasDefault():
				label = "optional"
			}

			fmt.Fprintf(w, "  %s %-12s %-6s", group.Sprintf("%-8s", label), arg.Name, typeLabel(arg))
			if arg.HasDefault() {
				fmt.Fprintf(w, " default=%s", arg.Default)
			}
			if arg.Description != "" {
				fmt.Fprintf(w, "  # %s", arg.Description)
			}
			fmt.Fprintln(w)
		}
	}

	ok.Fprintf(w, "ok: %d commands\n", len(commands))
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func typeLabel(arg cmd.Arg) string {
	if arg.Shape == cmd.Sequence {
		return arg.Type.String() + "[]"
	}
	return arg.Type.String()
}

func nonNil(args []cmd.Arg) []cmd.Arg {
	if args == nil {
		return []cmd.Arg{}
	}
	return args
}

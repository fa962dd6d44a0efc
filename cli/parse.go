package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/mwantia/cmdargs/cmd"
)

func newParseCommand(a *app) *cobra.Command {
	var line string

	c := &cobra.Command{
		Use:   "parse <schema-file> [--line <text> | -- <tokens>...]",
		Short: "Resolve a token line against the command it names",
		Example: "  cmdargs parse commands.yaml --line 'test bar intarg 2 floatarg 3.00'\n" +
			"  cmdargs parse commands.yaml -- test bar intarg 2 floatarg 3.00",
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			tokens, err := tokensFrom(line, args[1:])
			if err != nil {
				return err
			}

			catalog, logger, err := a.loadCatalog(c.Context(), args[0])
			if err != nil {
				return err
			}

			parser, err := catalog.Parser(tokens)
			if err != nil {
				return err
			}

			result, err := parser.Parse(tokens)
			if err != nil {
				logger.Debug("parse of %q failed: %v", tokens, err)
				return err
			}

			if a.json() {
				return json.NewEncoder(c.OutOrStdout()).Encode(result)
			}
			writeResult(c.OutOrStdout(), result)
			return nil
		},
	}

	c.Flags().StringVarP(&line, "line", "l", "", "Command line to tokenize with shell quoting rules")
	return c
}

// tokensFrom prefers the quoted line and refuses to mix it with raw tokens.
func tokensFrom(line string, raw []string) ([]string, error) {
	if line == "" {
		if len(raw) == 0 {
			return nil, fmt.Errorf("no tokens given, use --line or pass tokens after --")
		}
		return raw, nil
	}
	if len(raw) > 0 {
		return nil, fmt.Errorf("--line cannot be combined with raw tokens")
	}

	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize line: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("line contains no tokens")
	}
	return tokens, nil
}

func writeResult(w io.Writer, result cmd.Result) {
	for _, name := range result.Names() {
		fmt.Fprintf(w, "%s = %s\n", name, result[name])
	}
}

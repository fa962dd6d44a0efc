package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwantia/cmdargs/catalog"
	"github.com/mwantia/cmdargs/store"
)

func newStoreCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "store",
		Short: "Manage schema documents kept in a store",
		Long: `Manage schema documents kept in the store given by --store or CMDARGS_STORE.
Other commands read a document from that store when their schema argument is a key.`,
		Example: "  cmdargs store --store sqlite://schemas.db push commands.yaml team/commands.yaml\n" +
			"  cmdargs check --store sqlite://schemas.db team/commands.yaml",
	}

	c.AddCommand(
		newStorePushCommand(a),
		newStoreGetCommand(a),
		newStoreListCommand(a),
		newStoreDeleteCommand(a),
	)
	return c
}

func newStorePushCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <schema-file> [key]",
		Short: "Validate a schema file and store it under key",
		Long:  "Validate a schema file and store it under key. The key defaults to the file name and must keep a schema extension.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			path := args[0]
			key := filepath.Base(path)
			if len(args) > 1 {
				key = args[1]
			}

			format, err := catalog.FormatFromPath(path)
			if err != nil {
				return err
			}
			if keyFormat, err := catalog.FormatFromPath(key); err != nil {
				return fmt.Errorf("key '%s': %w", key, err)
			} else if keyFormat != format {
				return fmt.Errorf("key '%s' must keep the %s extension of '%s'", key, format, path)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read schema file %s: %w", path, err)
			}

			logger, err := a.logger()
			if err != nil {
				return err
			}
			if _, err := catalog.Parse(content, format, catalog.WithLogger(logger)); err != nil {
				return fmt.Errorf("refusing to store invalid schema file %s: %w", path, err)
			}

			s, err := a.openStore(c.Context(), logger)
			if err != nil {
				return err
			}
			defer s.Close(c.Context())

			doc, err := s.Put(c.Context(), key, content)
			if err != nil {
				return err
			}

			if a.json() {
				return writeJSON(c.OutOrStdout(), doc)
			}
			fmt.Fprintf(c.OutOrStdout(), "%s %s (revision %s)\n", color.GreenString("stored"), doc.Key, doc.Revision)
			return nil
		},
	}
}

func newStoreGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}

			s, err := a.openStore(c.Context(), logger)
			if err != nil {
				return err
			}
			defer s.Close(c.Context())

			doc, err := s.Get(c.Context(), args[0])
			if err != nil {
				return err
			}

			if a.json() {
				return writeJSON(c.OutOrStdout(), struct {
					*store.Document
					Content string `json:"content"`
				}{doc, string(doc.Content)})
			}
			_, err = c.OutOrStdout().Write(doc.Content)
			return err
		},
	}
}

func newStoreListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schema document keys",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}

			s, err := a.openStore(c.Context(), logger)
			if err != nil {
				return err
			}
			defer s.Close(c.Context())

			keys, err := s.List(c.Context())
			if err != nil {
				return err
			}

			if a.json() {
				return writeJSON(c.OutOrStdout(), keys)
			}
			for _, key := range keys {
				fmt.Fprintln(c.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func newStoreDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored schema document",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}

			s, err := a.openStore(c.Context(), logger)
			if err != nil {
				return err
			}
			defer s.Close(c.Context())

			if err := s.Delete(c.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "%s %s\n", color.YellowString("deleted"), args[0])
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

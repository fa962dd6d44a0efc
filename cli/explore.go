package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwantia/cmdargs/cli/tui"
)

func newExploreCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [schema-file]",
		Short: "Browse a schema file and try token lines interactively",
		Long:  "Browse a schema file and try token lines interactively. Without a file the built-in commands are used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			catalog, logger, err := a.loadCatalog(c.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if catalog.Len() == 0 {
				return fmt.Errorf("schema file '%s' declares no commands", firstArg(args))
			}

			model := tui.NewModel(catalog, logger.Named("explore"))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(c.InOrStdin()), tea.WithOutput(c.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}
}

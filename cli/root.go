package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwantia/cmdargs/catalog"
	"github.com/mwantia/cmdargs/cmd/builtin"
	"github.com/mwantia/cmdargs/log"
	"github.com/mwantia/cmdargs/store"
	"github.com/mwantia/cmdargs/store/address"
)

var version = "0.1.0"

// app carries the configuration shared by all subcommands.
// Flags are bound to viper so every one of them can also be set as CMDARGS_<FLAG>.
type app struct {
	viper *viper.Viper
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CMDARGS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	a := &app{viper: v}

	root := &cobra.Command{
		Use:   "cmdargs",
		Short: "Inspect and try declarative command argument schemas",
		Long: `cmdargs loads command schemas from YAML or TOML files, validates them
and resolves token lines against them exactly as the library does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.viper.GetBool("no-color") {
				color.NoColor = true
			}
			_, err := log.Parse(a.viper.GetString("log-level"))
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "warn", "Set log level (debug|info|warn|error)")
	flags.String("log-file", "", "Additionally write logs to a rotating file")
	flags.Bool("json", false, "Print machine readable JSON output")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("store", "", "Read schema documents from a store (memory://, file://, sqlite://, postgres://, consul://, s3://)")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}

	root.AddCommand(
		newCheckCommand(a),
		newParseCommand(a),
		newExploreCommand(a),
		newStoreCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) json() bool {
	return a.viper.GetBool("json")
}

func (a *app) logger() (*log.Logger, error) {
	level, err := log.Parse(a.viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}

	return log.NewLogger("cmdargs", level, a.viper.GetString("log-file"), false), nil
}

// loadCatalog falls back to the built-in demo commands when no path is given.
// With a store configured the path is a document key instead of a file.
func (a *app) loadCatalog(ctx context.Context, path string) (*catalog.Catalog, *log.Logger, error) {
	logger, err := a.logger()
	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		logger.Debug("no schema file given, using built-in commands")
		c, err := builtin.Catalog()
		return c, logger, err
	}

	if a.viper.GetString("store") != "" {
		s, err := a.openStore(ctx, logger)
		if err != nil {
			return nil, nil, err
		}
		defer s.Close(ctx)

		c, err := catalog.Fetch(ctx, s, path, catalog.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return c, logger, nil
	}

	c, err := catalog.Load(path, catalog.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}

// openStore parses and opens the configured store. Callers must close it.
func (a *app) openStore(ctx context.Context, logger *log.Logger) (store.Store, error) {
	addr := a.viper.GetString("store")
	if addr == "" {
		return nil, fmt.Errorf("no store address given, use --store or CMDARGS_STORE")
	}

	s, err := address.Parse(addr)
	if err != nil {
		return nil, err
	}

	if err := s.Open(ctx); err != nil {
		s.Close(ctx)
		return nil, fmt.Errorf("failed to open %s store: %w", s.Name(), err)
	}

	logger.Debug("opened %s store", s.Name())
	return s, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cmdargs v%s\n", version)
		},
	}
}

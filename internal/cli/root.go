// Package cli is the cobra command tree: the HTTP server plus one-shot catalog commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maxviazov/product-catalog-service/internal/app"
	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/logger"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

// env is what PersistentPreRunE resolves once for every subcommand.
type env struct {
	configPath string
	output     string

	cfg    *config.Config
	logger zerolog.Logger

	// openApp is swapped in tests.
	openApp func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app.App, error)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd builds the catalog command tree.
func NewRootCmd(version string) *cobra.Command {
	e := &env{openApp: app.New}

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalog service",
		Long:          "Serve the product catalog over HTTP, or query, seed and migrate the configured store.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "path to a YAML config file (APP_* env vars override it)")
	cmd.PersistentFlags().StringVarP(&e.output, "output", "o", "", "output format: table, json or yaml (default table on a terminal, json otherwise)")

	cmd.AddCommand(newServeCmd(e), newProductsCmd(e), newCategoriesCmd(e), newCountriesCmd(e), newSeedCmd(e), newMigrateCmd(e))
	return cmd
}

// defaultConfigFile is picked up from the working directory when --config is not given.
const defaultConfigFile = "config.yaml"

func (e *env) setup(cmd *cobra.Command) error {
	path := e.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	// stdout belongs to command output; only the server logs to the configured target.
	var w io.Writer
	if cmd.Name() != "serve" {
		w = cmd.ErrOrStderr()
	}
	l, err := logger.NewWithWriter(&cfg.Logger, w)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	e.cfg, e.logger = cfg, l

	e.output = strings.ToLower(strings.TrimSpace(e.output))
	if e.output == "" {
		e.output = formatJSON
		if isTerminal(os.Stdout) {
			e.output = formatTable
		}
	}
	switch e.output {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", e.output)
	}
}

// describe flattens validation details into the error cobra prints.
func describe(err error) error {
	fe := service.FieldErrors(err)
	if len(fe) == 0 {
		return err
	}
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Errorf("%w: %s", err, strings.Join(parts, "; "))
}

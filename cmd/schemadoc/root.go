package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/schemadoc/internal/config"
	"github.com/phrazzld/schemadoc/internal/platform/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "schemadoc",
		Short: "Document PostgreSQL schemas with a language model",
		Long: `schemadoc connects to a PostgreSQL database, reads its tables and columns,
and asks Gemini for a friendly name and human-readable documentation.

Progress is tracked in Redis and every result is stored in the application
database. Configuration comes from SCHEMADOC_* environment variables and an
optional config.yaml.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a YAML config file (default ./config.yaml if present)")

	cmd.AddCommand(
		newDocumentCmd(opts),
		newServeCmd(opts),
		newMigrateCmd(opts),
		newProgressCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// load reads configuration and builds a logger writing to w.
func (o *rootOptions) load(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(w, cfg.Server.LogLevel), nil
}

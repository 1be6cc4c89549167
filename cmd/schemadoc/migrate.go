package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/schemadoc/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate {up|down|status|version}",
		Short:     "Run database migrations for the summary store",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load(os.Stderr)
			if err != nil {
				return err
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to open application database: %w", err)
			}
			defer func() {
				if cerr := db.Close(); cerr != nil {
					log.Warn("failed to close database", "error", cerr)
				}
			}()

			return postgres.Migrate(cmd.Context(), db, args[0], log)
		},
	}
}

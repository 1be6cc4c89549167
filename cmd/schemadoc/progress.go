package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/schemadoc/internal/api"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/spf13/cobra"
)

func newProgressCmd(root *rootOptions) *cobra.Command {
	var connectionID string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print the table counters of the latest job for a connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(os.Stderr)
			if err != nil {
				return err
			}

			app, err := newTrackerApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.close()

			return runProgress(cmd.Context(), app.tracker, connectionID, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection-id", "", "connection to report on")
	_ = cmd.MarkFlagRequired("connection-id")

	return cmd
}

func runProgress(ctx context.Context, tracker api.ProgressReader, connectionID string, out io.Writer) error {
	p, err := tracker.Get(ctx, connectionID)
	if errors.Is(err, progress.ErrNoProgress) {
		return fmt.Errorf("connection %q: %w", connectionID, err)
	}
	if err != nil {
		return err
	}

	state := "running"
	if p.Done() {
		state = "done"
	}
	_, err = fmt.Fprintf(out, "%s: %d/%d tables processed (%s)\n", connectionID, p.Processed, p.Total, state)
	return err
}

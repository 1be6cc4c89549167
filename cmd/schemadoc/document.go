package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/spf13/cobra"
)

// errNoResult is returned when the documenter produced nothing.
var errNoResult = errors.New("no documentation was produced, see the log for the failing step")

type documentOptions struct {
	connectionID string
	uri          string
	name         string
	asJSON       bool
}

func newDocumentCmd(root *rootOptions) *cobra.Command {
	opts := &documentOptions{}

	cmd := &cobra.Command{
		Use:   "document",
		Short: "Document one database and store the summary",
		Example: `  schemadoc document --connection-id sales \
    --uri postgresql://reader:secret@db:5432/sales --name "Sales"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(os.Stderr)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.close()

			return runDocument(cmd.Context(), app.documenter, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.connectionID, "connection-id", "", "identifier that keys progress and summaries")
	cmd.Flags().StringVar(&opts.uri, "uri", "", "PostgreSQL URI of the database to document")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name used when the model returns none")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("connection-id")
	_ = cmd.MarkFlagRequired("uri")

	return cmd
}

// runDocument runs one job and writes the result to out. A panicking job
// is reported as errNoResult so the process still exits non-zero.
func runDocument(ctx context.Context, doc documenter.Documenter, opts *documentOptions, out io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: job panicked: %v", errNoResult, r)
		}
	}()

	res := doc.GenerateDocumentation(ctx, documenter.Request{
		ConnectionID:   opts.connectionID,
		ConnectionURI:  opts.uri,
		ConnectionName: opts.name,
	})
	if res == nil {
		return errNoResult
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	_, err = fmt.Fprintf(out, "Friendly name: %s\nSummary ID: %s\nTables: %d\n\n%s\n",
		res.FriendlyName, res.SummaryID, res.TableCount, res.Documentation)
	return err
}

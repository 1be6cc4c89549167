package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.load(os.Stderr)
			if err != nil {
				return err
			}

			svc, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth.jwt_secret is not usable: %w", err)
			}
			return runToken(cmd.Context(), svc, subject, ttl, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject (sub claim) of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.token_lifetime)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runToken(ctx context.Context, svc auth.JWTService, subject string, ttl time.Duration, out io.Writer) error {
	token, err := svc.GenerateToken(ctx, subject, ttl)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

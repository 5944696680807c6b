package main

import (
	"fmt"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Access token commands",
	}

	var ttl time.Duration
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token for --user and --role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl <= 0 {
				ttl = opts.cfg.JWT.TTL
			}
			token, err := middleware.IssueToken(opts.cfg.JWT.SecretKey, opts.cfg.JWT.Issuer, opts.userID, opts.role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL)")

	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}

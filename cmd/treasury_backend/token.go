package main

import (
	"errors"
	"fmt"

	"github.com/SscSPs/family_treasury/internal/platform/config"
	"github.com/SscSPs/family_treasury/internal/utils"
	"github.com/spf13/cobra"
)

// newTokenCmd issues a bearer token for local testing. Production tokens come from the
// identity provider.
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <member-id>",
		Short: "Print a development bearer token for a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.IsProduction {
				return errors.New("development tokens are disabled in production")
			}

			ttl, err := cmd.Flags().GetDuration("ttl")
			if err != nil {
				return fmt.Errorf("failed to get ttl flag: %w", err)
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}

			token, err := utils.GenerateJWT(args[0], cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Family Treasury API
// @version 1.0
// @description Shared family pools, claims and vote-gated payouts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command. Running it without a subcommand serves the API.
func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	rootCmd := &cobra.Command{
		Use:           "treasury",
		Short:         "Family treasury backend",
		Long:          "Runs the family treasury API, applies database migrations and issues development tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.AddCommand(serve, newMigrateCmd(), newTokenCmd())
	return rootCmd
}

// Catalogctl edits catalog products on a store admin server.
//
// It provides an interactive product form, a confirmed delete, read-only
// listing commands, and mDNS discovery of admin servers on the local
// network. The tool is a client only; products are stored by the admin API.
//
// Usage:
//
//	catalogctl [command] [flags]
//
// See 'catalogctl --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muurk/catalogctl/internal/logging"
	"github.com/muurk/catalogctl/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Catalog Product Editor",
	Long: `A terminal client for editing products of a store admin API.

Opens an interactive form for creating or editing a product, deletes
products after confirmation, lists products, and discovers admin servers
advertising themselves over mDNS.

Set CATALOGCTL_LOG_LEVEL=debug (and optionally CATALOGCTL_LOG_FILE) to log
API traffic.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: `  # Create a product in store_1
  catalogctl create --store store_1

  # Edit an existing product
  catalogctl edit prod_42 --store store_1 --api http://admin.local:3000

  # Find admin servers on the network
  catalogctl scan`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitializeFromEnv(); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "catalogctl %s\n", version.Full())
	},
}

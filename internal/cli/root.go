package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sentinelctl",
		Short: "CLI tool for the sentinel game-session API",
		Long: `sentinelctl is a CLI tool for interacting with the sentinel session-integrity API.

It supports connecting players, streaming telemetry sync packets, crediting
balances through the internal vault endpoint, and checking server health.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Secret)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SENTINEL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Secret, "secret", cfg.Secret, "Internal shared secret (env: SENTINEL_INTERNAL_SECRET)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newDisconnectCmd())
	rootCmd.AddCommand(newCreditCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

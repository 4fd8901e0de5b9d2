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
		Use:   "wordparty",
		Short: "CLI tool for the word party API",
		Long: `wordparty is a CLI tool for interacting with the word party JSON API.

It supports joining parties, starting and restarting rounds, submitting
guesses, reporting finishes, and real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load connection ID from file if not provided via flag/env
			if err := cfg.LoadConnection(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.ConnectionID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: WORDPARTY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnectionID, "connection", cfg.ConnectionID, "Connection ID (env: WORDPARTY_CONNECTION)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnectionFile, "connection-file", cfg.ConnectionFile, "Connection ID file path (env: WORDPARTY_CONNECTION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newFinishCmd())
	rootCmd.AddCommand(newLeaveCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

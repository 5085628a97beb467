package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"privacypal/internal/config"
	"privacypal/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// newRootCmd builds the command tree. Flags bind to package variables and are
// reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "privacypal",
		Short: "PrivacyPal - leak triage and coaching for chat feeds",
		Long: `PrivacyPal scans chat messages for leaked credentials and card numbers.

A fast pattern scanner flags candidates, an LLM sentinel decides whether each
one is a real secret or test data, and a coach drafts a friendly private
message for every confirmed leak. Drafts are printed, never sent.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err = logging.Init(logging.Options{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				Verbose: verbose,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logging.SetRoot(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "privacypal.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newTriageCmd())
	rootCmd.AddCommand(newModelsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

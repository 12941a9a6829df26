package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brownbull-back/pkg/config"
	"github.com/brownbull-back/pkg/logger"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brownbull",
	Short: "Brown Bull website backend",
	Long: `Backend for the Brown Bull brochure site.

It serves two things:
• Commodity market data (gold intraday history plus oil, silver and wheat
  quotes) from Alpha Vantage, with fixed and generated fallbacks
• A contact and complaints relay that forwards form submissions by email`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setup loads .env, configuration and the logger shared by every command
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	envFile, err := config.LoadDotEnv()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: .env file not loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if envFile != "" {
		log.WithField("file", envFile).Debug("Loaded environment file")
	}

	return cfg, log, nil
}

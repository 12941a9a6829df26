package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brownbull-back/internal/app"
)

var (
	serverPort int
	serverHost string
	logLevel   string
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP API",
	Long: `Start the HTTP API.

Routes:
• GET  /api/market-data   commodity snapshot, always 200
• POST /api/contact       contact form relay
• POST /api/complaints    complaints form relay
• GET  /api/health        liveness and integration status

Flags override the matching SERVER_* and LOG_* environment variables.

Examples:
  brownbull server                    # Start with settings from the environment
  brownbull server --port 9090        # Start on custom port
  brownbull server --host 127.0.0.1   # Bind to loopback only
  brownbull server --log-level debug  # Enable debug logging`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")
	serverCmd.Flags().StringVarP(&serverHost, "host", "H", "0.0.0.0", "Server host")
	serverCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	// Only explicit flags win over the environment
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info("Starting Brown Bull backend")

	application := app.New(cfg, log)

	if err := application.Initialize(); err != nil {
		log.WithError(err).Error("Failed to initialize application")
		return err
	}

	errCh := application.Start()

	// Wait for interrupt signal or a fatal server error
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(interrupt)

	select {
	case sig := <-interrupt:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errCh:
		_ = application.Stop()
		return err
	}

	if err := application.Stop(); err != nil {
		log.WithError(err).Error("Application shutdown error")
		return err
	}

	log.Info("Application shutdown complete")
	return nil
}

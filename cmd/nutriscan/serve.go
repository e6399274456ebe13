package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the NutriScan server",
	Long: `Start the NutriScan HTTP server.

The server provides:
  - /health            - Basic server health check
  - /ready             - Readiness check (includes the reasoning provider)
  - /api/analyze       - Label scan (multipart field "image")
  - /api/alternatives  - Healthier alternatives ({"query": "..."})
  - /swagger           - API documentation

Edits to the config file are picked up without a restart. An edit that
does not validate is logged and ignored.

Examples:
  nutriscan serve                    # Start on the configured port (default 8080)
  nutriscan serve --port 3000        # Start on custom port
  nutriscan serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := logging.New("server")

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if errors.Is(err, providers.ErrMissingAPIKey) {
			return lockedError(cfg)
		}
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: server.port)")

	rootCmd.AddCommand(serveCmd)
}

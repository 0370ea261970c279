package main

import (
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the Minbar HTTP API server.

Examples:
  minbar serve                    # Start on the configured address
  minbar serve --port 3000        # Start on custom port
  minbar serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, logger, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer a.Close()

		if serveHost != "" {
			a.Config.Host = serveHost
		}
		if servePort != "" {
			a.Config.Port = servePort
		}

		// Start server (blocks until shutdown)
		return a.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from HOST)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from PORT)")
	rootCmd.AddCommand(serveCmd)
}

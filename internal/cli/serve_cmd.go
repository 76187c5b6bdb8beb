package cli

import (
	"net"
	"os"
	"strconv"

	"github.com/rcalloway/timebill/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	defaultHost, defaultPort := listenDefaults()

	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.New(app.Logger, app.Employees, app.Jobs, app.Timesheets, app.Invoices).
				WithHost(host).
				WithPort(port)
			return server.Serve()
		},
	}

	cmd.Flags().StringVar(&host, "host", defaultHost, "Host to listen on")
	cmd.Flags().IntVar(&port, "port", defaultPort, "Port to listen on")

	return cmd
}

// listenDefaults reads TIMEBILL_ADDR ("host:port") for the serve flag
// defaults, falling back to localhost:8080.
func listenDefaults() (string, int) {
	host, port := "localhost", 8080

	addr := os.Getenv("TIMEBILL_ADDR")
	if addr == "" {
		return host, port
	}
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return host, port
	}
	if h != "" {
		host = h
	}
	if n, err := strconv.Atoi(p); err == nil && n > 0 {
		port = n
	}
	return host, port
}

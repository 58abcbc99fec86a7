package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/commentkit/internal/logging"
	"github.com/evcraddock/commentkit/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Long:  "Start an HTTP server for the thread web UI and the JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	logger := logging.Setup(getDevMode())

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, web.Options{Prefix: prefix()})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("serving comments", "port", port, "prefix", prefix())
	return srv.ListenAndServe(port)
}

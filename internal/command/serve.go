package command

import (
	"github.com/spf13/cobra"

	"github.com/vmccready/techdegree-project-9/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: "Migrates the database, then serves the API until SIGINT or SIGTERM.\n" +
			"In-flight requests are given SHUTDOWN_TIMEOUT to finish.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			srv, err := server.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}
}

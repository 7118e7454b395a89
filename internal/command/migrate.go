package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	sqliteRepo "github.com/vmccready/techdegree-project-9/internal/repository/sqlite"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			db, err := sqliteRepo.New(cmd.Context(), cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			version, err := db.Version(cmd.Context())
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "database is up to date",
				slog.String("database", cfg.DBPath),
				slog.Int64("version", version),
			)
			return nil
		},
	}
}

// Package command contains the CLI command constructors.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vmccready/techdegree-project-9/internal/config"
)

type configKey struct{}

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	envFile := ".env"
	cmd := &cobra.Command{
		Use:          "courses [command] [flags]",
		Short:        "REST API for users and the courses they own",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := config.NewLogger(cfg)
			slog.SetDefault(logger)
			logger.DebugContext(cmd.Context(), "configuration loaded",
				slog.Int("port", cfg.Port),
				slog.String("database", cfg.DBPath),
				slog.String("logLevel", cfg.LogLevel),
			)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", envFile,
		"dotenv file to load before reading the environment (ignored if missing)")

	cmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		userCommand(),
	)
	return cmd
}

func loadConfig(ctx context.Context) (*config.Config, *slog.Logger, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, nil, errors.New("configuration was not loaded")
	}
	return cfg, slog.Default(), nil
}

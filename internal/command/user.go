package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/auth"
	sqliteRepo "github.com/vmccready/techdegree-project-9/internal/repository/sqlite"
	"github.com/vmccready/techdegree-project-9/internal/service"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(userAddCommand())
	return cmd
}

func userAddCommand() *cobra.Command {
	var first, last, email, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Long: "Registers a user with the same validation as POST /api/users. When\n" +
			"--password is omitted it is read from stdin or an interactive prompt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			if password == "" {
				raw, err := promptSecret("password: ")
				if err != nil {
					return err
				}
				password = string(raw)
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

			users := service.NewUserService(db.Users(), auth.NewPasswordService(cfg.BcryptCost),
				validate.New(), validate.UserRules, logger)

			user, err := users.Register(cmd.Context(), validate.Payload{
				"firstName":    first,
				"lastName":     last,
				"emailAddress": email,
				"password":     password,
			})
			if err != nil {
				return describe(err)
			}

			logger.InfoContext(cmd.Context(), "created user",
				slog.Int64("id", user.ID),
				slog.String("email", user.EmailAddress),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&last, "last", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address, also the login name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted for when empty)")
	return cmd
}

// describe flattens a validation error into one line per message so the
// terminal shows every problem, not just the first.
func describe(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) && len(appErr.Messages) > 1 {
		return fmt.Errorf("invalid user:\n  %s", strings.Join(appErr.Messages, "\n  "))
	}
	return err
}

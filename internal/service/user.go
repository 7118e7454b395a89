// Package service contains the business logic layer of the application.
//
//	Handler (HTTP layer)     → decodes requests, writes responses
//	Service (business layer) → validates, enforces ownership, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services take repository interfaces, never concrete database types, and
// report failures as apperror values. They know nothing about HTTP, which
// is why the CLI can register users through the same code path.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/auth"
	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/repository"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

// UserService handles registration.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	validator *validate.Validator
	rules     validate.Rules
	logger    *slog.Logger
}

// NewUserService wires a UserService. rules lists the fields Register
// requires; the server passes validate.UserRules.
func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	validator *validate.Validator,
	rules validate.Rules,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		validator: validator,
		rules:     rules,
		logger:    logger,
	}
}

// Register validates p and creates the user it describes.
//
// Presence errors and the email verdict are collected into one validation
// error so the caller sees every problem at once. On success the email is
// stored lowercase and only the bcrypt hash of the password is persisted.
func (s *UserService) Register(ctx context.Context, p validate.Payload) (*model.User, error) {
	messages := s.validator.Check(p, s.rules, nil)

	email := strings.TrimSpace(p.String("emailAddress"))
	if email != "" && p.IsText("emailAddress") {
		msg, err := s.validator.CheckEmail(ctx, s.users, email)
		if err != nil {
			return nil, fmt.Errorf("service/user: %w", err)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) > 0 {
		return nil, apperror.ValidationFailed(messages...)
	}

	hash, err := s.passwords.Hash(p.String("password"))
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.ValidationFailed(
				fmt.Sprintf("Password must be %d bytes or fewer", auth.MaxPasswordBytes))
		}
		return nil, fmt.Errorf("service/user: %w", err)
	}

	user := &model.User{
		FirstName:    strings.TrimSpace(p.String("firstName")),
		LastName:     strings.TrimSpace(p.String("lastName")),
		EmailAddress: strings.ToLower(email),
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same address.
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed(validate.MsgEmailInUse)
		}
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, nil
}

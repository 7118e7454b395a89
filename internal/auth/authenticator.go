package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/model"
)

// Reasons an authentication attempt is rejected. They are for logs only;
// clients always see the same "Access Denied" response.
var (
	ErrNoCredentials = errors.New("Auth header not found")
	ErrUserNotFound  = errors.New("User not found")
	ErrBadPassword   = errors.New("Authentication failure")
)

// UserFinder is the slice of the user repository the authenticator needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator resolves the user behind an Authorization header.
type Authenticator struct {
	users     UserFinder
	passwords *PasswordService
}

func NewAuthenticator(users UserFinder, passwords *PasswordService) *Authenticator {
	return &Authenticator{users: users, passwords: passwords}
}

// Authenticate resolves the user behind req's Basic credentials. The
// username is the account email. It checks, in order: that credentials are
// present, that a user with that email exists, and that the password matches
// its hash. The first failing check decides the returned reason. Storage
// failures are returned wrapped and match none of the reasons.
func (a *Authenticator) Authenticate(req *http.Request) (*model.User, error) {
	email, password, ok := req.BasicAuth()
	if !ok {
		return nil, ErrNoCredentials
	}

	user, err := a.users.GetByEmail(req.Context(), strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w for username: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("auth: looking up user: %w", err)
	}

	if err := a.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("%w for username: %s", ErrBadPassword, user.EmailAddress)
	}

	return user, nil
}

// IsRejection reports whether err is one of the three credential failures
// (as opposed to an infrastructure error).
func IsRejection(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBadPassword)
}

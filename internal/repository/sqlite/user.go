package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users table.
type UserDB struct {
	conn *sql.DB
}

const userColumns = `id, first_name, last_name, email_address, password, created_at, updated_at`

// Create inserts a new user. The ID is assigned by SQLite (AUTOINCREMENT)
// and written back into user along with the timestamps.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email_address, password, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.EmailAddress)
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail retrieves a user by email address, ignoring case.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_address = ? COLLATE NOCASE`, email)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return user, nil
}

// EmailExists reports whether any user is registered with email, ignoring case.
func (u *UserDB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := u.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email_address = ? COLLATE NOCASE)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking email: %w", err)
	}
	return exists, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

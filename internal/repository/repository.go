// Package repository declares the data-access contracts used by the service
// layer. Implementations live in sub-packages (see repository/sqlite).
package repository

import (
	"context"

	"github.com/vmccready/techdegree-project-9/internal/model"
)

// UserRepository persists and looks up users.
//
// Emails passed in are expected to be lowercase already; the service layer
// normalises them before calling any method here.
type UserRepository interface {
	// Create inserts the user and fills in ID and timestamps. Returns an
	// apperror.ErrConflict error if the email is already registered.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns apperror.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CourseRepository persists courses. Reads join the owning user.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	// Update and Delete only touch the row if it is still owned by
	// course.UserID / ownerID; otherwise they return apperror.ErrNotFound.
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id, ownerID int64) error
}

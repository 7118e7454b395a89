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

var _ repository.CourseRepository = (*CourseDB)(nil)

// CourseDB is the courses table.
type CourseDB struct {
	conn *sql.DB
}

// courseSelect joins the owner so a single query yields a complete course.
// The owner's password column is deliberately not selected.
const courseSelect = `
	SELECT c.id, c.user_id, c.title, c.description, c.estimated_time, c.materials_needed,
	       c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name, u.email_address
	FROM courses c
	JOIN users u ON u.id = c.user_id`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var (
		c               model.Course
		owner           model.User
		estimatedTime   sql.NullString
		materialsNeeded sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Description, &estimatedTime, &materialsNeeded,
		&c.CreatedAt, &c.UpdatedAt,
		&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
	)
	if err != nil {
		return nil, err
	}
	c.EstimatedTime = stringPtr(estimatedTime)
	c.MaterialsNeeded = stringPtr(materialsNeeded)
	c.Owner = &owner
	return &c, nil
}

// Create inserts a course and writes the new ID and timestamps back.
// course.UserID must reference an existing user (foreign key).
func (cdb *CourseDB) Create(ctx context.Context, course *model.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	result, err := cdb.conn.ExecContext(ctx,
		`INSERT INTO courses (user_id, title, description, estimated_time, materials_needed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		course.UserID,
		course.Title,
		course.Description,
		nullString(course.EstimatedTime),
		nullString(course.MaterialsNeeded),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new course id: %w", err)
	}
	course.ID = id

	return nil
}

// GetByID retrieves a course with its owner.
// Returns apperror.ErrNotFound if the course doesn't exist.
func (cdb *CourseDB) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	course, err := scanCourse(cdb.conn.QueryRowContext(ctx, courseSelect+` WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("course", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting course %d: %w", id, err)
	}
	return course, nil
}

// List returns every course with its owner, oldest first.
func (cdb *CourseDB) List(ctx context.Context) ([]model.Course, error) {
	rows, err := cdb.conn.QueryContext(ctx, courseSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]model.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating courses: %w", err)
	}

	return courses, nil
}

// Update writes the editable fields of course. The WHERE clause also matches
// on user_id, so a course that changed hands (or vanished) between the
// caller's ownership check and this write is left untouched and reported as
// not found.
func (cdb *CourseDB) Update(ctx context.Context, course *model.Course) error {
	course.UpdatedAt = time.Now().UTC()

	result, err := cdb.conn.ExecContext(ctx,
		`UPDATE courses
		 SET title = ?, description = ?, estimated_time = ?, materials_needed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		course.Title,
		course.Description,
		nullString(course.EstimatedTime),
		nullString(course.MaterialsNeeded),
		course.UpdatedAt,
		course.ID,
		course.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating course %d: %w", course.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("course", course.ID)
	}

	return nil
}

// Delete removes the course if it is still owned by ownerID.
func (cdb *CourseDB) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := cdb.conn.ExecContext(ctx,
		`DELETE FROM courses WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting course %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("course", id)
	}

	return nil
}

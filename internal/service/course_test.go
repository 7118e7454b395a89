package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

var (
	owner    = &model.User{ID: 1, FirstName: "Owner", LastName: "One", EmailAddress: "owner@example.com"}
	stranger = &model.User{ID: 2, FirstName: "Str", LastName: "Anger", EmailAddress: "stranger@example.com"}
)

func newTestCourseService(t *testing.T) (*CourseService, *mockCourseRepo) {
	t.Helper()
	repo := newMockCourseRepo()
	return NewCourseService(repo, validate.New(), validate.CourseRules, validate.CourseOptionalFields, quietLogger()), repo
}

func createCourse(t *testing.T, svc *CourseService, p validate.Payload) *model.Course {
	t.Helper()
	course, err := svc.Create(context.Background(), owner, p)
	require.NoError(t, err)
	return course
}

// =========================================================================
// CREATE
// =========================================================================

func TestCourseCreate_OwnerComesFromCaller(t *testing.T) {
	svc, repo := newTestCourseService(t)

	course := createCourse(t, svc, validate.Payload{
		"title":       "T",
		"description": "D",
		"userId":      99, // must be ignored
	})

	assert.Equal(t, owner.ID, course.UserID)
	assert.Equal(t, owner.ID, repo.courses[course.ID].UserID)
}

func TestCourseCreate_OptionalFields(t *testing.T) {
	svc, _ := newTestCourseService(t)

	course := createCourse(t, svc, validate.Payload{
		"title":           "T",
		"description":     "D",
		"estimatedTime":   "3 hours",
		"materialsNeeded": nil,
	})

	require.NotNil(t, course.EstimatedTime)
	assert.Equal(t, "3 hours", *course.EstimatedTime)
	assert.Nil(t, course.MaterialsNeeded)
}

func TestCourseCreate_Validation(t *testing.T) {
	svc, repo := newTestCourseService(t)

	_, err := svc.Create(context.Background(), owner, validate.Payload{"title": "  "})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, []string{
		`Please provide a value for "title"`,
		`Please provide a value for "description"`,
	}, appErr.Messages)
	assert.Empty(t, repo.courses)
}

// =========================================================================
// READ
// =========================================================================

func TestCourseGet_NotFound(t *testing.T) {
	svc, _ := newTestCourseService(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCourseList(t *testing.T) {
	svc, _ := newTestCourseService(t)
	createCourse(t, svc, validate.Payload{"title": "one", "description": "d"})
	createCourse(t, svc, validate.Payload{"title": "two", "description": "d"})

	courses, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "one", courses[0].Title)
}

func TestCourseList_StorageError(t *testing.T) {
	svc, repo := newTestCourseService(t)
	repo.err = errors.New("boom")

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

// =========================================================================
// UPDATE
// =========================================================================

func TestCourseUpdate_ByOwner(t *testing.T) {
	svc, repo := newTestCourseService(t)
	course := createCourse(t, svc, validate.Payload{
		"title": "old", "description": "old", "estimatedTime": "1h", "materialsNeeded": "pen",
	})

	err := svc.Update(context.Background(), owner, course.ID, validate.Payload{
		"title":           "new",
		"description":     "new",
		"materialsNeeded": nil,
		"userId":          stranger.ID,
	})
	require.NoError(t, err)

	stored := repo.courses[course.ID]
	assert.Equal(t, "new", stored.Title)
	assert.Equal(t, owner.ID, stored.UserID, "ownership cannot be transferred")
	require.NotNil(t, stored.EstimatedTime, "absent key leaves the field alone")
	assert.Equal(t, "1h", *stored.EstimatedTime)
	assert.Nil(t, stored.MaterialsNeeded, "explicit null clears the field")
}

func TestCourseUpdate_ByStrangerIsForbiddenAndUnchanged(t *testing.T) {
	svc, repo := newTestCourseService(t)
	course := createCourse(t, svc, validate.Payload{"title": "mine", "description": "d"})

	err := svc.Update(context.Background(), stranger, course.ID, validate.Payload{
		"title": "hijacked", "description": "d",
	})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, "mine", repo.courses[course.ID].Title)
}

func TestCourseUpdate_Missing(t *testing.T) {
	svc, _ := newTestCourseService(t)

	err := svc.Update(context.Background(), owner, 404, validate.Payload{"title": "t", "description": "d"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCourseUpdate_ValidationRunsFirst(t *testing.T) {
	svc, _ := newTestCourseService(t)

	err := svc.Update(context.Background(), owner, 404, validate.Payload{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// =========================================================================
// DELETE
// =========================================================================

func TestCourseDelete_ByOwner(t *testing.T) {
	svc, repo := newTestCourseService(t)
	course := createCourse(t, svc, validate.Payload{"title": "t", "description": "d"})

	require.NoError(t, svc.Delete(context.Background(), owner, course.ID))
	assert.NotContains(t, repo.courses, course.ID)
}

func TestCourseDelete_ByStranger(t *testing.T) {
	svc, repo := newTestCourseService(t)
	course := createCourse(t, svc, validate.Payload{"title": "t", "description": "d"})

	err := svc.Delete(context.Background(), stranger, course.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Contains(t, repo.courses, course.ID)
}

func TestCourseDelete_Missing(t *testing.T) {
	svc, _ := newTestCourseService(t)

	err := svc.Delete(context.Background(), owner, 404)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCourseCreate_NonTextFieldsRejected(t *testing.T) {
	svc, repo := newTestCourseService(t)

	_, err := svc.Create(context.Background(), owner, validate.Payload{
		"title":       map[string]any{"a": 1},
		"description": []any{"x"},
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{
		`Please provide text for "title"`,
		`Please provide text for "description"`,
	}, appErr.Messages)
	assert.Empty(t, repo.courses)
}

func TestCourseUpdate_NonTextOptionalFieldLeavesCourseUnchanged(t *testing.T) {
	svc, repo := newTestCourseService(t)
	course := createCourse(t, svc, validate.Payload{"title": "T", "description": "D", "materialsNeeded": "pen"})

	err := svc.Update(context.Background(), owner, course.ID, validate.Payload{
		"title": "T2", "description": "D", "materialsNeeded": []any{"pen", "paper"},
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	stored := repo.courses[course.ID]
	assert.Equal(t, "T", stored.Title)
	require.NotNil(t, stored.MaterialsNeeded)
	assert.Equal(t, "pen", *stored.MaterialsNeeded)
}

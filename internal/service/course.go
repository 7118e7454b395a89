package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/model"
	"github.com/vmccready/techdegree-project-9/internal/repository"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

// CourseService handles course reads and owner-only mutations.
type CourseService struct {
	repo      repository.CourseRepository
	validator *validate.Validator
	rules     validate.Rules
	optional  validate.Rules
	logger    *slog.Logger
}

// NewCourseService wires a CourseService. rules lists the fields Create and
// Update require and optional the ones they accept; the server passes
// validate.CourseRules and validate.CourseOptionalFields.
func NewCourseService(
	repo repository.CourseRepository,
	validator *validate.Validator,
	rules validate.Rules,
	optional validate.Rules,
	logger *slog.Logger,
) *CourseService {
	return &CourseService{
		repo:      repo,
		validator: validator,
		rules:     rules,
		optional:  optional,
		logger:    logger,
	}
}

// List returns every course with its owner attached.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/course: listing: %w", err)
	}
	return courses, nil
}

// Get returns one course with its owner, or an apperror.ErrNotFound error.
func (s *CourseService) Get(ctx context.Context, id int64) (*model.Course, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates p and stores a new course owned by owner. Any userId in
// the payload is ignored: ownership always comes from the caller's identity.
func (s *CourseService) Create(ctx context.Context, owner *model.User, p validate.Payload) (*model.Course, error) {
	if messages := s.validator.Check(p, s.rules, s.optional); len(messages) > 0 {
		return nil, apperror.ValidationFailed(messages...)
	}

	estimatedTime, _ := p.OptionalString("estimatedTime")
	materialsNeeded, _ := p.OptionalString("materialsNeeded")

	course := &model.Course{
		UserID:          owner.ID,
		Title:           strings.TrimSpace(p.String("title")),
		Description:     strings.TrimSpace(p.String("description")),
		EstimatedTime:   estimatedTime,
		MaterialsNeeded: materialsNeeded,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("service/course: creating: %w", err)
	}

	s.logger.Info("course created",
		slog.Int64("courseID", course.ID),
		slog.Int64("userID", owner.ID),
	)
	return course, nil
}

// Update applies p to course id on behalf of caller.
//
// Order of checks: payload validation, existence, then ownership. Title and
// description are always replaced; estimatedTime and materialsNeeded only
// change when their keys are present (null clears them). userId is never
// taken from the payload.
func (s *CourseService) Update(ctx context.Context, caller *model.User, id int64, p validate.Payload) error {
	if messages := s.validator.Check(p, s.rules, s.optional); len(messages) > 0 {
		return apperror.ValidationFailed(messages...)
	}

	course, err := s.ownedCourse(ctx, caller, id)
	if err != nil {
		return err
	}

	course.Title = strings.TrimSpace(p.String("title"))
	course.Description = strings.TrimSpace(p.String("description"))
	if v, present := p.OptionalString("estimatedTime"); present {
		course.EstimatedTime = v
	}
	if v, present := p.OptionalString("materialsNeeded"); present {
		course.MaterialsNeeded = v
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return fmt.Errorf("service/course: updating %d: %w", id, err)
	}

	s.logger.Info("course updated", slog.Int64("courseID", id), slog.Int64("userID", caller.ID))
	return nil
}

// Delete removes course id if caller owns it.
func (s *CourseService) Delete(ctx context.Context, caller *model.User, id int64) error {
	if _, err := s.ownedCourse(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, caller.ID); err != nil {
		return fmt.Errorf("service/course: deleting %d: %w", id, err)
	}

	s.logger.Info("course deleted", slog.Int64("courseID", id), slog.Int64("userID", caller.ID))
	return nil
}

// ownedCourse fetches course id and fails with Forbidden unless caller owns it.
func (s *CourseService) ownedCourse(ctx context.Context, caller *model.User, id int64) (*model.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !course.OwnedBy(caller.ID) {
		s.logger.Warn("course mutation by non-owner refused",
			slog.Int64("courseID", id),
			slog.Int64("ownerID", course.UserID),
			slog.Int64("callerID", caller.ID),
		)
		return nil, apperror.Forbidden("only the course owner may change this course")
	}
	return course, nil
}

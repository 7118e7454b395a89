package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/model"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// In-memory stand-ins for the repository interfaces, so the service rules
// can be tested without SQLite. Setting err makes every call fail.

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	nextID int64
	err    error
	// conflictOnCreate simulates losing a race on the unique email index.
	conflictOnCreate bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.conflictOnCreate {
		return apperror.Conflict("user", user.EmailAddress)
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.EmailAddress, email) {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

type mockCourseRepo struct {
	mu      sync.Mutex
	courses map[int64]*model.Course
	nextID  int64
	err     error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	course.ID = m.nextID
	stored := *course
	m.courses[course.ID] = &stored
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, apperror.NotFound("course", id)
	}
	result := *c
	return &result, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Course, 0, len(m.courses))
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.courses[course.ID]
	if !ok || existing.UserID != course.UserID {
		return apperror.NotFound("course", course.ID)
	}
	stored := *course
	m.courses[course.ID] = &stored
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.courses[id]
	if !ok || existing.UserID != ownerID {
		return apperror.NotFound("course", id)
	}
	delete(m.courses, id)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmccready/techdegree-project-9/internal/apperror"
	"github.com/vmccready/techdegree-project-9/internal/auth"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := NewUserService(repo, auth.NewPasswordService(4), validate.New(), validate.UserRules, quietLogger())
	return svc, repo
}

func validUser() validate.Payload {
	return validate.Payload{
		"firstName":    "A",
		"lastName":     "B",
		"emailAddress": "A@B.com",
		"password":     "secret",
	}
}

// validationMessages unwraps err into its message list, failing the test if
// it is not a validation error.
func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "want *apperror.AppError, got %v", err)
	require.ErrorIs(t, err, apperror.ErrValidation)
	return appErr.Messages
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Register(context.Background(), validUser())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@b.com", user.EmailAddress, "email is stored lowercase")

	stored, ok := repo.users[user.ID]
	require.True(t, ok)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
	assert.NoError(t, auth.NewPasswordService(4).Verify(stored.PasswordHash, "secret"))
}

func TestRegister_AllMissingFieldsReported(t *testing.T) {
	svc, repo := newTestUserService(t)

	_, err := svc.Register(context.Background(), validate.Payload{"lastName": ""})

	assert.Equal(t, []string{
		`Please provide a value for "first name"`,
		`Please provide a value for "last name"`,
		`Please provide a value for "email address"`,
		`Please provide a value for "password"`,
	}, validationMessages(t, err))
	assert.Empty(t, repo.users)
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	svc, _ := newTestUserService(t)
	_, err := svc.Register(context.Background(), validUser())
	require.NoError(t, err)

	again := validUser()
	again["emailAddress"] = "a@B.COM"
	_, err = svc.Register(context.Background(), again)

	assert.Equal(t, []string{validate.MsgEmailInUse}, validationMessages(t, err))
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	p := validUser()
	p["emailAddress"] = "not-an-email"
	_, err := svc.Register(context.Background(), p)

	assert.Equal(t, []string{validate.MsgEmailInvalid}, validationMessages(t, err))
}

func TestRegister_EmailErrorMergesWithPresenceErrors(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), validate.Payload{
		"emailAddress": "bad-address",
	})

	assert.Equal(t, []string{
		`Please provide a value for "first name"`,
		`Please provide a value for "last name"`,
		`Please provide a value for "password"`,
		validate.MsgEmailInvalid,
	}, validationMessages(t, err))
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, _ := newTestUserService(t)

	p := validUser()
	p["password"] = strings.Repeat("x", auth.MaxPasswordBytes+1)
	_, err := svc.Register(context.Background(), p)

	msgs := validationMessages(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "72 bytes")
}

func TestRegister_RaceOnUniqueIndexBecomesValidationError(t *testing.T) {
	svc, repo := newTestUserService(t)
	repo.conflictOnCreate = true

	_, err := svc.Register(context.Background(), validUser())

	assert.Equal(t, []string{validate.MsgEmailInUse}, validationMessages(t, err))
}

func TestRegister_StorageFailureIsNotValidation(t *testing.T) {
	svc, repo := newTestUserService(t)
	repo.err = errors.New("disk full")

	_, err := svc.Register(context.Background(), validUser())

	require.Error(t, err)
	assert.False(t, errors.Is(err, apperror.ErrValidation))
}

func TestRegister_NonTextEmailSkipsEmailCheck(t *testing.T) {
	svc, repo := newTestUserService(t)

	p := validUser()
	p["emailAddress"] = map[string]any{"user": "a", "host": "b.com"}
	_, err := svc.Register(context.Background(), p)

	assert.Equal(t, []string{`Please provide text for "email address"`}, validationMessages(t, err))
	assert.Empty(t, repo.users)
}

package service

import (
	"context"
	"testing"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsUserRole(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(context.Background(), RegisterInput{
		Email:    "student@example.com",
		Password: "secret123",
		FullName: "Student",
		DOB:      "2001-04-09",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, user.RoleNames)

	stored, err := f.users.FindByEmail("student@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.True(t, stored.HasRole(model.RoleUser))
	assert.NotEmpty(t, stored.FsUniquifier)
	assert.NotEqual(t, "secret123", stored.Password)
	require.NotNil(t, stored.DOB)
	assert.Equal(t, 2001, stored.DOB.Year())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "a"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "b"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "", Password: "x"})
	assert.ErrorIs(t, err, util.ErrCredentialsRequired)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "a@example.com", Password: ""})
	assert.ErrorIs(t, err, util.ErrCredentialsRequired)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "a@example.com", Password: "x", DOB: "09/04/2001"})
	assert.ErrorIs(t, err, util.ErrInvalidDOB)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := f.auth.Login("u@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, []string{"user"}, result.Roles)

	stored, err := f.users.FindByID(result.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored.AuthToken)
	assert.Equal(t, result.Token, *stored.AuthToken)

	user, claims, err := f.auth.Authenticate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, user.ID)
	assert.True(t, claims.HasRole(model.RoleUser))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := f.auth.Login("u@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	assert.Nil(t, result)

	_, err = f.auth.Login("nobody@example.com", "pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = f.auth.Login("", "")
	assert.ErrorIs(t, err, util.ErrCredentialsRequired)
}

func TestLogoutRevokesIssuedTokens(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := f.auth.Login("u@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(result.UserID))

	_, _, err = f.auth.Authenticate(result.Token)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	stored, err := f.users.FindByID(result.UserID)
	require.NoError(t, err)
	assert.Nil(t, stored.AuthToken)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)
	result, err := f.auth.Login("u@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", result.UserID).Update("active", false).Error)

	_, _, err = f.auth.Authenticate(result.Token)
	assert.ErrorIs(t, err, util.ErrUserInactive)

	_, _, err = f.auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

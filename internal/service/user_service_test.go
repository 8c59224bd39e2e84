package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cohort/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createWithProfileFn func(context.Context, *models.User, models.Role) error
	updateProfileFn     func(context.Context, uint, models.Role, string) (*models.User, error)
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User, role models.Role) error {
	return s.createWithProfileFn(ctx, user, role)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, userID uint, role models.Role, bio string) (*models.User, error) {
	return s.updateProfileFn(ctx, userID, role, bio)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createWithProfileFn: func(_ context.Context, user *models.User, role models.Role) error {
			user.ID = 1
			user.Profile = &models.Profile{UserID: 1, Role: role}
			return nil
		},
		updateProfileFn: func(_ context.Context, userID uint, role models.Role, bio string) (*models.User, error) {
			return &models.User{ID: userID, Profile: &models.Profile{UserID: userID, Role: role, Bio: bio}}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "password too short",
			input: RegisterInput{Username: "alice", Password: "12345", Role: "researcher"},
		},
		{
			name:  "missing role",
			input: RegisterInput{Username: "alice", Password: "secret1"},
		},
		{
			name:  "invalid role",
			input: RegisterInput{Username: "alice", Password: "secret1", Role: "admin"},
		},
		{
			name:  "bad username charset",
			input: RegisterInput{Username: "al ice", Password: "secret1", Role: "subject"},
		},
		{
			name:  "bad email",
			input: RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1", Role: "subject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			created := false
			repo := noopUserRepo()
			repo.createWithProfileFn = func(_ context.Context, _ *models.User, _ models.Role) error {
				created = true
				return nil
			}
			svc := NewUserService(repo)

			_, err := svc.Register(ctx, tt.input)
			assertValidationError(t, err)
			assert.False(t, created, "repo must not be touched on invalid input")
		})
	}
}

func TestUserService_Register_Success(t *testing.T) {
	t.Parallel()

	var gotRole models.Role
	var gotUser *models.User
	repo := noopUserRepo()
	repo.createWithProfileFn = func(_ context.Context, user *models.User, role models.Role) error {
		gotUser = user
		gotRole = role
		user.ID = 7
		return nil
	}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     "researcher",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, models.RoleResearcher, gotRole)
	// The stored password must be a bcrypt hash, never the plaintext.
	require.NotNil(t, gotUser)
	assert.NotEqual(t, "secret1", gotUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(gotUser.Password), []byte("secret1")))
}

func TestUserService_Register_EmailOptional(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Password: "secret1",
		Role:     "subject",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createWithProfileFn = func(_ context.Context, _ *models.User, _ models.Role) error {
		return models.NewFieldValidationError("Username already taken",
			map[string]string{"username": "already taken"})
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Password: "secret1",
		Role:     "subject",
	})
	assertValidationError(t, err)
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			return &models.User{ID: 3, Username: "alice", Password: string(hash)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrong")
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "mallory", "secret1")
		assertUnauthorizedError(t, err)
	})
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Role: "admin"})
	assertValidationError(t, err)

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Bio: strings.Repeat("x", 501)})
	assertValidationError(t, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 4,
		Role:   "subject",
		Bio:    "participant in study 12",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, models.RoleSubject, user.Profile.Role)
	assert.Equal(t, "participant in study 12", user.Profile.Bio)
}

package service

import (
	"context"

	"cohort/internal/models"
	"cohort/internal/observability"
	"cohort/internal/repository"
	"cohort/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UpdateProfileInput struct {
	UserID uint
	Role   string
	Bio    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a user and its profile in one transaction. The account
// exists with its role, or not at all.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewFieldValidationError(err.Error(),
			map[string]string{"username": err.Error()})
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewFieldValidationError(err.Error(),
				map[string]string{"email": err.Error()})
		}
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewFieldValidationError(err.Error(),
			map[string]string{"password": err.Error()})
	}
	if err := validation.ValidateRole(models.Role(in.Role)); err != nil {
		return nil, models.NewFieldValidationError(err.Error(),
			map[string]string{"role": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.CreateWithProfile(ctx, user, models.Role(in.Role)); err != nil {
		return nil, err
	}
	observability.RegistrationsTotal.WithLabelValues(in.Role).Inc()
	return user, nil
}

// Authenticate verifies a username/password pair. A missing user and a wrong
// password produce the same error so the response does not leak which one failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's own profile. Role, when supplied, must
// be one of the known roles.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const maxBioLen = 500

	role := models.Role("")
	if in.Role != "" {
		if err := validation.ValidateRole(models.Role(in.Role)); err != nil {
			return nil, models.NewFieldValidationError(err.Error(),
				map[string]string{"role": err.Error()})
		}
		role = models.Role(in.Role)
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	return s.userRepo.UpdateProfile(ctx, in.UserID, role, in.Bio)
}

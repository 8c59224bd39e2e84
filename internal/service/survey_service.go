package service

import (
	"context"
	"strings"

	"cohort/internal/models"
	"cohort/internal/observability"
	"cohort/internal/permissions"
	"cohort/internal/repository"
)

type SurveyService struct {
	surveyRepo repository.SurveyRepository
	userRepo   repository.UserRepository
}

type CreateSurveyInput struct {
	UserID      uint
	Title       string
	Description string
}

type UpdateSurveyInput struct {
	UserID      uint
	SurveyID    uint
	Title       *string
	Description *string
}

// PageSize is the fixed number of surveys per list page.
const PageSize = 10

func NewSurveyService(surveyRepo repository.SurveyRepository, userRepo repository.UserRepository) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		userRepo:   userRepo,
	}
}

// CreateSurvey creates a survey owned by the given user. The caller must be
// a researcher; the role gate is checked before payload validation so a
// subject gets 403 even on a malformed body.
func (s *SurveyService) CreateSurvey(ctx context.Context, in CreateSurveyInput) (*models.Survey, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !permissions.IsResearcher(user) {
		return nil, models.NewForbiddenError("Only researchers can create surveys")
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, models.NewFieldValidationError("Title is required",
			map[string]string{"title": "is required"})
	}
	if description == "" {
		return nil, models.NewFieldValidationError("Description is required",
			map[string]string{"description": "is required"})
	}

	survey := &models.Survey{
		Title:       title,
		Description: description,
		CreatedByID: in.UserID,
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	observability.SurveysCreatedTotal.Inc()
	return survey, nil
}

// ListSurveys returns one page of surveys, newest first, plus the total count.
func (s *SurveyService) ListSurveys(ctx context.Context, page int) ([]*models.Survey, int64, error) {
	if page < 1 {
		page = 1
	}
	count, err := s.surveyRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	surveys, err := s.surveyRepo.List(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, err
	}
	return surveys, count, nil
}

// ListUserSurveys returns one page of a single user's surveys plus their total count.
func (s *SurveyService) ListUserSurveys(ctx context.Context, userID uint, page int) ([]*models.Survey, int64, error) {
	if page < 1 {
		page = 1
	}
	count, err := s.surveyRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	surveys, err := s.surveyRepo.ListByUser(ctx, userID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, err
	}
	return surveys, count, nil
}

func (s *SurveyService) GetSurvey(ctx context.Context, id uint) (*models.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// UpdateSurvey applies a partial update of title/description. Only the owner
// may update; ownership is checked after the survey is fetched, so a missing
// survey yields 404 rather than 403.
func (s *SurveyService) UpdateSurvey(ctx context.Context, in UpdateSurveyInput) (*models.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, in.SurveyID)
	if err != nil {
		return nil, err
	}

	if !permissions.IsOwnerOrReadOnly(permissions.OpWrite, in.UserID, survey) {
		return nil, models.NewForbiddenError("You can only modify your own surveys")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewFieldValidationError("Title cannot be empty",
				map[string]string{"title": "cannot be empty"})
		}
		survey.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, models.NewFieldValidationError("Description cannot be empty",
				map[string]string{"description": "cannot be empty"})
		}
		survey.Description = description
	}

	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// DeleteSurvey removes a survey. Only the owner may delete.
func (s *SurveyService) DeleteSurvey(ctx context.Context, userID, surveyID uint) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}

	if !permissions.IsOwnerOrReadOnly(permissions.OpWrite, userID, survey) {
		return models.NewForbiddenError("You can only delete your own surveys")
	}

	return s.surveyRepo.Delete(ctx, surveyID)
}

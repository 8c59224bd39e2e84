// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"cohort/internal/cache"
	"cohort/internal/models"

	"gorm.io/gorm"
)

// defaultOrder sorts newest first; id breaks created_at ties in insertion order.
const defaultOrder = "created_at DESC, id DESC"

// SurveyRepository defines the interface for survey data operations
type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	List(ctx context.Context, limit, offset int) ([]*models.Survey, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Survey, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id uint) error
}

// surveyRepository implements SurveyRepository
type surveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	if err := r.db.WithContext(ctx).Create(survey).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSurveyList(ctx)
	return nil
}

func (r *surveyRepository) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	var survey models.Survey
	key := cache.SurveyKey(id)

	err := cache.Aside(ctx, key, &survey, cache.SurveyTTL, func() error {
		if err := r.db.WithContext(ctx).First(&survey, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Survey", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) List(ctx context.Context, limit, offset int) ([]*models.Survey, error) {
	var surveys []*models.Survey
	fetch := func() error {
		err := r.db.WithContext(ctx).
			Order(defaultOrder).
			Limit(limit).
			Offset(offset).
			Find(&surveys).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the first page is hot enough to cache; writes invalidate it.
	if offset == 0 {
		if err := cache.Aside(ctx, cache.SurveyListFirstPage, &surveys, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return surveys, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Survey, error) {
	var surveys []*models.Survey
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order(defaultOrder).
		Limit(limit).
		Offset(offset).
		Find(&surveys).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return surveys, nil
}

func (r *surveyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Survey{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *surveyRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Survey{}).
		Where("created_by_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *surveyRepository) Update(ctx context.Context, survey *models.Survey) error {
	if err := r.db.WithContext(ctx).Save(survey).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSurvey(ctx, survey.ID)
	cache.InvalidateSurveyList(ctx)
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Survey{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSurvey(ctx, id)
	cache.InvalidateSurveyList(ctx)
	return nil
}

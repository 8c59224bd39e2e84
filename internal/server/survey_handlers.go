package server

import (
	"cohort/internal/models"
	"cohort/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListSurveys handles GET /api/surveys
func (s *Server) ListSurveys(c *fiber.Ctx) error {
	page := parsePage(c)

	surveys, count, err := s.surveyService.ListSurveys(c.Context(), page)
	if err != nil {
		return respondServiceError(c, err)
	}
	if pageOutOfRange(page, count) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: "NOT_FOUND", Message: "Invalid page"})
	}
	if surveys == nil {
		surveys = []*models.Survey{}
	}

	return c.JSON(paginated(c, page, count, surveys))
}

// CreateSurvey handles POST /api/surveys
func (s *Server) CreateSurvey(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	// id/created_by/created_at in the payload are simply not read; those
	// fields are always server-derived.
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	survey, err := s.surveyService.CreateSurvey(c.Context(), service.CreateSurveyInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(survey)
}

// GetSurvey handles GET /api/surveys/:id
func (s *Server) GetSurvey(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	survey, err := s.surveyService.GetSurvey(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(survey)
}

// UpdateSurvey handles PUT and PATCH /api/surveys/:id. Both apply a partial
// update of title/description.
func (s *Server) UpdateSurvey(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	survey, err := s.surveyService.UpdateSurvey(c.Context(), service.UpdateSurveyInput{
		UserID:      currentUserID(c),
		SurveyID:    id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(survey)
}

// DeleteSurvey handles DELETE /api/surveys/:id
func (s *Server) DeleteSurvey(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.surveyService.DeleteSurvey(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

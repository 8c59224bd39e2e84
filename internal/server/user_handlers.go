package server

import (
	"cohort/internal/models"
	"cohort/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Role string `json:"role"`
		Bio  string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Role:   req.Role,
		Bio:    req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserSurveys handles GET /api/users/:id/surveys
func (s *Server) GetUserSurveys(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// 404 for unknown users rather than an empty list.
	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	page := parsePage(c)
	surveys, count, err := s.surveyService.ListUserSurveys(c.Context(), userID, page)
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

package server

import (
	"errors"
	"fmt"

	"cohort/internal/models"
	"cohort/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// pageEnvelope is the paginated list response shape.
type pageEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// parsePage extracts the ?page=N query parameter, defaulting to the first page.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// pageOutOfRange reports whether the requested page has no rows. The first
// page is always in range so an empty collection lists as empty, not missing.
func pageOutOfRange(page int, count int64) bool {
	if page == 1 {
		return false
	}
	return int64(page-1)*service.PageSize >= count
}

// paginated builds the list envelope with absolute next/previous page links.
func paginated(c *fiber.Ctx, page int, count int64, results any) pageEnvelope {
	env := pageEnvelope{
		Count:   count,
		Results: results,
	}

	lastPage := int((count + service.PageSize - 1) / service.PageSize)
	if page < lastPage {
		next := pageLink(c, page+1)
		env.Next = &next
	}
	if page > 1 {
		prev := pageLink(c, page-1)
		env.Previous = &prev
	}
	return env
}

// pageLink builds an absolute URL for the given page. The first page link
// carries no query string.
func pageLink(c *fiber.Ctx, page int) string {
	base := c.BaseURL() + c.Path()
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID from Fiber locals.
// Routes behind AuthRequired always have it set.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// respondServiceError maps an AppError to its HTTP status and writes the
// JSON error response.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

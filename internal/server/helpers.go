// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"
	"net/url"

	"vireo/internal/keys"
	"vireo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseUserID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUserID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePostID extracts the :id route parameter as a push key. Posts are
// addressed by their push keys, not numeric IDs.
func (s *Server) parsePostID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !keys.Valid(id) {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return "", errResponseWritten
	}
	return id, nil
}

// normalizeParam URL-decodes a route parameter value.
func normalizeParam(raw string) (string, error) {
	return url.PathUnescape(raw)
}

// statusForError maps an AppError code to the HTTP status handlers respond
// with; unknown errors stay 500.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeUnauthorized:
			return fiber.StatusForbidden
		}
	}
	return fiber.StatusInternalServerError
}

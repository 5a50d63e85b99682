// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"strconv"

	"vireo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ServeMedia handles GET /media/u/:authorId/:filename, streaming a stored
// blob. These URLs are the durable file_url values embedded in posts.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	authorID, err := strconv.ParseUint(c.Params("authorId"), 10, 32)
	if err != nil || authorID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid author ID"))
	}

	filename, err := normalizeParam(c.Params("filename"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid filename"))
	}

	path, err := s.store.Path(uint(authorID), filename)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Media file", filename))
	}

	return c.SendFile(path)
}

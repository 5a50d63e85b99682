// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"vireo/internal/models"
	"vireo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		AuthorID: userID,
		PostID:   postID,
		Text:     req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	view := created.View()
	s.publishBroadcastEvent(EventCommentCreated, map[string]interface{}{
		"post_id":    postID,
		"comment":    view,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetComments handles GET /api/posts/:id/comments; append order, never
// reordered.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, cm.View())
	}
	return c.JSON(views)
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"io"
	"time"

	"vireo/internal/models"
	"vireo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts (multipart)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart form required"))
	}

	files := form.File["file"]
	if len(files) != 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Exactly one file is required"))
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Title:    c.FormValue("title"),
		Body:     c.FormValue("body"),
		Tags:     c.FormValue("tags"),
		FileName: fh.Filename,
		FileData: data,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	view := post.View()
	s.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post":       view,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	posts, err := s.postService.ListFeed(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View())
	}
	return c.JSON(views)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post.View())
}

// GetUserPosts handles GET /api/users/:id/posts, served from the per-author
// index rather than the global collection.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authorID, err := s.parseUserID(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	posts, err := s.postService.GetUserPosts(ctx, authorID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// LikePost handles POST /api/posts/:id/like. Likes only accumulate; there is
// no unlike.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	likes, err := s.postService.LikePost(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	s.publishBroadcastEvent(EventPostLiked, map[string]interface{}{
		"post_id":    postID,
		"likes":      likes,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"post_id": postID,
		"likes":   likes,
	})
}

// ReportPost handles POST /api/posts/:id/report. The report is acknowledged
// and logged; nothing is persisted.
func (s *Server) ReportPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.ReportPost(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Report received"})
}

package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content         string     `json:"content"`
		MediaURL        string     `json:"media_url"`
		CommentsEnabled *bool      `json:"comments_enabled"`
		ScheduledAt     *time.Time `json:"scheduled_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:          currentUserID(c),
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: req.CommentsEnabled,
		ScheduledAt:     req.ScheduledAt,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), postID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	page, err := s.postService.ListPostsByAuthor(c.UserContext(), service.ListPostsInput{
		AuthorID: authorID,
		ViewerID: currentUserID(c),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetScheduledPosts handles GET /api/me/posts/scheduled
func (s *Server) GetScheduledPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	page, err := s.postService.ListScheduledPosts(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	page, err := s.feedService.AssembleFeed(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

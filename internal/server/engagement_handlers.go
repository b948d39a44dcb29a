package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, err := s.engagementService.LikePost(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"liked": true, "created": created})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.engagementService.UnlikePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"liked": false})
}

// GetLikeStatus handles GET /api/posts/:id/like
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.engagementService.HasLiked(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// GetLikers handles GET /api/posts/:id/likers
func (s *Server) GetLikers(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	page, err := s.engagementService.ListLikers(c.UserContext(), postID, currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetLikedPosts handles GET /api/me/likes
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	page, err := s.engagementService.ListLikedPosts(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.EditComment(c.UserContext(), commentID, currentUserID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.RemoveComment(c.UserContext(), commentID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	page, err := s.engagementService.ListComments(c.UserContext(), postID, currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

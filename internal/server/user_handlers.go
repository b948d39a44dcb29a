package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.Profile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName *string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		FullName: req.FullName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.Profile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// SearchUsers handles GET /api/users/search
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	p := parsePagination(c, 20)

	page, err := s.userService.Search(c.UserContext(), query, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

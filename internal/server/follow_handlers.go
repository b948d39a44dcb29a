package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, err := s.followService.Follow(c.UserContext(), currentUserID(c), followingID)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"following": true, "created": created})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.followService.Unfollow(c.UserContext(), currentUserID(c), followingID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"following": false})
}

// GetFollowStatus handles GET /api/users/:id/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	followingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(c.UserContext(), currentUserID(c), followingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	page, err := s.followService.ListFollowers(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	page, err := s.followService.ListFollowing(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

package server

import (
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// FollowIndex handles GET /follow/ — the principal's feed of posts by the
// authors they follow. Following nobody yields an empty first page, not an
// error.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := pagination.ParsePage(c.Query("page"))

	feed, err := s.posts.FollowedFeed(ctx, userID, page)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(feed)
}

// Follow handles GET /profile/:username/follow/ and redirects back to the
// author's profile. Repeating the action changes nothing.
func (s *Server) Follow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.follows.Follow(ctx, userID, username); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Redirect("/profile/"+username+"/", fiber.StatusSeeOther)
}

// Unfollow handles GET /profile/:username/unfollow/ and redirects back to
// the author's profile.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.follows.Unfollow(ctx, userID, username); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Redirect("/profile/"+username+"/", fiber.StatusSeeOther)
}

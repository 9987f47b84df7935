package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /admin/groups/. Groups are created only through
// the administrative surface; regular users pick from existing ones.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title" form:"title"`
		Slug        string `json:"slug" form:"slug"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groups.CreateGroup(c.UserContext(), service.CreateGroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// DeleteGroup handles DELETE /admin/groups/:slug/. Posts in the group
// survive with their group reference cleared.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	if err := s.groups.DeleteGroup(c.UserContext(), c.Params("slug")); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted"})
}

// ClearCache handles POST /admin/cache/clear/, dropping the cached home
// page so the next request rebuilds it.
func (s *Server) ClearCache(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := s.pageCache.Clear(ctx); err != nil {
		middleware.Logger.ErrorContext(ctx, "cache clear failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Cache cleared"})
}

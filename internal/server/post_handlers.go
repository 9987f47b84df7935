package server

import (
	"fmt"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET / — the paginated home listing. The first page is served
// through the page cache; post writes do not invalidate it, so content may be
// stale for up to the cache TTL.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := pagination.ParsePage(c.Query("page"))

	if page == 1 {
		var cached service.PostPage
		if found, err := s.pageCache.Get(ctx, &cached); err == nil && found {
			return c.JSON(&cached)
		} else if err != nil {
			middleware.Logger.WarnContext(ctx, "page cache read failed", "error", err)
		}
	}

	listing, err := s.posts.ListPosts(ctx, page)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if page == 1 {
		if err := s.pageCache.Set(ctx, listing); err != nil {
			middleware.Logger.WarnContext(ctx, "page cache write failed", "error", err)
		}
	}
	return c.JSON(listing)
}

// GroupPosts handles GET /group/:slug/ — a group's paginated listing.
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := pagination.ParsePage(c.Query("page"))

	listing, err := s.posts.ListGroupPosts(ctx, c.Params("slug"), page)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(listing)
}

// Profile handles GET /profile/:username/ — an author's posts and, for an
// authenticated viewer, whether they follow the author.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := pagination.ParsePage(c.Query("page"))
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.posts.Profile(ctx, c.Params("username"), page, viewerID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(profile)
}

// PostDetail handles GET /posts/:id/ — a post with its comments.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.posts.PostDetail(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(detail)
}

// CreatePostForm handles GET /create/ — the context for the new-post form:
// the available group choices.
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	groups, err := s.groups.ListGroups(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// CreatePost handles POST /create/. On success the client is redirected to
// the author's profile; a validation failure returns the field messages so
// the form can be re-presented. Nothing is persisted on failure.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.imageFromForm(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.posts.CreatePost(ctx, service.CreatePostInput{
		AuthorID:  userID,
		Text:      form.Text,
		GroupSlug: form.Group,
		Image:     image,
	})
	if err != nil {
		s.removeUpload(image)
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Redirect("/profile/"+post.Author.Username+"/", fiber.StatusSeeOther)
}

// EditPostForm handles GET /posts/:id/edit/ — the current post plus group
// choices. A non-author is sent back to the read view instead of an error.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.posts.PostDetail(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if detail.Post.AuthorID != userID {
		return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
	}

	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"post": detail.Post, "groups": groups})
}

// EditPost handles POST /posts/:id/edit/. The author's edit is applied and
// redirected to the detail view; anyone else is redirected there without any
// change being made.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Resolve authorship before touching the body or the upload: a
	// non-author is sent back to the read view no matter what they posted.
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if post.AuthorID != userID {
		return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
	}

	var form postForm
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.imageFromForm(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	_, err = s.posts.EditPost(ctx, service.EditPostInput{
		PrincipalID: userID,
		PostID:      id,
		Text:        form.Text,
		GroupSlug:   form.Group,
		Image:       image,
	})
	if err != nil {
		s.removeUpload(image)
		if isForbidden(err) {
			return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
}

// AddComment handles POST /posts/:id/comment/ and redirects back to the
// post's detail view.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form struct {
		Text string `json:"text" form:"text"`
	}
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.comments.AddComment(ctx, service.CreateCommentInput{
		AuthorID: userID,
		PostID:   id,
		Text:     form.Text,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
}

package server

import (
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// the app's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it
// writes a 400 JSON response and returns errResponseWritten; callers should
// check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError translates an AppError code into an HTTP status.
// FORBIDDEN is not handled here: for post edits it becomes a redirect, which
// the edit handlers deal with explicitly.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		}
	}
	return fiber.StatusInternalServerError
}

// isForbidden reports whether err is an authorization refusal.
func isForbidden(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "FORBIDDEN"
}

// postForm is the create/edit post payload, accepted as JSON or form fields.
type postForm struct {
	Text  string `json:"text" form:"text"`
	Group string `json:"group" form:"group"`
}

// saveUpload stores an uploaded image in the media root under posts/ with a
// generated filename and returns the stored path ("posts/<filename>").
func (s *Server) saveUpload(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(fh.Filename)
	name := uuid.New().String() + ext
	rel := path.Join("posts", name)

	dst := filepath.Join(s.config.MediaRoot, "posts", name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := c.SaveFile(fh, dst); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

// imageFromForm returns the stored path of an uploaded "image" file, or ""
// when the request carries none. Callers that reject the accompanying write
// must discard the stored file with removeUpload.
func (s *Server) imageFromForm(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", nil
	}
	return s.saveUpload(c, fh)
}

// removeUpload deletes a stored upload so a rejected post write leaves no
// orphan file in the media area.
func (s *Server) removeUpload(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.config.MediaRoot, filepath.FromSlash(rel)))
}

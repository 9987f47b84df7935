package server

import "github.com/gofiber/fiber/v2"

// AboutAuthor handles GET /about/author/ — static project information.
func (s *Server) AboutAuthor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "About the author",
		"body":  "Quill is a small publishing platform built as a learning project.",
	})
}

// AboutTech handles GET /about/tech/ — the stack behind the service.
func (s *Server) AboutTech(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "Technologies",
		"items": []string{"Go", "Fiber", "GORM", "PostgreSQL", "Redis"},
	})
}

package server

import (
	"io"

	"ticketx/internal/models"

	"github.com/gofiber/fiber/v2"
)

// readUploadedFile pulls the multipart "file" field out of the request.
func readUploadedFile(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", models.NewValidationError("No file uploaded")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return content, fileHeader.Header.Get("Content-Type"), nil
}

// UploadImage handles POST /api/uploads. The returned URL can be attached
// to a post as its image.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	content, contentType, err := readUploadedFile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	url, err := s.uploads.Save(content, contentType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

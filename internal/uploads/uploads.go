// Package uploads stores user-submitted images (avatars and post images)
// on local disk and validates that they really are images.
package uploads

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the accepted formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"ticketx/internal/models"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxUploadSizeBytes = 10 << 20 // 10MB

// Store writes validated images under a base directory and serves them back
// by URL path.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates content as an image and writes it under a random name,
// returning the URL path the file is served at. The extension comes from
// the decoded format, not the client-supplied filename.
func (s *Store) Save(content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if len(content) > maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", maxUploadSizeBytes>>20))
	}

	detected := http.DetectContentType(content)
	if !isAllowedImageMIME(detected) {
		return "", models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(contentType); strings.HasPrefix(provided, "image/") && !isAllowedImageMIME(provided) {
		return "", models.NewValidationError("Invalid image type")
	}

	// DecodeConfig parses the header without decoding pixels, enough to
	// reject non-images that spoofed the sniffed MIME type.
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	name := uuid.NewString() + "." + extensionFor(format)
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/uploads/" + name, nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func extensionFor(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "jpg"
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	default:
		return "bin"
	}
}

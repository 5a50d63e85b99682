package service

import (
	"bytes"
	"image"
	"net/http"
	"strings"

	// Register decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"vireo/internal/models"
)

// DetectMediaType classifies an upload by sniffing its leading bytes.
// The result is stored on the post, so renderers never have to guess from
// the file URL.
func DetectMediaType(data []byte) models.MediaType {
	ct := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(ct, "video/"):
		return models.MediaTypeVideo
	default:
		return models.MediaTypeOther
	}
}

// validateImage verifies that bytes sniffed as an image actually decode.
// Truncated or corrupt files are rejected before they reach the blob store.
func validateImage(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return models.NewValidationError("File is not a valid image")
	}
	return nil
}

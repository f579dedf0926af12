package usecases

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/orris-inc/modgate/internal/shared/errors"
)

// ContentTypeText is the only content_type accepted by the text endpoint.
const ContentTypeText = "text"

// TextValidator bounds the trimmed length of a text submission, in characters.
type TextValidator struct {
	MinLength int
	MaxLength int
}

func (v TextValidator) Validate(text, contentType string) error {
	if contentType != "" && contentType != ContentTypeText {
		return errors.NewValidationError(fmt.Sprintf("content_type must be '%s'", ContentTypeText), "got "+contentType)
	}
	if text == "" {
		return errors.NewValidationError("Text content is required")
	}

	length := utf8.RuneCountInString(strings.TrimSpace(text))
	if length < v.MinLength {
		return errors.NewValidationError(fmt.Sprintf("Text content must be at least %d characters", v.MinLength))
	}
	if length > v.MaxLength {
		return errors.NewValidationError(fmt.Sprintf("Text content must not exceed %d characters", v.MaxLength))
	}
	return nil
}

// ImageValidator checks an uploaded image against the upload policy. Size is
// always taken from the received bytes, never from what the client declared.
type ImageValidator struct {
	MaxSize           int64
	AllowedTypes      []string
	AllowedExtensions []string
}

func (v ImageValidator) Validate(data []byte, mediaType, filename string) error {
	size := int64(len(data))
	if size == 0 {
		return errors.NewValidationError("File is empty")
	}
	if size > v.MaxSize {
		return errors.NewValidationError(fmt.Sprintf(
			"File size (%d bytes) exceeds maximum allowed size (%d bytes)", size, v.MaxSize))
	}

	if !slices.Contains(v.AllowedTypes, normalizeMediaType(mediaType)) {
		return errors.NewValidationError(fmt.Sprintf(
			"File type '%s' is not allowed. Allowed types: %s", mediaType, strings.Join(v.AllowedTypes, ", ")))
	}

	if filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		if !slices.Contains(v.AllowedExtensions, ext) {
			return errors.NewValidationError(fmt.Sprintf(
				"File extension '%s' is not allowed. Allowed extensions: %s", ext, strings.Join(v.AllowedExtensions, ", ")))
		}
	}

	detected := mimetype.Detect(data)
	if !v.detectedAllowed(detected) {
		return errors.NewValidationError(
			"File content does not match an allowed image type",
			"detected "+detected.String(),
		)
	}

	return nil
}

func (v ImageValidator) detectedAllowed(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if slices.Contains(v.AllowedTypes, normalizeMediaType(m.String())) {
			return true
		}
	}
	return false
}

// normalizeMediaType drops parameters and case from a media type.
func normalizeMediaType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

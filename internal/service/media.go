package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/msomdec/carousel-admin/internal/domain"
)

// DefaultMaxUploadBytes is the upload size limit when none is configured.
const DefaultMaxUploadBytes = 5 * 1024 * 1024 // 5MB

// DefaultAllowedContentTypes lists the MIME types accepted when none are configured.
var DefaultAllowedContentTypes = []string{"image/jpeg", "image/png", "video/mp4"}

// MediaValidator decides whether an upload may be stored. It trusts the
// declared content type; callers wanting stronger guarantees must sniff the
// bytes themselves before calling.
type MediaValidator struct {
	allowed  []string
	maxBytes int64
}

// NewMediaValidator creates a validator. An empty allow-list or non-positive
// limit falls back to the defaults.
func NewMediaValidator(allowed []string, maxBytes int64) *MediaValidator {
	if len(allowed) == 0 {
		allowed = DefaultAllowedContentTypes
	}
	normalized := make([]string, 0, len(allowed))
	for _, ct := range allowed {
		if ct = normalizeContentType(ct); ct != "" {
			normalized = append(normalized, ct)
		}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &MediaValidator{allowed: normalized, maxBytes: maxBytes}
}

// MaxBytes returns the configured size limit.
func (v *MediaValidator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate returns the media kind of an acceptable upload, or
// ErrUnsupportedMediaType / ErrPayloadTooLarge.
func (v *MediaValidator) Validate(contentType string, size int64) (domain.MediaKind, error) {
	ct := normalizeContentType(contentType)
	if !slices.Contains(v.allowed, ct) {
		return domain.MediaKindUnknown, fmt.Errorf("%w: %q is not accepted", domain.ErrUnsupportedMediaType, contentType)
	}

	kind := domain.MediaKindOf(ct)
	if kind == domain.MediaKindUnknown {
		return domain.MediaKindUnknown, fmt.Errorf("%w: %q is neither image nor video", domain.ErrUnsupportedMediaType, contentType)
	}

	if size > v.maxBytes {
		return domain.MediaKindUnknown, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", domain.ErrPayloadTooLarge, size, v.maxBytes)
	}

	return kind, nil
}

// normalizeContentType lowercases the type and strips parameters such as
// "; charset=binary".
func normalizeContentType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

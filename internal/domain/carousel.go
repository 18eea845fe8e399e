package domain

import (
	"context"
	"strings"
)

// MediaKind is the coarse category of an accepted upload.
type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindUnknown MediaKind = ""
)

// MediaKindOf derives the category from a MIME type such as "image/png".
func MediaKindOf(contentType string) MediaKind {
	major, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), "/")
	switch major {
	case "image":
		return MediaKindImage
	case "video":
		return MediaKindVideo
	default:
		return MediaKindUnknown
	}
}

// CarouselItem is one entry of the carousel. Its position in the document is
// its display order and the only key used for removal.
type CarouselItem struct {
	Reference   string    // Locator of the stored blob, e.g. "/uploads/1712-cat.png"
	ContentType string    // Declared MIME type, persisted verbatim
	Kind        MediaKind // Derived from ContentType
	Caption     string
}

// Upload is a candidate media file as received from the form handler.
type Upload struct {
	Payload      []byte
	OriginalName string
	ContentType  string // Declared by the client, not sniffed
	Size         int64  // Declared size; the larger of Size and len(Payload) is validated
	Caption      string
}

// BlobStore persists raw media payloads under store-assigned names.
type BlobStore interface {
	// Put stores data and returns its reference. Failures wrap ErrStoreWrite.
	Put(ctx context.Context, data []byte, originalName string) (string, error)
	// Get returns the stored bytes, or ErrNotFound.
	Get(ctx context.Context, reference string) ([]byte, error)
	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, reference string) error
	Exists(ctx context.Context, reference string) (bool, error)
}

// CarouselStore loads and saves the whole carousel document as one unit.
type CarouselStore interface {
	// Load returns the items in display order, an empty slice when nothing
	// has been persisted yet, or ErrCorruptDocument.
	Load(ctx context.Context) ([]CarouselItem, error)
	// Save replaces the persisted document. Failures wrap ErrStoreWrite.
	Save(ctx context.Context, items []CarouselItem) error
}

// Authenticator checks admin credentials.
type Authenticator interface {
	Verify(username, password string) bool
}

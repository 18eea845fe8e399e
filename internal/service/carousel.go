package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/msomdec/carousel-admin/internal/domain"
)

// CarouselService is the only writer of the carousel document and the blob
// store. Every mutation is a load-modify-save of the whole document.
//
// Mutations are serialized by an in-process mutex. Two processes sharing the
// same storage can still lose each other's updates.
type CarouselService struct {
	validator *MediaValidator
	blobs     domain.BlobStore
	items     domain.CarouselStore

	mu sync.Mutex
}

// NewCarouselService creates a new CarouselService.
func NewCarouselService(validator *MediaValidator, blobs domain.BlobStore, items domain.CarouselStore) *CarouselService {
	return &CarouselService{validator: validator, blobs: blobs, items: items}
}

// AddItem validates the upload, stores its payload and appends it to the end
// of the carousel.
func (s *CarouselService) AddItem(ctx context.Context, up domain.Upload) (*domain.CarouselItem, error) {
	size := max(up.Size, int64(len(up.Payload)))

	kind, err := s.validator.Validate(up.ContentType, size)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Load before writing the blob so a corrupt document does not leave an orphan.
	items, err := s.items.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load carousel: %w", err)
	}

	ref, err := s.blobs.Put(ctx, up.Payload, up.OriginalName)
	if err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}

	item := domain.CarouselItem{
		Reference:   ref,
		ContentType: up.ContentType,
		Kind:        kind,
		Caption:     up.Caption,
	}

	if err := s.items.Save(ctx, append(items, item)); err != nil {
		// Best-effort cleanup of the stored blob.
		if derr := s.blobs.Delete(ctx, ref); derr != nil {
			slog.Warn("orphan blob left after failed save", "reference", ref, "error", derr)
		}
		return nil, fmt.Errorf("save carousel: %w", err)
	}

	return &item, nil
}

// RemoveItem deletes the item at position and its blob. Positions outside
// [0, len) are ignored without error; later items shift down by one.
func (s *CarouselService) RemoveItem(ctx context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items.Load(ctx)
	if err != nil {
		return fmt.Errorf("load carousel: %w", err)
	}

	if position < 0 || position >= len(items) {
		return nil
	}

	// Delete stored bytes first, then metadata.
	if err := s.blobs.Delete(ctx, items[position].Reference); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if err := s.items.Save(ctx, slices.Delete(items, position, position+1)); err != nil {
		return fmt.Errorf("save carousel: %w", err)
	}

	return nil
}

// ListItems returns the carousel in display order.
func (s *CarouselService) ListItems(ctx context.Context) ([]domain.CarouselItem, error) {
	return s.items.Load(ctx)
}

// Media returns the stored bytes of a carousel item and the content type to
// serve them with. Blobs not referenced by the carousel are not served.
func (s *CarouselService) Media(ctx context.Context, reference string) ([]byte, string, error) {
	items, err := s.items.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load carousel: %w", err)
	}

	i := slices.IndexFunc(items, func(it domain.CarouselItem) bool { return it.Reference == reference })
	if i < 0 {
		return nil, "", domain.ErrNotFound
	}

	data, err := s.blobs.Get(ctx, reference)
	if err != nil {
		return nil, "", err
	}

	// A hand-edited document may carry a type uploads are never allowed.
	contentType := items[i].ContentType
	if _, err := s.validator.Validate(contentType, 0); err != nil {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// MaxUploadBytes exposes the validator's size limit to the upload handler.
func (s *CarouselService) MaxUploadBytes() int64 {
	return s.validator.MaxBytes()
}

package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/repository/layout"
)

// DocumentStore implements domain.CarouselStore as one JSON file.
type DocumentStore struct {
	path string
}

// NewDocumentStore returns a store backed by the file at path.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

func (s *DocumentStore) Load(_ context.Context) ([]domain.CarouselItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.CarouselItem{}, nil
		}
		return nil, fmt.Errorf("read carousel document: %w", err)
	}
	return layout.DecodeDocument(data)
}

// Save writes the document to a temporary file next to the target and
// renames it into place, so readers never observe a partial document.
func (s *DocumentStore) Save(_ context.Context, items []domain.CarouselItem) error {
	data, err := layout.EncodeDocument(items)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create document dir: %w", domain.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".carousel-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrStoreWrite, err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: chmod temp file: %w", domain.ErrStoreWrite, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write document: %w", domain.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %w", domain.ErrStoreWrite, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace document: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

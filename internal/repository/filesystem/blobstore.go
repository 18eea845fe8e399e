// Package filesystem stores carousel blobs in one flat directory and the
// carousel document in a single JSON file.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/repository/layout"
)

// BlobStore implements domain.BlobStore on the local filesystem.
type BlobStore struct {
	root  string
	names *layout.Sequencer

	once    sync.Once
	rootErr error
}

// NewBlobStore returns a store rooted at root. The directory is created on
// first use.
func NewBlobStore(root string) *BlobStore {
	return &BlobStore{root: root, names: layout.NewSequencer()}
}

// Root returns the storage directory.
func (s *BlobStore) Root() string {
	return s.root
}

func (s *BlobStore) ensureRoot() error {
	s.once.Do(func() {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			s.rootErr = fmt.Errorf("create upload root: %w", err)
		}
	})
	return s.rootErr
}

func (s *BlobStore) Put(_ context.Context, data []byte, originalName string) (string, error) {
	if err := s.ensureRoot(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}

	name := s.names.NewName(originalName)
	path := filepath.Join(s.root, name)

	// O_EXCL so a name collision with a file left by another process fails
	// instead of overwriting it.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create blob %s: %w", domain.ErrStoreWrite, name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: write blob %s: %w", domain.ErrStoreWrite, name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: close blob %s: %w", domain.ErrStoreWrite, name, err)
	}

	return layout.Reference(name), nil
}

func (s *BlobStore) Get(_ context.Context, reference string) ([]byte, error) {
	path, ok := s.blobPath(reference)
	if !ok {
		return nil, domain.ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *BlobStore) Delete(_ context.Context, reference string) error {
	path, ok := s.blobPath(reference)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete blob: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

func (s *BlobStore) Exists(_ context.Context, reference string) (bool, error) {
	path, ok := s.blobPath(reference)
	if !ok {
		return false, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// blobPath resolves a reference to a file directly under the root.
func (s *BlobStore) blobPath(reference string) (string, bool) {
	name := layout.StoredName(reference)
	if name == "" {
		return "", false
	}
	return filepath.Join(s.root, name), true
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/repository/layout"
)

// BlobStore implements domain.BlobStore using SQLite BLOBs. Rows are keyed by
// the same stored name the filesystem backend would use on disk.
type BlobStore struct {
	db    *sql.DB
	names *layout.Sequencer
}

func (s *BlobStore) Put(ctx context.Context, data []byte, originalName string) (string, error) {
	if data == nil {
		data = []byte{}
	}
	name := s.names.NewName(originalName)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO file_blobs (name, data, size, created_at) VALUES (?, ?, ?, ?)",
		name, data, len(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: save file blob: %w", domain.ErrStoreWrite, err)
	}
	return layout.Reference(name), nil
}

func (s *BlobStore) Get(ctx context.Context, reference string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM file_blobs WHERE name = ?", layout.StoredName(reference),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get file blob: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (s *BlobStore) Delete(ctx context.Context, reference string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM file_blobs WHERE name = ?", layout.StoredName(reference),
	)
	if err != nil {
		return fmt.Errorf("%w: delete file blob: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

func (s *BlobStore) Exists(ctx context.Context, reference string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM file_blobs WHERE name = ?", layout.StoredName(reference),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check file blob: %w", err)
	}
	return n > 0, nil
}

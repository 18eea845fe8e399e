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

// DocumentStore implements domain.CarouselStore by keeping the JSON document
// in a single row, replaced by one statement on every save.
type DocumentStore struct {
	db *sql.DB
}

func (s *DocumentStore) Load(ctx context.Context) ([]domain.CarouselItem, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM carousel_document WHERE id = 1",
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.CarouselItem{}, nil
		}
		return nil, fmt.Errorf("load carousel document: %w", err)
	}
	return layout.DecodeDocument([]byte(body))
}

func (s *DocumentStore) Save(ctx context.Context, items []domain.CarouselItem) error {
	body, err := layout.EncodeDocument(items)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO carousel_document (id, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: save carousel document: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/carousel-admin/internal/repository/layout"
	"github.com/msomdec/carousel-admin/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection and hands out the carousel stores built on it.
type DB struct {
	db    *sql.DB
	names *layout.Sequencer
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// A single connection serializes writers, which is all one admin needs.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{db: db, names: layout.NewSequencer()}, nil
}

// Migrate applies the embedded schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.db)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Blobs returns the BLOB-backed media store.
func (d *DB) Blobs() *BlobStore {
	return &BlobStore{db: d.db, names: d.names}
}

// Documents returns the single-row carousel document store.
func (d *DB) Documents() *DocumentStore {
	return &DocumentStore{db: d.db}
}

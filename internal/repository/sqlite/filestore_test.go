package sqlite_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/carousel-admin/internal/domain"
)

func TestBlobStore_PutGetDelete(t *testing.T) {
	db := newTestDB(t)
	blobs := db.Blobs()
	ctx := context.Background()

	data := []byte("fake mp4 bytes")
	ref, err := blobs.Put(ctx, data, "my clip.mp4")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(ref, "/uploads/") || !strings.HasSuffix(ref, "-my_clip.mp4") {
		t.Fatalf("unexpected reference %q", ref)
	}

	got, err := blobs.Get(ctx, ref)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("expected %q, got %q", data, got)
	}

	exists, err := blobs.Exists(ctx, ref)
	if err != nil || !exists {
		t.Fatalf("expected blob to exist, exists=%v err=%v", exists, err)
	}

	if err := blobs.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := blobs.Delete(ctx, ref); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}

	if _, err := blobs.Get(ctx, ref); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	exists, err = blobs.Exists(ctx, ref)
	if err != nil || exists {
		t.Fatalf("expected blob to be gone, exists=%v err=%v", exists, err)
	}
}

func TestBlobStore_EmptyPayload(t *testing.T) {
	db := newTestDB(t)
	blobs := db.Blobs()
	ctx := context.Background()

	ref, err := blobs.Put(ctx, nil, "empty.png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := blobs.Get(ctx, ref)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(got))
	}
}

func TestBlobStore_ReferenceDirectoryIgnored(t *testing.T) {
	db := newTestDB(t)
	blobs := db.Blobs()
	ctx := context.Background()

	ref, err := blobs.Put(ctx, []byte("x"), "a.png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Only the basename identifies the blob.
	name := ref[strings.LastIndex(ref, "/")+1:]
	exists, err := blobs.Exists(ctx, "/somewhere/else/"+name)
	if err != nil || !exists {
		t.Fatalf("expected lookup by basename, exists=%v err=%v", exists, err)
	}
}

func TestBlobStore_PutOnClosedDB(t *testing.T) {
	db := newTestDB(t)
	blobs := db.Blobs()
	db.Close()

	_, err := blobs.Put(context.Background(), []byte("x"), "a.png")
	if !errors.Is(err, domain.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
}

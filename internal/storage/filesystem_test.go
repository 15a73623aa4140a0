package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()

	dir := t.TempDir()
	sys, err := storage.NewFilesystem(&config.StorageConfig{BasePath: dir}, testLogger())
	if err != nil {
		t.Fatalf("NewFilesystem() error: %v", err)
	}
	return sys, dir
}

func TestStore_Retrieve(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	data := []byte("test content")
	if err := sys.Store(ctx, "files/owner/test.png", "image/png", data); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	retrieved, err := sys.Retrieve(ctx, "files/owner/test.png")
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}

	if string(retrieved) != string(data) {
		t.Errorf("Expected %q, got %q", data, retrieved)
	}
}

func TestStore_Overwrite(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "key.txt", "text/plain", []byte("first")); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if err := sys.Store(ctx, "key.txt", "text/plain", []byte("second")); err != nil {
		t.Fatalf("Store() overwrite error: %v", err)
	}

	data, err := sys.Retrieve(ctx, "key.txt")
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected %q, got %q", "second", data)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys, _ := newFilesystem(t)

	_, err := sys.Retrieve(context.Background(), "missing.txt")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "files/owner/doc.pdf", "application/pdf", []byte("pdf")); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	if err := sys.Delete(ctx, "files/owner/doc.pdf"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	// Deleting a missing key succeeds.
	if err := sys.Delete(ctx, "files/owner/doc.pdf"); err != nil {
		t.Errorf("Second Delete() should be nil, got %v", err)
	}

	exists, err := sys.Validate(ctx, "files/owner/doc.pdf")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if exists {
		t.Error("Key should not exist after delete")
	}
}

func TestDelete_RemovesEmptyDirectory(t *testing.T) {
	sys, dir := newFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "files/owner/only.txt", "text/plain", []byte("x")); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if err := sys.Delete(ctx, "files/owner/only.txt"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "files", "owner")); !errors.Is(err, os.ErrNotExist) {
		t.Error("Empty directory should be cleaned up after delete")
	}
}

func TestValidate(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	exists, err := sys.Validate(ctx, "absent.txt")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if exists {
		t.Error("Expected false for absent key")
	}

	if err := sys.Store(ctx, "present.txt", "text/plain", []byte("x")); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	exists, err = sys.Validate(ctx, "present.txt")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !exists {
		t.Error("Expected true for present key")
	}
}

func TestInvalidKeys(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	keys := []string{"", "../escape.txt", "/absolute.txt", "a/../../escape.txt"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, "text/plain", []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) expected ErrInvalidKey, got %v", key, err)
			}
			if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Retrieve(%q) expected ErrInvalidKey, got %v", key, err)
			}
		})
	}
}

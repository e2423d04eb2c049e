package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

func TestLocalImageStore_Upload(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	content := []byte{0x89, 0x50, 0x4e, 0x47}
	path, err := store.Upload(context.Background(), ports.ImageUpload{
		Content:     content,
		ContentType: "image/png",
		DesiredName: "alice_smith_photo",
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if !strings.HasPrefix(path, filepath.Join(root, "user_imgs")) {
		t.Fatalf("unexpected path: %q", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected .png extension, got %q", path)
	}
	if !strings.Contains(filepath.Base(path), "alice_smith_photo_") {
		t.Fatalf("expected desired name in file name, got %q", path)
	}

	stored, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatalf("stored content differs from upload")
	}
}

func TestLocalImageStore_Upload_JpegExtension(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	for _, contentType := range []string{"image/jpg", "image/jpeg"} {
		path, err := store.Upload(context.Background(), ports.ImageUpload{
			Content:     []byte{0xff, 0xd8},
			ContentType: contentType,
			DesiredName: "photo",
		})
		if err != nil {
			t.Fatalf("Upload(%s) returned error: %v", contentType, err)
		}
		if !strings.HasSuffix(path, ".jpg") {
			t.Fatalf("Upload(%s): expected .jpg extension, got %q", contentType, path)
		}
	}
}

func TestLocalImageStore_Upload_UnsupportedType(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	_, err := store.Upload(context.Background(), ports.ImageUpload{
		Content:     []byte("GIF89a"),
		ContentType: "image/gif",
		DesiredName: "photo",
	})
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestLocalImageStore_Upload_TooLarge(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	_, err := store.Upload(context.Background(), ports.ImageUpload{
		Content:     make([]byte, domain.MaxImageSize+1),
		ContentType: "image/png",
		DesiredName: "photo",
	})
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestLocalImageStore_Fetch_Roundtrip(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())
	content := []byte{0x89, 0x50, 0x4e, 0x47}

	path, err := store.Upload(context.Background(), ports.ImageUpload{
		Content:     content,
		ContentType: "image/png",
		DesiredName: "photo",
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	file, err := store.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if file.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %q", file.ContentType)
	}
	if !bytes.Equal(file.Content, content) {
		t.Fatalf("fetched content differs from upload")
	}
}

func TestLocalImageStore_Fetch_Missing(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	_, err := store.Fetch(context.Background(), filepath.Join(root, "user_imgs", "ghost.png"))
	if !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestLocalImageStore_Fetch_NonImagePath(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	_, err := store.Fetch(context.Background(), filepath.Join(root, "user_imgs", "notes.txt"))
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestLocalImageStore_Fetch_OutsideStore(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	outside := filepath.Join(root, "user_imgs", "..", "..", "secret.png")
	if _, err := store.Fetch(context.Background(), outside); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound for path outside the store, got %v", err)
	}
}

func TestLocalImageStore_Upload_UniqueNames(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())
	upload := ports.ImageUpload{
		Content:     []byte{0x89, 0x50},
		ContentType: "image/png",
		DesiredName: "photo",
	}

	first, err := store.Upload(context.Background(), upload)
	if err != nil {
		t.Fatalf("first Upload returned error: %v", err)
	}
	second, err := store.Upload(context.Background(), upload)
	if err != nil {
		t.Fatalf("second Upload returned error: %v", err)
	}
	if first == second {
		t.Fatalf("repeated uploads produced the same path: %q", first)
	}
}

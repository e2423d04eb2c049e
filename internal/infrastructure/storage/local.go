// Package storage implements profile-image persistence on the local
// filesystem. Production deployments would swap this for an object-store
// implementation behind the same port.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// imageExtensions maps accepted content types to stored file extensions.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpg",
}

// LocalImageStore writes profile images under a root directory and returns
// the stored path. Content type and size are validated before any bytes are
// written.
type LocalImageStore struct {
	root string
}

func NewLocalImageStore(root string) *LocalImageStore {
	return &LocalImageStore{root: root}
}

// Upload validates and stores an image, returning its path. The stored name
// is the caller's desired name suffixed with a UUID so repeated uploads for
// the same user never collide.
func (s *LocalImageStore) Upload(_ context.Context, upload ports.ImageUpload) (string, error) {
	ext, ok := imageExtensions[upload.ContentType]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if len(upload.Content) > domain.MaxImageSize {
		return "", domain.ErrFileTooLarge
	}

	name := fmt.Sprintf("%s_%s%s", upload.DesiredName, uuid.NewString(), ext)
	path := filepath.Join(s.root, "user_imgs", name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if err := os.WriteFile(path, upload.Content, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	return path, nil
}

// imageContentTypes maps stored file extensions back to the content type the
// file is served with.
var imageContentTypes = map[string]string{
	".png": "image/png",
	".jpg": "image/jpeg",
}

// Fetch reads a stored image back by the path Upload returned. The extension
// decides the content type; paths outside the store's image directory are
// rejected as non-image paths.
func (s *LocalImageStore) Fetch(_ context.Context, path string) (ports.ImageFile, error) {
	contentType, ok := imageContentTypes[filepath.Ext(path)]
	if !ok {
		return ports.ImageFile{}, domain.ErrUnsupportedFileType
	}

	clean := filepath.Clean(path)
	if !strings.HasPrefix(clean, filepath.Join(s.root, "user_imgs")+string(filepath.Separator)) {
		return ports.ImageFile{}, domain.ErrImageNotFound
	}

	content, err := os.ReadFile(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.ImageFile{}, domain.ErrImageNotFound
		}
		return ports.ImageFile{}, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	return ports.ImageFile{Content: content, ContentType: contentType}, nil
}

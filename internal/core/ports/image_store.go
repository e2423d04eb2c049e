package ports

import "context"

// ImageUpload describes an incoming profile image.
type ImageUpload struct {
	Content     []byte
	ContentType string
	// DesiredName is the base name to store the file under, without
	// extension; the store derives the extension from the content type.
	DesiredName string
}

// ImageFile is a stored profile image retrieved for serving.
type ImageFile struct {
	Content     []byte
	ContentType string
}

// ImageStore persists profile images and serves them back by stored path.
// Upload validates content type and size before writing and fails with
// domain.ErrUnsupportedFileType or domain.ErrFileTooLarge. Fetch fails with
// domain.ErrUnsupportedFileType for a non-image path and
// domain.ErrImageNotFound when nothing is stored at the path.
type ImageStore interface {
	Upload(ctx context.Context, upload ImageUpload) (string, error)
	Fetch(ctx context.Context, path string) (ImageFile, error)
}

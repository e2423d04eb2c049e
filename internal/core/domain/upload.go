package domain

import "errors"

// Profile image constraints, checked by the image store before any bytes are
// written.
const (
	MaxImageSize = 2_000_000 // bytes
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("contents of the file too large")
	ErrUploadFailed        = errors.New("the file could not be uploaded")
	ErrImageNotFound       = errors.New("image not found")
)

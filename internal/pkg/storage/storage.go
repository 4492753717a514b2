package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

type FileStorage interface {
	// Upload replaces the file at path with the content of file.
	// Readers never observe a partially written file.
	Upload(ctx context.Context, file io.Reader, path string) error

	// Download opens a file; a missing file returns ErrFileNotFound
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}

package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/storage"
)

// DefaultFilename is the document name used when none is configured.
const DefaultFilename = "databaseghe1.json"

type repository struct {
	files storage.FileStorage
	name  string
}

// NewRepository keeps the document as one JSON file inside files.
func NewRepository(files storage.FileStorage, name string) store.Repository {
	if name == "" {
		name = DefaultFilename
	}
	return &repository{files: files, name: name}
}

func (r *repository) Load(ctx context.Context) (*store.Document, error) {
	rc, err := r.files.Download(ctx, r.name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.name, err)
	}
	return store.Decode(data)
}

func (r *repository) Save(ctx context.Context, doc *store.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return r.files.Upload(ctx, bytes.NewReader(data), r.name)
}

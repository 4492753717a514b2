package store

import "context"

// Repository loads and saves the whole document.
type Repository interface {
	// Load returns ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

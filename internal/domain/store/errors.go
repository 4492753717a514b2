package store

import "errors"

var (
	ErrNotFound        = errors.New("store document not found")
	ErrUnknownSchema   = errors.New("unknown store document schema")
	ErrCorruptDocument = errors.New("store document is corrupt")
)

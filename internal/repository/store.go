package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
)

// Store runs units of work against the whole document.
// Every unit loads a fresh copy, so a failed unit never leaves shared state behind.
type Store struct {
	mu           sync.Mutex
	repo         store.Repository
	defaultRates payroll.RateTable
}

func NewStore(repo store.Repository, defaultRates payroll.RateTable) *Store {
	if defaultRates.IsEmpty() {
		defaultRates = payroll.DefaultRateTable()
	}
	return &Store{repo: repo, defaultRates: defaultRates}
}

func (s *Store) load(ctx context.Context) (*store.Document, error) {
	doc, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		doc = store.NewDocument()
	case err != nil:
		return nil, fmt.Errorf("load store: %w", err)
	}
	if doc.Rates.IsEmpty() {
		doc.Rates = s.defaultRates.Clone()
	}
	return doc, nil
}

// View runs fn on a freshly loaded document. Changes made by fn are discarded.
func (s *Store) View(ctx context.Context, fn func(doc *store.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, runs fn and saves the result.
// Nothing is saved when fn returns an error.
func (s *Store) Update(ctx context.Context, fn func(doc *store.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		slog.Error("failed to save store", "error", err)
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

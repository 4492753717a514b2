package backup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/storage"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
)

const snapshotDir = "backups"

type BackupService interface {
	// Snapshot writes the current document to backups/<prefix>-<YYYY-MM-DD>.json.
	// A second snapshot on the same day replaces the first.
	Snapshot(ctx context.Context, now time.Time) (string, error)
}

type backupServiceImpl struct {
	store   *repository.Store
	storage storage.FileStorage
	prefix  string
}

func NewBackupService(st *repository.Store, files storage.FileStorage, prefix string) BackupService {
	if prefix == "" {
		prefix = "snapshot"
	}
	return &backupServiceImpl{
		store:   st,
		storage: files,
		prefix:  prefix,
	}
}

func (s *backupServiceImpl) Snapshot(ctx context.Context, now time.Time) (string, error) {
	var data []byte
	err := s.store.View(ctx, func(doc *store.Document) error {
		var err error
		data, err = store.Encode(doc)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	target := path.Join(snapshotDir, fmt.Sprintf("%s-%s.json", s.prefix, now.Format("2006-01-02")))
	if err := s.storage.Upload(ctx, bytes.NewReader(data), target); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	slog.Info("Snapshot written", "path", target, "bytes", len(data))
	return target, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const documentID = 1

// The body column is json rather than jsonb: jsonb does not keep object key order.
const migrateDocuments = `
CREATE TABLE IF NOT EXISTS store_documents (
    id SMALLINT PRIMARY KEY,
    body JSON NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the document table.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, migrateDocuments); err != nil {
		return fmt.Errorf("migrate store_documents: %w", err)
	}
	return nil
}

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) store.Repository {
	return &documentRepositoryImpl{db: db}
}

func (r *documentRepositoryImpl) Load(ctx context.Context) (*store.Document, error) {
	q := GetQuerier(ctx, r.db)

	var body string
	err := q.QueryRow(ctx, `SELECT body::text FROM store_documents WHERE id = $1`, documentID).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return store.Decode([]byte(body))
}

func (r *documentRepositoryImpl) Save(ctx context.Context, doc *store.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO store_documents (id, body, updated_at)
			VALUES ($1, $2::json, now())
			ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
			documentID, string(data))
		if err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		return nil
	})
}

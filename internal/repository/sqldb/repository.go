package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/database"
)

const documentID = 1

var migrations = map[database.Dialect]string{
	database.DialectSQLite: `
CREATE TABLE IF NOT EXISTS store_documents (
    id INTEGER PRIMARY KEY,
    body TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	database.DialectMySQL: `
CREATE TABLE IF NOT EXISTS store_documents (
    id INT PRIMARY KEY,
    body LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);`,
}

var upserts = map[database.Dialect]string{
	database.DialectSQLite: `
INSERT INTO store_documents (id, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
	database.DialectMySQL: `
INSERT INTO store_documents (id, body) VALUES (?, ?)
ON DUPLICATE KEY UPDATE body = VALUES(body)`,
}

// Migrate creates the document table.
func Migrate(ctx context.Context, db *database.SQLDB) error {
	stmt, ok := migrations[db.Dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", db.Dialect)
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate store_documents: %w", err)
	}
	return nil
}

type repository struct {
	db *database.SQLDB
}

// NewRepository stores the document as a single row. Run Migrate first.
func NewRepository(db *database.SQLDB) store.Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context) (*store.Document, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM store_documents WHERE id = ?`, documentID).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return store.Decode([]byte(body))
}

func (r *repository) Save(ctx context.Context, doc *store.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return r.db.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upserts[r.db.Dialect], documentID, string(data)); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		return nil
	})
}

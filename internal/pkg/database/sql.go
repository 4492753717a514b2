package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names a database/sql driver.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite3"
	DialectMySQL  Dialect = "mysql"
)

// SQLDB is a database/sql handle that remembers its dialect.
type SQLDB struct {
	*sql.DB
	Dialect Dialect
}

// NewSQLiteDB opens (and creates) a SQLite file.
func NewSQLiteDB(ctx context.Context, path string) (*SQLDB, error) {
	db, err := sql.Open(string(DialectSQLite), fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLDB{DB: db, Dialect: DialectSQLite}, nil
}

// NewMySQLDB connects with a go-sql-driver DSN, e.g. user:pass@tcp(host:3306)/db.
func NewMySQLDB(ctx context.Context, dsn string) (*SQLDB, error) {
	db, err := sql.Open(string(DialectMySQL), dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &SQLDB{DB: db, Dialect: DialectMySQL}, nil
}

// RunInTx commits when fn succeeds and rolls back otherwise.
func (db *SQLDB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

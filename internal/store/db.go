package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// DB wraps the sqlite connection holding the assessment history
type DB struct {
	*sql.DB
}

// Open opens (or creates) the assessment database and runs migrations
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewStorageError("failed to create database directory", err)
	}

	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, errors.NewStorageError("failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewStorageError("failed to ping database", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	wrapped := &DB{DB: db}
	if err := wrapped.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return wrapped, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		supplier_id TEXT,
		supplier_name TEXT,
		predicted_risk_level TEXT NOT NULL,
		confidence REAL NOT NULL,
		risk_score REAL NOT NULL,
		risk_details TEXT NOT NULL,
		recommendations TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
	CREATE INDEX IF NOT EXISTS idx_assessments_risk_level ON assessments(predicted_risk_level);
	`

	if _, err := db.Exec(schema); err != nil {
		return errors.NewStorageError("failed to run migrations", err)
	}

	return nil
}

package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite"
)

const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key VARCHAR PRIMARY KEY,
	value VARCHAR NOT NULL
)`

// InitDB opens the database file with the given driver, creating parent
// directories and the kv table as needed. An empty path opens an in-memory
// database.
func InitDB(driver, path string) (*sql.DB, error) {
	if driver != DriverDuckDB && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	dsn := path
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else if driver == DriverSQLite {
		dsn = ":memory:"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	// in-memory databases are per connection
	if path == "" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func OpenRepository(driver, path string) (*Repository, error) {
	db, err := InitDB(driver, path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

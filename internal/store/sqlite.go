package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// LocalStore is the local persistence shim backing user-entered lists. It is
// deliberately a plain key/value surface so orchestrators never depend on the
// storage engine; last writer wins, no transactionality.
type LocalStore interface {
	// Get unmarshals the stored value for key into out and reports whether a
	// value existed.
	Get(key string, out any) (bool, error)
	Put(key string, value any) error
	Delete(key string) error
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection: the store is single-writer scratch state, and it
	// keeps an in-memory database on one connection instead of one per pool
	// entry.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS local_values (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL, -- JSON-encoded
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(key string, out any) (bool, error) {
	var encoded string
	err := s.db.QueryRow("SELECT value FROM local_values WHERE key = ?", key).Scan(&encoded)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to query value for %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(encoded), out); err != nil {
		return false, fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Put(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO local_values (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("failed to store value for %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_values WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value for %q: %w", key, err)
	}
	return nil
}

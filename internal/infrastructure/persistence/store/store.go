// Package store implements the persisted key/value store backing the
// report sequence and campaign membership mapping. Collections are stored as
// whole JSON blobs under string keys: reads fall back to an empty default
// when a key is absent, writes replace the entire collection.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/database"
)

// Collection keys. The names are part of the persisted layout.
const (
	ReportsKey   = "dreamersReports"
	CampaignsKey = "dreamersCampaigns"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

// Store is the SQL-backed key/value store.
type Store struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// New creates the store and ensures its schema exists.
func New(db *database.DB, logger *logging.ChanneledLogger) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create kv schema: %w", err)
	}
	if logger != nil {
		logger.Store().Info("Persisted store initialized")
	}
	return &Store{db: db, logger: logger}, nil
}

// Get unmarshals the JSON value stored under key into out. An absent key is
// not an error: out is left untouched so callers pre-seed their empty default.
func (s *Store) Get(key string, out any) error {
	start := time.Now()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		if s.logger != nil {
			s.logger.Store().Debug("Key absent, using empty default", "key", key, "duration", time.Since(start))
		}
		return nil
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Store().Error("Failed to read key", "key", key, "error", err.Error())
		}
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}

	if s.logger != nil {
		s.logger.Store().Debug("Key loaded", "key", key, "bytes", len(raw), "duration", time.Since(start))
	}
	return nil
}

// Set replaces the entire value stored under key with the JSON encoding of
// value. Last writer wins; there is no optimistic-concurrency check.
func (s *Store) Set(key string, value any) error {
	start := time.Now()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		if s.logger != nil {
			s.logger.Store().Error("Failed to write key", "key", key, "error", err.Error())
		}
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	if s.logger != nil {
		s.logger.Store().Debug("Key replaced", "key", key, "bytes", len(raw), "duration", time.Since(start))
	}
	return nil
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/profile-forge/internal/processor"
)

// ParseStatus is the terminal state of a parse request
type ParseStatus string

const (
	StatusParsed           ParseStatus = "parsed"
	StatusInsufficientData ParseStatus = "insufficient_data"
	StatusExtractionFailed ParseStatus = "extraction_failed"
	StatusServiceError     ParseStatus = "service_error"
)

// ParseRecord is one row of parse history
type ParseRecord struct {
	ID         string      `json:"id"`
	SourceName string      `json:"source_name"`
	Status     ParseStatus `json:"status"`
	Detail     string      `json:"detail,omitempty"`
	RecordJSON string      `json:"record_json,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// HistoryStore persists parse outcomes to SQLite
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore wraps an open database handle and ensures the schema
func NewHistoryStore(db *sql.DB) (*HistoryStore, error) {
	store := &HistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return store, nil
}

// initSchema creates the parse_history table if it doesn't exist
func (s *HistoryStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS parse_history (
		id TEXT PRIMARY KEY,
		source_name TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		record_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_parse_history_created_at ON parse_history(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordSuccess stores a completed parse with its structured record
func (s *HistoryStore) RecordSuccess(id, sourceName string, record *processor.ProfileRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO parse_history (id, source_name, status, record_json) VALUES (?, ?, ?, ?)`,
		id, sourceName, string(StatusParsed), string(recordJSON),
	)
	return err
}

// RecordFailure stores a failed parse with its failure class and detail
func (s *HistoryStore) RecordFailure(id, sourceName string, status ParseStatus, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO parse_history (id, source_name, status, detail) VALUES (?, ?, ?, ?)`,
		id, sourceName, string(status), detail,
	)
	return err
}

// Recent returns the most recent parse outcomes, newest first
func (s *HistoryStore) Recent(limit int) ([]ParseRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, source_name, status, COALESCE(detail, ''), COALESCE(record_json, ''), created_at
		 FROM parse_history ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ParseRecord
	for rows.Next() {
		var r ParseRecord
		var status string
		if err := rows.Scan(&r.ID, &r.SourceName, &status, &r.Detail, &r.RecordJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Status = ParseStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// tables holds the DDL for every event table. Each table carries the shared
// sequence and timestamp columns.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS ai_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS ai_request_events_purpose ON ai_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS ai_request_events_model ON ai_request_events (model)`,
	`CREATE TABLE IF NOT EXISTS tour_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		tour_id TEXT NOT NULL,
		action TEXT NOT NULL,
		slide_index INTEGER NOT NULL,
		slide_kind TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS tour_events_tour_id ON tour_events (tour_id)`,
}

// migrate creates missing tables and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

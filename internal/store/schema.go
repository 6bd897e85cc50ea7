package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableQuizEvents       = "quiz_events"
	tableCompletionEvents = "completion_events"
	tableAuthEvents       = "auth_events"
	tableUsers            = "users"
)

var eventTables = []string{tableQuizEvents, tableCompletionEvents, tableAuthEvents}

// Every event table shares the sequence and timestamp columns. Timestamps are
// unix milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		attempt_id TEXT NOT NULL,
		lesson_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		question_index INTEGER NOT NULL DEFAULT 0,
		option_index INTEGER NOT NULL DEFAULT -1,
		correct BOOLEAN NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_events_attempt ON quiz_events (attempt_id)`,
	`CREATE TABLE IF NOT EXISTS completion_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		lesson_id INTEGER NOT NULL,
		source TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auth_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		action TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		success BOOLEAN NOT NULL DEFAULT 0,
		status_code INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		name TEXT NOT NULL,
		number TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		address TEXT NOT NULL,
		ward_no INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// MaxLogEntries caps the activity feed.
const MaxLogEntries = 100

// CreateLog records an activity event. userID may be nil for system events.
func CreateLog(ctx context.Context, db *sql.DB, userID *string, content string) (*model.LogEntry, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO logs (user_id, content) VALUES (?, ?)`,
		userID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting log entry id: %w", err)
	}

	entry := &model.LogEntry{}
	var uid sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT id, user_id, content, created_at FROM logs WHERE id = ?`, id,
	).Scan(&entry.ID, &uid, &entry.Content, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting log entry: %w", err)
	}
	if uid.Valid {
		entry.UserID = &uid.String
	}
	return entry, nil
}

// ListLogs returns the most recent activity entries, newest first.
func ListLogs(ctx context.Context, db *sql.DB) ([]model.LogEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, content, created_at FROM logs
		 ORDER BY created_at DESC, id DESC LIMIT ?`, MaxLogEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var entry model.LogEntry
		var uid sql.NullString
		if err := rows.Scan(&entry.ID, &uid, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		if uid.Valid {
			entry.UserID = &uid.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

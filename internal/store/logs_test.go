package store

import (
	"context"
	"testing"

	"github.com/erazemk/najdeno/internal/db"
)

func TestCreateAndListLogs(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "ana@example.com")

	entry, err := CreateLog(ctx, database, &user, "posted a lost item")
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	if entry.UserID == nil || *entry.UserID != user {
		t.Errorf("unexpected log entry: %+v", entry)
	}

	if _, err := CreateLog(ctx, database, nil, "system event"); err != nil {
		t.Fatalf("CreateLog with nil user: %v", err)
	}

	entries, err := ListLogs(ctx, database)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Content != "system event" {
		t.Errorf("expected newest entry first, got %q", entries[0].Content)
	}
}

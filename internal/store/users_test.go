package store

import (
	"context"
	"testing"

	"github.com/erazemk/najdeno/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "ana@example.com", "Ana", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "ana@example.com" || user.Name != "Ana" {
		t.Errorf("unexpected user: %+v", user)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "ana@example.com", "Ana", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "ana@example.com", "Other Ana", "hash"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestSoftDeletedEmailReusable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "ana@example.com", "Ana", "hash")
	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := CreateUser(ctx, database, "ana@example.com", "Ana Again", "hash"); err != nil {
		t.Errorf("expected soft-deleted email to be reusable, got %v", err)
	}
}

func TestGetUserByEmailIncludesDeleted(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "ana@example.com", "Ana", "hash")
	DeleteUser(ctx, database, user.ID)

	got, err := GetUserByEmail(ctx, database, "ana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("expected soft-deleted user to be visible to auth checks")
	}
	if got.DeletedAt == nil {
		t.Error("expected DeletedAt to be set")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "ana@example.com", "Ana", "old-hash")
	if err := UpdateUserPassword(ctx, database, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}

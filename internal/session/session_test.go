package session

import (
	"os"
	"path/filepath"
	"testing"
)

func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := Load(snapshotPath(t))
	if s.User() != nil {
		t.Error("expected anonymous session for missing snapshot")
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := snapshotPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	s := Load(path)
	if s.User() != nil {
		t.Error("expected anonymous session for corrupt snapshot")
	}
}

func TestSetUserPersistsAcrossLoad(t *testing.T) {
	path := snapshotPath(t)

	s := Load(path)
	if err := s.SetUser(Identity{ID: "u1", Email: "ana@example.com", Name: "Ana"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	reloaded := Load(path)
	user := reloaded.User()
	if user == nil || user.ID != "u1" || user.Email != "ana@example.com" {
		t.Errorf("unexpected reloaded identity: %+v", user)
	}
}

func TestClearUserRemovesSnapshot(t *testing.T) {
	path := snapshotPath(t)

	s := Load(path)
	if err := s.SetUser(Identity{ID: "u1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if err := s.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if s.User() != nil {
		t.Error("expected anonymous session after ClearUser")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected snapshot file removed")
	}

	// Clearing again is a no-op.
	if err := s.ClearUser(); err != nil {
		t.Errorf("repeated ClearUser: %v", err)
	}

	if Load(path).User() != nil {
		t.Error("expected anonymous session after reload")
	}
}

func TestDecide(t *testing.T) {
	anonymous := Load(snapshotPath(t))
	signedIn := Load(snapshotPath(t))
	if err := signedIn.SetUser(Identity{ID: "u1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	tests := []struct {
		name    string
		session *Session
		route   Route
		want    Decision
	}{
		{"anonymous on protected route", anonymous, Route{Path: "/dashboard", RequiresAuth: true}, Redirect("/login")},
		{"anonymous on login", anonymous, Route{Path: "/login"}, Allow},
		{"anonymous on public route", anonymous, Route{Path: "/items"}, Allow},
		{"signed-in on protected route", signedIn, Route{Path: "/dashboard", RequiresAuth: true}, Allow},
		{"signed-in on login", signedIn, Route{Path: "/login"}, Redirect("/dashboard")},
		{"signed-in on register", signedIn, Route{Path: "/register"}, Redirect("/dashboard")},
		{"signed-in on forgot-password", signedIn, Route{Path: "/forgot-password"}, Redirect("/dashboard")},
		{"signed-in on public route", signedIn, Route{Path: "/items"}, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Decide(tt.route); got != tt.want {
				t.Errorf("Decide(%+v) = %+v, want %+v", tt.route, got, tt.want)
			}
		})
	}
}

func TestDecideReflectsSessionChanges(t *testing.T) {
	s := Load(snapshotPath(t))
	protected := Route{Path: "/dashboard", RequiresAuth: true}

	if got := s.Decide(protected); got != Redirect("/login") {
		t.Errorf("expected redirect to login before sign-in, got %+v", got)
	}

	if err := s.SetUser(Identity{ID: "u1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if got := s.Decide(protected); got != Allow {
		t.Errorf("expected allow after sign-in, got %+v", got)
	}

	if err := s.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if got := s.Decide(protected); got != Redirect("/login") {
		t.Errorf("expected redirect to login after sign-out, got %+v", got)
	}
}

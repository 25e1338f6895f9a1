package model

import (
	"errors"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from    Status
		event   Event
		want    Status
		wantErr bool
	}{
		{StatusOpen, EventClaim, StatusClaimed, false},
		{StatusOpen, EventResolve, StatusResolved, false},
		{StatusOpen, EventUnclaim, StatusOpen, true},
		{StatusOpen, EventUnresolve, StatusOpen, true},
		{StatusClaimed, EventUnclaim, StatusOpen, false},
		{StatusClaimed, EventResolve, StatusResolved, false},
		{StatusClaimed, EventClaim, StatusClaimed, true},
		{StatusClaimed, EventUnresolve, StatusClaimed, true},
		{StatusResolved, EventUnresolve, StatusOpen, false},
		{StatusResolved, EventClaim, StatusResolved, true},
		{StatusResolved, EventUnclaim, StatusResolved, true},
		{StatusResolved, EventResolve, StatusResolved, true},
	}

	for _, tt := range tests {
		got, err := Transition(tt.from, tt.event)
		if (err != nil) != tt.wantErr {
			t.Errorf("Transition(%s, %s) error = %v, wantErr %v", tt.from, tt.event, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Transition(%s, %s) error %v does not match ErrInvalidTransition", tt.from, tt.event, err)
		}
		if got != tt.want {
			t.Errorf("Transition(%s, %s) = %s, want %s", tt.from, tt.event, got, tt.want)
		}
	}
}

func TestApplyOwnerCannotClaim(t *testing.T) {
	item := &Item{ID: "i1", Status: StatusOpen, OwnerID: "u1"}

	err := item.Apply(EventClaim, "u1")
	if !errors.Is(err, ErrOwnItem) {
		t.Fatalf("expected ErrOwnItem, got %v", err)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("ErrOwnItem should match ErrInvalidTransition")
	}
	if item.Status != StatusOpen || item.ClaimantID != nil {
		t.Error("failed claim must leave the item unchanged")
	}
}

func TestApplyFullSequence(t *testing.T) {
	// open -> claimed -> open -> resolved -> open, checking the claimant
	// invariant at every step.
	item := &Item{ID: "i1", Status: StatusOpen, OwnerID: "u1"}

	steps := []struct {
		event      Event
		actor      string
		wantStatus Status
	}{
		{EventClaim, "u2", StatusClaimed},
		{EventUnclaim, "", StatusOpen},
		{EventResolve, "", StatusResolved},
		{EventUnresolve, "", StatusOpen},
	}

	for _, s := range steps {
		if err := item.Apply(s.event, s.actor); err != nil {
			t.Fatalf("Apply(%s): %v", s.event, err)
		}
		if item.Status != s.wantStatus {
			t.Errorf("after %s: status = %s, want %s", s.event, item.Status, s.wantStatus)
		}
		checkClaimantInvariant(t, item)
	}
}

func TestApplyResolveClearsClaimant(t *testing.T) {
	item := &Item{ID: "i1", Status: StatusOpen, OwnerID: "u1"}

	if err := item.Apply(EventClaim, "u2"); err != nil {
		t.Fatalf("Apply(claim): %v", err)
	}
	if item.ClaimantID == nil || *item.ClaimantID != "u2" {
		t.Fatal("expected claimant u2 after claim")
	}

	if err := item.Apply(EventResolve, ""); err != nil {
		t.Fatalf("Apply(resolve): %v", err)
	}
	if item.ClaimantID != nil {
		t.Error("resolve must clear the claimant")
	}
}

func checkClaimantInvariant(t *testing.T, item *Item) {
	t.Helper()
	claimed := item.Status == StatusClaimed
	hasClaimant := item.ClaimantID != nil
	if claimed != hasClaimant {
		t.Errorf("claimant invariant violated: status=%s claimant=%v", item.Status, item.ClaimantID)
	}
}

func TestValidItemType(t *testing.T) {
	tests := []struct {
		typ      string
		expected bool
	}{
		{ItemTypeLost, true},
		{ItemTypeFound, true},
		{"stolen", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidItemType(tt.typ); got != tt.expected {
			t.Errorf("ValidItemType(%q) = %v, want %v", tt.typ, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"user@example.com", false},
		{"user@", true},
		{"@example.com", true},
		{"no-at-sign", true},
		{"spaces in@here.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"NHL 2025-2026":     "nhl-2025-2026",
		"  Beer League!! ":  "beer-league",
		"---":               "",
		"Ligue Élite":       "ligue-lite",
		"already-a-slug-01": "already-a-slug-01",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()

	got, err := g.NewID("Demo League")
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(got, "demo-league-") {
		t.Fatalf("expected slug prefix, got %q", got)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(got, "demo-league-")); err != nil {
		t.Fatalf("expected uuid suffix in %q: %v", got, err)
	}

	bare, err := g.NewID("")
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if _, err := uuid.Parse(bare); err != nil {
		t.Fatalf("expected bare uuid, got %q", bare)
	}

	other, _ := g.NewID("Demo League")
	if other == got {
		t.Fatalf("expected distinct ids")
	}
}

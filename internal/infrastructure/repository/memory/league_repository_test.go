package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
)

func TestLeagueRepository(t *testing.T) {
	ctx := t.Context()
	first, _ := league.New("a", "First", nil)
	second, _ := league.New("b", "Second", nil)

	repo := NewLeagueRepository(first)
	if err := repo.Add(ctx, second); err != nil {
		t.Fatalf("add league: %v", err)
	}
	if err := repo.Add(ctx, second); !errors.Is(err, domainerr.ErrKeyConflict) {
		t.Fatalf("expected key conflict, got %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("unexpected leagues: %+v", items)
	}

	got, ok, err := repo.GetByID(ctx, "b")
	if err != nil || !ok || got != second {
		t.Fatalf("get league: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := repo.GetByID(ctx, "missing"); ok {
		t.Fatalf("expected missing league")
	}

	renamed, _ := league.New("b", "Renamed", nil)
	if err := repo.Update(ctx, renamed); err != nil {
		t.Fatalf("update league: %v", err)
	}
	if got, _, _ := repo.GetByID(ctx, "b"); got.Name != "Renamed" {
		t.Fatalf("update not applied: %s", got.Name)
	}

	ghost, _ := league.New("ghost", "Ghost", nil)
	if err := repo.Update(ctx, ghost); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeedLeague(t *testing.T) {
	lg, err := SeedLeague()
	if err != nil {
		t.Fatalf("seed league: %v", err)
	}
	if lg.ID != SeedLeagueID {
		t.Fatalf("unexpected seed id: %s", lg.ID)
	}
	if len(lg.Teams()) == 0 || len(lg.Games()) == 0 || len(lg.Players()) == 0 {
		t.Fatalf("seed league is missing data")
	}
	for _, p := range lg.Players() {
		if _, ok := lg.Team(p.TeamName); !ok {
			t.Fatalf("player %s references unknown team %q", p.Name, p.TeamName)
		}
	}
}

package lineup

import (
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Build fills the league's starting lineup for date from candidates.
//
// Single-position players are placed first, in input order. The remaining
// slots are then filled greedily: the scarcest open position (capacity minus
// eligible candidates) goes to the least flexible candidate (sum of open
// capacity over the candidate's positions). Ties keep template order for
// positions and input order for players, so the same input always yields the
// same lineup. The result is not guaranteed to be maximal.
func Build(lg *league.League, date time.Time, candidates []*player.Player) (*Lineup, error) {
	if lg == nil {
		return nil, domainerr.Constructionf("league is required")
	}

	day := game.Day(date)
	slots := lg.StartingLineupPositions()
	lu, err := New(lg.ID, day, slots, lg)
	if err != nil {
		return nil, err
	}

	pool := eligiblePool(lg, day, candidates)

	contested := make([]*player.Player, 0, len(pool))
	for _, p := range pool {
		pos, single := p.SinglePosition()
		if !single {
			contested = append(contested, p)
			continue
		}
		if lu.Remaining(pos) <= 0 {
			continue
		}
		if err := lu.Add(p, pos); err != nil {
			return nil, crerr.Wrapf(err, "forced assignment of %q to %s", p.Name, pos)
		}
	}

	order := templateOrder(slots)
	dropped := make(map[player.Position]bool, len(order))
	for len(contested) > 0 {
		open := make([]positionScore, 0, len(order))
		for _, pos := range order {
			remaining := lu.Remaining(pos)
			if dropped[pos] || remaining <= 0 {
				continue
			}
			open = append(open, positionScore{
				position:   pos,
				candidates: eligibleFor(contested, pos),
				remaining:  remaining,
			})
		}
		if len(open) == 0 {
			break
		}

		sort.SliceStable(open, func(i, j int) bool {
			return open[i].scarcity() < open[j].scarcity()
		})

		target := open[0]
		if len(target.candidates) == 0 {
			dropped[target.position] = true
			continue
		}

		picks := target.candidates
		sort.SliceStable(picks, func(i, j int) bool {
			return flexibility(lu, picks[i]) < flexibility(lu, picks[j])
		})

		pick := picks[0]
		if err := lu.Add(pick, target.position); err != nil {
			return nil, crerr.Wrapf(err, "contested assignment of %q to %s", pick.Name, target.position)
		}
		contested = without(contested, pick)
	}

	return lu, nil
}

// BuildRange builds one lineup per calendar day in [start, end], ascending.
// Days without games produce empty lineups.
func BuildRange(lg *league.League, start, end time.Time, candidates []*player.Player) ([]*Lineup, error) {
	if lg == nil {
		return nil, domainerr.Constructionf("league is required")
	}

	days, err := Days(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]*Lineup, 0, len(days))
	for _, day := range days {
		lu, err := Build(lg, day, candidates)
		if err != nil {
			return nil, err
		}
		out = append(out, lu)
	}
	return out, nil
}

// Days lists the calendar days in [start, end] in start's location.
func Days(start, end time.Time) ([]time.Time, error) {
	first := game.Day(start)
	last := game.Day(end.In(start.Location()))
	if first.After(last) {
		return nil, domainerr.InvalidRangef("start %s is after end %s", first.Format(time.DateOnly), last.Format(time.DateOnly))
	}

	out := make([]time.Time, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		out = append(out, day)
	}
	return out, nil
}

type positionScore struct {
	position   player.Position
	candidates []*player.Player
	remaining  int
}

func (s positionScore) scarcity() int {
	return s.remaining - len(s.candidates)
}

// eligiblePool keeps candidates whose team plays on day and who declare at
// least one position. A player listed twice is kept once, at first sight.
func eligiblePool(lg *league.League, day time.Time, candidates []*player.Player) []*player.Player {
	seen := make(map[*player.Player]struct{}, len(candidates))
	out := make([]*player.Player, 0, len(candidates))
	for _, p := range candidates {
		if p == nil || p.EligibleCount() == 0 {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if !lg.IsPlaying(p, day) {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// templateOrder returns each slot position once, in first-appearance order.
func templateOrder(slots []player.Position) []player.Position {
	seen := make(map[player.Position]struct{}, len(slots))
	out := make([]player.Position, 0, len(slots))
	for _, pos := range slots {
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}
	return out
}

func eligibleFor(pool []*player.Player, pos player.Position) []*player.Player {
	out := make([]*player.Player, 0, len(pool))
	for _, p := range pool {
		if p.Eligible(pos) {
			out = append(out, p)
		}
	}
	return out
}

func flexibility(lu *Lineup, p *player.Player) int {
	total := 0
	for _, pos := range p.Positions.Positions() {
		total += lu.Remaining(pos)
	}
	return total
}

func without(pool []*player.Player, target *player.Player) []*player.Player {
	out := make([]*player.Player, 0, len(pool))
	for _, p := range pool {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

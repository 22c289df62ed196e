package lineup

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Schedule answers whether a player's team has a game on a given day.
type Schedule interface {
	IsPlaying(p *player.Player, day time.Time) bool
}

// Lineup is the starting lineup for one league on one day. Every mutation is
// checked against the proposed state before it is applied, so the assignment
// list always satisfies:
//   - a player appears at most once,
//   - per position, assigned count <= template count,
//   - every assignee can play the position and is playing that day.
//
// A Lineup is not safe for concurrent use.
type Lineup struct {
	leagueID    string
	date        time.Time
	slots       []player.Position
	total       map[player.Position]int
	schedule    Schedule
	assignments []Assignment
	guards      []Guard
	observers   []Observer
	busy        bool
}

// New creates an empty lineup with its own copy of slots.
func New(leagueID string, date time.Time, slots []player.Position, schedule Schedule) (*Lineup, error) {
	if schedule == nil {
		return nil, domainerr.Constructionf("lineup schedule is required")
	}

	total := make(map[player.Position]int, len(player.AllPositions))
	for idx, pos := range slots {
		if !pos.Valid() {
			return nil, domainerr.Constructionf("slot %d has invalid position %s", idx, pos)
		}
		total[pos]++
	}

	return &Lineup{
		leagueID: leagueID,
		date:     game.Day(date),
		slots:    append([]player.Position(nil), slots...),
		total:    total,
		schedule: schedule,
	}, nil
}

func (l *Lineup) LeagueID() string {
	return l.leagueID
}

func (l *Lineup) Date() time.Time {
	return l.date
}

func (l *Lineup) Slots() []player.Position {
	return append([]player.Position(nil), l.slots...)
}

func (l *Lineup) Len() int {
	return len(l.assignments)
}

// Assignments returns the assignments in insertion order.
func (l *Lineup) Assignments() []Assignment {
	return append([]Assignment(nil), l.assignments...)
}

func (l *Lineup) Contains(p *player.Player) bool {
	return l.indexOf(p) >= 0
}

// AssignmentFor returns the assignment holding p, if any.
func (l *Lineup) AssignmentFor(p *player.Player) (Assignment, bool) {
	idx := l.indexOf(p)
	if idx < 0 {
		return Assignment{}, false
	}
	return l.assignments[idx], true
}

// TotalSlotsOfType is the template count for pos. It does not change during
// the day.
func (l *Lineup) TotalSlotsOfType(pos player.Position) int {
	return l.total[pos]
}

// Remaining is the number of open slots for pos.
func (l *Lineup) Remaining(pos player.Position) int {
	return l.total[pos] - l.assignedCount(l.assignments, pos)
}

// RemainingSlots returns open slot counts by position, restricted to filter
// when given. Positions with no open slot are omitted.
func (l *Lineup) RemainingSlots(filter ...player.Position) map[player.Position]int {
	candidates := player.AllPositions
	if len(filter) > 0 {
		candidates = filter
	}

	out := make(map[player.Position]int)
	for _, pos := range candidates {
		if n := l.Remaining(pos); n > 0 {
			out[pos] = n
		}
	}
	return out
}

// OpenSlots expands RemainingSlots into one entry per open slot, in template
// order.
func (l *Lineup) OpenSlots(filter ...player.Position) []player.Position {
	remaining := l.RemainingSlots(filter...)
	out := make([]player.Position, 0, len(l.slots))
	for _, pos := range l.slots {
		if remaining[pos] > 0 {
			out = append(out, pos)
			remaining[pos]--
		}
	}
	return out
}

// AddGuard registers a pre-commit check. Guards run after the built-in
// invariant checks pass.
func (l *Lineup) AddGuard(g Guard) {
	if g != nil {
		l.guards = append(l.guards, g)
	}
}

// Subscribe registers an observer called after each committed change.
func (l *Lineup) Subscribe(o Observer) {
	if o != nil {
		l.observers = append(l.observers, o)
	}
}

// Add assigns p to pos.
func (l *Lineup) Add(p *player.Player, pos player.Position) error {
	assignment, err := NewAssignment(p, pos)
	if err != nil {
		return err
	}
	return l.Insert(assignment)
}

// Insert appends an already built assignment.
func (l *Lineup) Insert(a Assignment) error {
	proposed := make([]Assignment, 0, len(l.assignments)+1)
	proposed = append(proposed, l.assignments...)
	proposed = append(proposed, a)

	return l.apply(Change{
		Action: ActionAdd,
		Index:  len(l.assignments),
		Added:  []Assignment{a},
	}, proposed)
}

// Remove drops p's assignment. It reports false when p was not assigned.
func (l *Lineup) Remove(p *player.Player) (bool, error) {
	idx := l.indexOf(p)
	if idx < 0 {
		return false, nil
	}

	proposed := make([]Assignment, 0, len(l.assignments)-1)
	proposed = append(proposed, l.assignments[:idx]...)
	proposed = append(proposed, l.assignments[idx+1:]...)

	err := l.apply(Change{
		Action:  ActionRemove,
		Index:   idx,
		Removed: []Assignment{l.assignments[idx]},
	}, proposed)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Replace swaps the assignment at index for a.
func (l *Lineup) Replace(index int, a Assignment) error {
	if index < 0 || index >= len(l.assignments) {
		return &Violation{
			Action:   ActionReplace,
			Reason:   ReasonInvalidIndex,
			Player:   a.player,
			Position: a.position,
			Detail:   fmt.Sprintf("index %d out of range [0,%d)", index, len(l.assignments)),
		}
	}

	proposed := append([]Assignment(nil), l.assignments...)
	proposed[index] = a

	return l.apply(Change{
		Action:  ActionReplace,
		Index:   index,
		Added:   []Assignment{a},
		Removed: []Assignment{l.assignments[index]},
	}, proposed)
}

// Reset removes every assignment.
func (l *Lineup) Reset() error {
	return l.apply(Change{
		Action:  ActionReset,
		Index:   -1,
		Removed: l.Assignments(),
	}, nil)
}

func (l *Lineup) apply(change Change, proposed []Assignment) error {
	if l.busy {
		return ErrReentrantMutation
	}
	l.busy = true
	defer func() { l.busy = false }()

	if decision := l.check(change, proposed); !decision.Accepted {
		return l.violation(change, decision)
	}
	for _, guard := range l.guards {
		if decision := guard(l, change); !decision.Accepted {
			if decision.Reason == "" {
				decision.Reason = ReasonVetoed
			}
			return l.violation(change, decision)
		}
	}

	l.assignments = proposed
	for _, observer := range l.observers {
		observer(l, change)
	}
	return nil
}

// check validates the incoming assignments against the proposed list.
func (l *Lineup) check(change Change, proposed []Assignment) Decision {
	for _, incoming := range change.Added {
		p := incoming.player
		if p == nil {
			return Reject(ReasonIneligible, "assignment has no player")
		}
		if !p.Eligible(incoming.position) {
			return Reject(ReasonIneligible, "player does not declare this position")
		}

		seen := 0
		for _, existing := range proposed {
			if existing.player == p {
				seen++
			}
		}
		if seen > 1 {
			return Reject(ReasonDuplicatePlayer, "player already holds a slot in this lineup")
		}

		if l.assignedCount(proposed, incoming.position) > l.total[incoming.position] {
			return Reject(ReasonSlotsExhausted, fmt.Sprintf("all %d %s slots are filled", l.total[incoming.position], incoming.position))
		}

		if !l.schedule.IsPlaying(p, l.date) {
			return Reject(ReasonNotScheduled, fmt.Sprintf("team %q has no game on %s", p.TeamName, l.date.Format(time.DateOnly)))
		}
	}

	return Accept()
}

func (l *Lineup) violation(change Change, decision Decision) *Violation {
	v := &Violation{
		Action: change.Action,
		Reason: decision.Reason,
		Detail: decision.Detail,
	}
	if len(change.Added) > 0 {
		v.Player = change.Added[0].player
		v.Position = change.Added[0].position
	} else if len(change.Removed) > 0 {
		v.Player = change.Removed[0].player
		v.Position = change.Removed[0].position
	}
	return v
}

func (l *Lineup) assignedCount(items []Assignment, pos player.Position) int {
	n := 0
	for _, a := range items {
		if a.position == pos {
			n++
		}
	}
	return n
}

func (l *Lineup) indexOf(p *player.Player) int {
	if p == nil {
		return -1
	}
	for idx, a := range l.assignments {
		if a.player == p {
			return idx
		}
	}
	return -1
}

func (l *Lineup) String() string {
	parts := make([]string, 0, len(l.assignments))
	for _, a := range l.assignments {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s %s [%s]", l.leagueID, l.date.Format(time.DateOnly), strings.Join(parts, " | "))
}

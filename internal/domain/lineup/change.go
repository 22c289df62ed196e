package lineup

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Action is the kind of mutation applied to a lineup.
type Action int

const (
	ActionAdd Action = iota + 1
	ActionRemove
	ActionReplace
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionReset:
		return "reset"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Change describes one mutation. Index is the affected position in the
// assignment list, or -1 for ActionReset.
type Change struct {
	Action  Action
	Index   int
	Added   []Assignment
	Removed []Assignment
}

// Reason names why a mutation was rejected.
type Reason string

const (
	ReasonDuplicatePlayer Reason = "duplicate-player"
	ReasonSlotsExhausted  Reason = "slots-exhausted"
	ReasonNotScheduled    Reason = "not-scheduled"
	ReasonIneligible      Reason = "ineligible"
	ReasonInvalidIndex    Reason = "invalid-index"
	ReasonVetoed          Reason = "vetoed"
)

// Decision is the outcome of a pre-commit check: accepted, or rejected with a
// reason.
type Decision struct {
	Accepted bool
	Reason   Reason
	Detail   string
}

func Accept() Decision {
	return Decision{Accepted: true}
}

func Reject(reason Reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

// Guard runs before a change is committed and may reject it. Guards see the
// lineup in its pre-change state.
type Guard func(l *Lineup, change Change) Decision

// Observer runs after a change is committed.
type Observer func(l *Lineup, change Change)

// Violation is returned for every rejected mutation.
type Violation struct {
	Action   Action
	Reason   Reason
	Player   *player.Player
	Position player.Position
	Detail   string
}

func (v *Violation) Error() string {
	msg := fmt.Sprintf("%s rejected (%s)", v.Action, v.Reason)
	if v.Player != nil {
		msg += fmt.Sprintf(": player=%q position=%s", v.Player.Name, v.Position)
	}
	if v.Detail != "" {
		msg += ": " + v.Detail
	}
	return msg + ": " + domainerr.ErrConstraintViolation.Error()
}

func (v *Violation) Unwrap() error {
	return domainerr.ErrConstraintViolation
}

// ErrReentrantMutation is returned when a guard or observer tries to mutate
// the lineup it is being notified about.
var ErrReentrantMutation = crerr.New("lineup mutated from inside a change callback")

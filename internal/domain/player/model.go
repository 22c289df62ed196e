package player

import "fmt"

// Player is a rostered athlete. Ledgers compare players by pointer, so two
// players with the same name are still distinct.
type Player struct {
	ID        string
	Name      string
	TeamName  string
	Positions PositionSet
}

func New(id, name, teamName string, positions ...Position) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		TeamName:  teamName,
		Positions: NewPositionSet(positions...),
	}
}

func (p *Player) Eligible(pos Position) bool {
	return p != nil && p.Positions.Has(pos)
}

func (p *Player) EligibleCount() int {
	if p == nil {
		return 0
	}
	return p.Positions.Len()
}

// SinglePosition returns the only position a player can fill. ok is false for
// players with zero or several positions.
func (p *Player) SinglePosition() (Position, bool) {
	if p.EligibleCount() != 1 {
		return PositionNone, false
	}
	return p.Positions.Positions()[0], true
}

func (p *Player) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s; %s; %s", p.Name, p.TeamName, p.Positions)
}

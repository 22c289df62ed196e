package lineup

import (
	"fmt"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Assignment pairs one player with one slot position. It can only be built
// for a position the player declares.
type Assignment struct {
	player   *player.Player
	position player.Position
}

func NewAssignment(p *player.Player, pos player.Position) (Assignment, error) {
	if p == nil {
		return Assignment{}, domainerr.Constructionf("player is required")
	}
	if !p.Eligible(pos) {
		return Assignment{}, domainerr.Constructionf("player %q cannot play position %s", p.Name, pos)
	}

	return Assignment{player: p, position: pos}, nil
}

func (a Assignment) Player() *player.Player {
	return a.player
}

func (a Assignment) Position() player.Position {
	return a.position
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s: %s", a.position, a.player)
}

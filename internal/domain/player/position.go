package player

import (
	"fmt"
	"math/bits"
	"strings"
)

// Position is a hockey roster position. Values are powers of two so they can
// be combined into a PositionSet.
type Position uint8

const (
	PositionNone       Position = 0x0
	PositionCenter     Position = 0x1
	PositionLeftWing   Position = 0x2
	PositionRightWing  Position = 0x4
	PositionDefense    Position = 0x8
	PositionGoaltender Position = 0x10
)

// AllPositions lists the assignable positions in enumeration order.
var AllPositions = []Position{
	PositionCenter,
	PositionLeftWing,
	PositionRightWing,
	PositionDefense,
	PositionGoaltender,
}

var positionCodes = map[Position]string{
	PositionNone:       "None",
	PositionCenter:     "C",
	PositionLeftWing:   "LW",
	PositionRightWing:  "RW",
	PositionDefense:    "D",
	PositionGoaltender: "G",
}

var positionAliases = map[string]Position{
	"c":          PositionCenter,
	"center":     PositionCenter,
	"centre":     PositionCenter,
	"lw":         PositionLeftWing,
	"leftwing":   PositionLeftWing,
	"left wing":  PositionLeftWing,
	"rw":         PositionRightWing,
	"rightwing":  PositionRightWing,
	"right wing": PositionRightWing,
	"d":          PositionDefense,
	"defense":    PositionDefense,
	"defence":    PositionDefense,
	"g":          PositionGoaltender,
	"goalie":     PositionGoaltender,
	"goaltender": PositionGoaltender,
}

func (p Position) String() string {
	if code, ok := positionCodes[p]; ok {
		return code
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// Valid reports whether p is a single assignable position.
func (p Position) Valid() bool {
	return p != PositionNone && bits.OnesCount8(uint8(p)) == 1 && p <= PositionGoaltender
}

// ParsePosition accepts short codes and long names, case-insensitive.
func ParsePosition(raw string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if pos, ok := positionAliases[key]; ok {
		return pos, nil
	}
	return PositionNone, fmt.Errorf("unknown position %q", raw)
}

// PositionSet is a bit mask of positions a player may fill.
type PositionSet uint8

// NewPositionSet builds a set, ignoring PositionNone and invalid values.
func NewPositionSet(positions ...Position) PositionSet {
	var set PositionSet
	for _, pos := range positions {
		if pos.Valid() {
			set |= PositionSet(pos)
		}
	}
	return set
}

func (s PositionSet) Has(pos Position) bool {
	return pos.Valid() && s&PositionSet(pos) != 0
}

func (s PositionSet) Len() int {
	return bits.OnesCount8(uint8(s) & uint8(allMask))
}

// Positions returns the members in enumeration order.
func (s PositionSet) Positions() []Position {
	out := make([]Position, 0, s.Len())
	for _, pos := range AllPositions {
		if s.Has(pos) {
			out = append(out, pos)
		}
	}
	return out
}

func (s PositionSet) String() string {
	codes := make([]string, 0, s.Len())
	for _, pos := range s.Positions() {
		codes = append(codes, pos.String())
	}
	return strings.Join(codes, ", ")
}

var allMask = NewPositionSet(AllPositions...)

// ParsePositionSet parses each value with ParsePosition.
func ParsePositionSet(values ...string) (PositionSet, error) {
	var set PositionSet
	for _, raw := range values {
		pos, err := ParsePosition(raw)
		if err != nil {
			return 0, err
		}
		set |= PositionSet(pos)
	}
	return set, nil
}

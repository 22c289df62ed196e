package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Season    string     `db:"season"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Season   string `db:"season"`
}

type leagueSlotTableModel struct {
	LeagueID  string `db:"league_public_id"`
	SlotIndex int    `db:"slot_index"`
	Position  int16  `db:"position"`
}

type gameTableModel struct {
	ID           int64          `db:"id"`
	PublicID     sql.NullString `db:"public_id"`
	LeagueID     string         `db:"league_public_id"`
	HomeTeam     string         `db:"home_team"`
	VisitingTeam string         `db:"visiting_team"`
	StartsAt     time.Time      `db:"starts_at"`
	SortOrder    int            `db:"sort_order"`
}

package postgres

import "database/sql"

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  sql.NullString `db:"public_id"`
	LeagueID  string         `db:"league_public_id"`
	TeamName  sql.NullString `db:"team_name"`
	Name      string         `db:"name"`
	Positions int16          `db:"positions"`
	SortOrder int            `db:"sort_order"`
}

package postgres

type teamTableModel struct {
	ID        int64  `db:"id"`
	LeagueID  string `db:"league_public_id"`
	Name      string `db:"name"`
	SortOrder int    `db:"sort_order"`
}

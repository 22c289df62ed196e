package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

// insertBatchSize keeps multi-row inserts well under the postgres bind
// parameter limit.
const insertBatchSize = 500

// childTables are rewritten as a whole on every Update, in delete order.
var childTables = []string{"league_slots", "players", "games", "teams"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]*league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := selectTraced(ctx, r.db, &rows, "leagues", query, args); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	return r.hydrate(ctx, rows)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (*league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := getTraced(ctx, r.db, &row, "leagues", query, args); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get league by id: %w", err)
	}

	items, err := r.hydrate(ctx, []leagueTableModel{row})
	if err != nil {
		return nil, false, err
	}
	return items[0], true, nil
}

func (r *LeagueRepository) Add(ctx context.Context, item *league.League) error {
	if item == nil {
		return domainerr.Constructionf("league is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for league insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("leagues", leagueInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		Season:   item.Season,
	})
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}
	if _, err := execTraced(ctx, tx, "insert", "leagues", query, args); err != nil {
		if isUniqueViolation(err) {
			return domainerr.KeyConflictf("league %q already exists", item.ID)
		}
		return fmt.Errorf("insert league %s: %w", item.ID, err)
	}

	if err := insertChildren(ctx, tx, item); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit league insert tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item *league.League) error {
	if item == nil {
		return domainerr.Constructionf("league is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for league update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("leagues").
		Set("name", item.Name).
		Set("season", item.Season).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}
	res, err := execTraced(ctx, tx, "update", "leagues", query, args)
	if err != nil {
		return fmt.Errorf("update league %s: %w", item.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated league rows: %w", err)
	}
	if affected == 0 {
		return league.ErrNotFound
	}

	for _, table := range childTables {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("league_public_id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := execTraced(ctx, tx, "delete", table, query, args); err != nil {
			return fmt.Errorf("clear %s for league %s: %w", table, item.ID, err)
		}
	}

	if err := insertChildren(ctx, tx, item); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit league update tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) hydrate(ctx context.Context, rows []leagueTableModel) ([]*league.League, error) {
	out := make([]*league.League, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}

	var slots []leagueSlotTableModel
	if err := r.selectByLeague(ctx, &slots, "league_slots", ids, "slot_index"); err != nil {
		return nil, err
	}
	var teams []teamTableModel
	if err := r.selectByLeague(ctx, &teams, "teams", ids, "sort_order"); err != nil {
		return nil, err
	}
	var games []gameTableModel
	if err := r.selectByLeague(ctx, &games, "games", ids, "sort_order"); err != nil {
		return nil, err
	}
	var players []playerTableModel
	if err := r.selectByLeague(ctx, &players, "players", ids, "sort_order"); err != nil {
		return nil, err
	}

	slotsByLeague := make(map[string][]player.Position, len(rows))
	for _, s := range slots {
		slotsByLeague[s.LeagueID] = append(slotsByLeague[s.LeagueID], player.Position(s.Position))
	}
	teamsByLeague := make(map[string][]teamTableModel, len(rows))
	for _, t := range teams {
		teamsByLeague[t.LeagueID] = append(teamsByLeague[t.LeagueID], t)
	}
	gamesByLeague := make(map[string][]gameTableModel, len(rows))
	for _, g := range games {
		gamesByLeague[g.LeagueID] = append(gamesByLeague[g.LeagueID], g)
	}
	playersByLeague := make(map[string][]playerTableModel, len(rows))
	for _, p := range players {
		playersByLeague[p.LeagueID] = append(playersByLeague[p.LeagueID], p)
	}

	for _, row := range rows {
		lg, err := leagueFromRows(
			row,
			slotsByLeague[row.PublicID],
			teamsByLeague[row.PublicID],
			gamesByLeague[row.PublicID],
			playersByLeague[row.PublicID],
		)
		if err != nil {
			return nil, fmt.Errorf("rebuild league %s: %w", row.PublicID, err)
		}
		out = append(out, lg)
	}

	return out, nil
}

func (r *LeagueRepository) selectByLeague(ctx context.Context, dest any, table string, ids []any, orderBy string) error {
	query, args, err := qb.Select("*").From(table).
		Where(qb.In("league_public_id", ids)).
		OrderBy("league_public_id", orderBy).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select %s query: %w", table, err)
	}
	if err := selectTraced(ctx, r.db, dest, table, query, args); err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

func leagueFromRows(
	row leagueTableModel,
	slots []player.Position,
	teams []teamTableModel,
	games []gameTableModel,
	players []playerTableModel,
) (*league.League, error) {
	lg, err := league.New(row.PublicID, row.Name, slots)
	if err != nil {
		return nil, err
	}
	lg.Season = row.Season

	// Child collections keep their stored sort_order whatever order the rows
	// arrive in.
	teams = append([]teamTableModel(nil), teams...)
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].SortOrder < teams[j].SortOrder })
	games = append([]gameTableModel(nil), games...)
	sort.SliceStable(games, func(i, j int) bool { return games[i].SortOrder < games[j].SortOrder })
	players = append([]playerTableModel(nil), players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].SortOrder < players[j].SortOrder })

	for _, t := range teams {
		tm, err := team.New(t.Name, lg.ID)
		if err != nil {
			return nil, err
		}
		if err := lg.AddTeam(tm); err != nil {
			return nil, err
		}
	}

	for _, g := range games {
		home, ok := lg.Team(g.HomeTeam)
		if !ok {
			return nil, fmt.Errorf("game %d references unknown home team %q", g.ID, g.HomeTeam)
		}
		visiting, ok := lg.Team(g.VisitingTeam)
		if !ok {
			return nil, fmt.Errorf("game %d references unknown visiting team %q", g.ID, g.VisitingTeam)
		}
		item, err := game.New(home, visiting, g.StartsAt)
		if err != nil {
			return nil, err
		}
		item.ID = nullStringValue(g.PublicID)
		lg.AddGame(item)
	}

	for _, p := range players {
		if err := lg.AddPlayer(&player.Player{
			ID:        nullStringValue(p.PublicID),
			Name:      p.Name,
			TeamName:  nullStringValue(p.TeamName),
			Positions: player.PositionSet(p.Positions),
		}); err != nil {
			return nil, err
		}
	}

	return lg, nil
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, item *league.League) error {
	slots := make([][]any, 0)
	for idx, pos := range item.StartingLineupPositions() {
		slots = append(slots, []any{item.ID, idx, int16(pos)})
	}
	if err := insertRows(ctx, tx, "league_slots", []string{"league_public_id", "slot_index", "position"}, slots); err != nil {
		return err
	}

	teams := make([][]any, 0)
	for idx, t := range item.Teams() {
		teams = append(teams, []any{item.ID, t.Name, idx})
	}
	if err := insertRows(ctx, tx, "teams", []string{"league_public_id", "name", "sort_order"}, teams); err != nil {
		return err
	}

	games := make([][]any, 0)
	for idx, g := range item.Games() {
		games = append(games, []any{nullString(g.ID), item.ID, g.HomeTeam, g.VisitingTeam, g.StartsAt, idx})
	}
	if err := insertRows(ctx, tx, "games", []string{"public_id", "league_public_id", "home_team", "visiting_team", "starts_at", "sort_order"}, games); err != nil {
		return err
	}

	players := make([][]any, 0)
	for idx, p := range item.Players() {
		players = append(players, []any{nullString(p.ID), item.ID, nullString(p.TeamName), p.Name, int16(p.Positions), idx})
	}
	return insertRows(ctx, tx, "players", []string{"public_id", "league_public_id", "team_name", "name", "positions", "sort_order"}, players)
}

func insertRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		builder := qb.InsertInto(table).Columns(columns...)
		for _, row := range rows[start:end] {
			builder.Values(row...)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := execTraced(ctx, tx, "insert", table, query, args); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", table, start, end, err)
		}
	}
	return nil
}

func selectTraced(ctx context.Context, q sqlx.QueryerContext, dest any, table, query string, args []any) error {
	ctx, end := traceQuery(ctx, "select", table, query)
	err := sqlx.SelectContext(ctx, q, dest, query, args...)
	end(err)
	return err
}

func getTraced(ctx context.Context, q sqlx.QueryerContext, dest any, table, query string, args []any) error {
	ctx, end := traceQuery(ctx, "select", table, query)
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	end(err)
	return err
}

func execTraced(ctx context.Context, e sqlx.ExecerContext, op, table, query string, args []any) (sql.Result, error) {
	ctx, end := traceQuery(ctx, op, table, query)
	res, err := e.ExecContext(ctx, query, args...)
	end(err)
	return res, err
}

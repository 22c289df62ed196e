package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/domain/utilization"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type createLeagueRequest struct {
	ID     string   `json:"id" validate:"omitempty,max=100"`
	Name   string   `json:"name" validate:"required,max=200"`
	Season string   `json:"season" validate:"omitempty,max=50"`
	Slots  []string `json:"slots" validate:"omitempty,max=40,dive,required"`
}

type addPlayerRequest struct {
	ID        string   `json:"id" validate:"omitempty,max=100"`
	Name      string   `json:"name" validate:"required,max=200"`
	TeamName  string   `json:"team_name" validate:"omitempty,max=200"`
	Positions []string `json:"positions" validate:"required,min=1,max=5,dive,required"`
}

type leagueDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Season  string   `json:"season,omitempty"`
	Slots   []string `json:"slots"`
	Teams   int      `json:"teams"`
	Players int      `json:"players"`
	Games   int      `json:"games"`
}

type teamDTO struct {
	Name      string   `json:"name"`
	LeagueID  string   `json:"league_id"`
	PlayerIDs []string `json:"player_ids"`
}

type playerDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TeamName  string   `json:"team_name,omitempty"`
	Positions []string `json:"positions"`
}

type assignmentDTO struct {
	Position   string `json:"position"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name,omitempty"`
}

type lineupDTO struct {
	LeagueID    string          `json:"league_id"`
	Date        string          `json:"date"`
	Slots       []string        `json:"slots"`
	Filled      int             `json:"filled"`
	OpenSlots   []string        `json:"open_slots"`
	Assignments []assignmentDTO `json:"assignments"`
}

type utilizationDayDTO struct {
	Date           string `json:"date"`
	AvailableSlots int    `json:"available_slots"`
	FilledSlots    int    `json:"filled_slots"`
}

type utilizationDTO struct {
	LeagueID       string              `json:"league_id"`
	Start          string              `json:"start"`
	End            string              `json:"end"`
	GameDays       int                 `json:"game_days"`
	AvailableSlots int                 `json:"available_slots"`
	FilledSlots    int                 `json:"filled_slots"`
	Ratio          float64             `json:"ratio"`
	Days           []utilizationDayDTO `json:"days"`
}

func leagueToDTO(lg *league.League) leagueDTO {
	return leagueDTO{
		ID:      lg.ID,
		Name:    lg.Name,
		Season:  lg.Season,
		Slots:   positionCodes(lg.StartingLineupPositions()),
		Teams:   len(lg.Teams()),
		Players: len(lg.Players()),
		Games:   len(lg.Games()),
	}
}

func teamToDTO(t *team.Team) teamDTO {
	members := t.Players()
	ids := make([]string, 0, len(members))
	for _, p := range members {
		ids = append(ids, p.ID)
	}
	return teamDTO{Name: t.Name, LeagueID: t.LeagueID, PlayerIDs: ids}
}

func playerToDTO(p *player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		Name:      p.Name,
		TeamName:  p.TeamName,
		Positions: positionCodes(p.Positions.Positions()),
	}
}

func lineupToDTO(lu *lineup.Lineup) lineupDTO {
	assignments := lu.Assignments()
	items := make([]assignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		p := a.Player()
		items = append(items, assignmentDTO{
			Position:   a.Position().String(),
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamName:   p.TeamName,
		})
	}

	return lineupDTO{
		LeagueID:    lu.LeagueID(),
		Date:        lu.Date().Format(time.DateOnly),
		Slots:       positionCodes(lu.Slots()),
		Filled:      lu.Len(),
		OpenSlots:   positionCodes(lu.OpenSlots()),
		Assignments: items,
	}
}

func utilizationToDTO(leagueID string, report utilization.Report) utilizationDTO {
	days := make([]utilizationDayDTO, 0, len(report.Days))
	for _, d := range report.Days {
		days = append(days, utilizationDayDTO{
			Date:           d.Date.Format(time.DateOnly),
			AvailableSlots: d.AvailableSlots,
			FilledSlots:    d.FilledSlots,
		})
	}

	return utilizationDTO{
		LeagueID:       leagueID,
		Start:          report.Start.Format(time.DateOnly),
		End:            report.End.Format(time.DateOnly),
		GameDays:       report.GameDays,
		AvailableSlots: report.AvailableSlots,
		FilledSlots:    report.FilledSlots,
		Ratio:          report.Ratio,
		Days:           days,
	}
}

func positionCodes(positions []player.Position) []string {
	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, pos.String())
	}
	return out
}

// parseDate reads a YYYY-MM-DD value as midnight in loc.
func parseDate(ctx context.Context, name, raw string, loc *time.Location) (time.Time, error) {
	_, span := startSpan(ctx, "httpapi.parseDate")
	defer span.End()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	parsed, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD: %v", usecase.ErrInvalidInput, name, err)
	}
	return game.Day(parsed), nil
}

// parsePlayerIDs accepts repeated and comma separated player_ids values.
func parsePlayerIDs(query url.Values) []string {
	var out []string
	for _, value := range query["player_ids"] {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// Package utilization reports how many available starting slots were filled
// over a date range.
package utilization

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// DayReport is the slot usage for a single game day.
type DayReport struct {
	Date           time.Time `json:"date"`
	AvailableSlots int       `json:"available_slots"`
	FilledSlots    int       `json:"filled_slots"`
}

// Report aggregates slot usage over [Start, End]. Ratio is FilledSlots over
// AvailableSlots, and 0 when the range holds no game day.
type Report struct {
	Start          time.Time   `json:"start"`
	End            time.Time   `json:"end"`
	GameDays       int         `json:"game_days"`
	AvailableSlots int         `json:"available_slots"`
	FilledSlots    int         `json:"filled_slots"`
	Ratio          float64     `json:"ratio"`
	Days           []DayReport `json:"days"`
}

// Compute builds a lineup for every day in range and returns the share of
// available slot-days that were filled.
func Compute(lg *league.League, start, end time.Time, candidates []*player.Player) (float64, error) {
	report, err := Summarize(lg, start, end, candidates)
	if err != nil {
		return 0, err
	}
	return report.Ratio, nil
}

// Summarize is Compute with the per-day breakdown.
func Summarize(lg *league.League, start, end time.Time, candidates []*player.Player) (Report, error) {
	if lg == nil {
		return Report{}, domainerr.Constructionf("league is required")
	}
	if err := validateRange(start, end); err != nil {
		return Report{}, err
	}

	days := lg.GameDays(start, end)
	lineups := make([]*lineup.Lineup, 0, len(days))
	for _, day := range days {
		lu, err := lineup.Build(lg, day, candidates)
		if err != nil {
			return Report{}, err
		}
		lineups = append(lineups, lu)
	}

	return FromLineups(lg, start, end, lineups)
}

// FromLineups aggregates lineups that were built elsewhere. Every lineup must
// belong to lg. Lineups dated outside the range are ignored; two lineups for
// the same day are a conflict.
func FromLineups(lg *league.League, start, end time.Time, lineups []*lineup.Lineup) (Report, error) {
	if lg == nil {
		return Report{}, domainerr.Constructionf("league is required")
	}
	if err := validateRange(start, end); err != nil {
		return Report{}, err
	}

	first := game.Day(start)
	last := game.Day(end.In(start.Location()))
	filled := make(map[time.Time]int, len(lineups))
	for _, lu := range lineups {
		if lu == nil {
			continue
		}
		if lu.LeagueID() != lg.ID {
			return Report{}, domainerr.Constructionf("lineup for league %q cannot be counted for league %q", lu.LeagueID(), lg.ID)
		}
		day := game.Day(lu.Date().In(start.Location()))
		if day.Before(first) || day.After(last) {
			continue
		}
		if _, dup := filled[day]; dup {
			return Report{}, domainerr.KeyConflictf("more than one lineup for %s", day.Format(time.DateOnly))
		}
		filled[day] = lu.Len()
	}

	perDay := len(lg.StartingLineupPositions())
	days := lg.GameDays(start, end)
	report := Report{
		Start:          first,
		End:            last,
		GameDays:       len(days),
		AvailableSlots: perDay * len(days),
		Days:           make([]DayReport, 0, len(days)),
	}
	for _, day := range days {
		n := filled[day]
		report.FilledSlots += n
		report.Days = append(report.Days, DayReport{
			Date:           day,
			AvailableSlots: perDay,
			FilledSlots:    n,
		})
	}

	if report.AvailableSlots > 0 {
		report.Ratio = float64(report.FilledSlots) / float64(report.AvailableSlots)
	}
	return report, nil
}

func validateRange(start, end time.Time) error {
	first := game.Day(start)
	last := game.Day(end.In(start.Location()))
	if first.After(last) {
		return domainerr.InvalidRangef("start %s is after end %s", first.Format(time.DateOnly), last.Format(time.DateOnly))
	}
	return nil
}

// Package schedulecsv builds a league from a season schedule exported as CSV.
//
// The first row is a header. Each following row is one game:
//
//	date, visiting team, home team, time
//
// Teams are created the first time their name appears.
package schedulecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

var ErrMalformedRow = crerr.New("malformed schedule row")

var (
	dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "Mon 1/2/2006", "Jan 2 2006"}
	timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM"}
)

const (
	colDate = iota
	colVisiting
	colHome
	colTime
)

// Options controls how rows become domain values.
type Options struct {
	LeagueID string
	Name     string
	Season   string
	// Location is used for game dates and times. Defaults to time.UTC.
	Location *time.Location
	// Slots replaces the default starting lineup template when set.
	Slots []player.Position
}

// LoadFile opens path and reads it with Load.
func LoadFile(path string, opts Options) (*league.League, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule %s: %w", path, err)
	}
	defer f.Close()

	lg, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", path, err)
	}
	return lg, nil
}

// Load reads a schedule from r into a new league.
func Load(r io.Reader, opts Options) (*league.League, error) {
	lg, err := league.New(opts.LeagueID, opts.Name, opts.Slots)
	if err != nil {
		return nil, err
	}
	lg.Season = strings.TrimSpace(opts.Season)

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, crerr.Wrapf(ErrMalformedRow, "line %d: %v", parseErr.StartLine, parseErr.Err)
			}
			return nil, fmt.Errorf("read schedule: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}
		if blank(record) {
			continue
		}

		if err := addRow(lg, record, loc, line); err != nil {
			return nil, err
		}
	}

	return lg, nil
}

func addRow(lg *league.League, record []string, loc *time.Location, line int) error {
	if len(record) < colHome+1 {
		return crerr.Wrapf(ErrMalformedRow, "line %d: want at least 3 columns, got %d", line, len(record))
	}

	clock := ""
	if len(record) > colTime {
		clock = clean(record[colTime])
	}
	startsAt, err := parseStart(clean(record[colDate]), clock, loc)
	if err != nil {
		return crerr.Wrapf(ErrMalformedRow, "line %d: %v", line, err)
	}

	visiting, err := resolveTeam(lg, clean(record[colVisiting]))
	if err != nil {
		return crerr.Wrapf(ErrMalformedRow, "line %d: visiting team: %v", line, err)
	}
	home, err := resolveTeam(lg, clean(record[colHome]))
	if err != nil {
		return crerr.Wrapf(ErrMalformedRow, "line %d: home team: %v", line, err)
	}

	g, err := game.New(home, visiting, startsAt)
	if err != nil {
		return crerr.Wrapf(ErrMalformedRow, "line %d: %v", line, err)
	}
	g.ID = fmt.Sprintf("%s-g%04d", lg.ID, len(lg.Games())+1)
	lg.AddGame(g)
	return nil
}

func resolveTeam(lg *league.League, name string) (*team.Team, error) {
	if existing, ok := lg.Team(name); ok {
		return existing, nil
	}

	t, err := team.New(name, lg.ID)
	if err != nil {
		return nil, err
	}
	if err := lg.AddTeam(t); err != nil {
		return nil, err
	}
	return t, nil
}

func parseStart(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := parseWith(dateLayouts, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", date, err)
	}
	if clock == "" {
		return day, nil
	}

	tod, err := parseWith(timeLayouts, strings.ToUpper(clock), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
}

func parseWith(layouts []string, value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func clean(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}

func blank(record []string) bool {
	for _, field := range record {
		if clean(field) != "" {
			return false
		}
	}
	return true
}

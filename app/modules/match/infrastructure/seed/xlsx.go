package matchseed

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/xuri/excelize/v2"
)

var kickoffLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseScheduleXLSX reads fixtures from the first sheet. The header row names
// the columns; stage, kickoff, home and away are required. Kickoffs without an
// offset are read in the row's timezone column, else in defaultLoc.
func ParseScheduleXLSX(r io.Reader, defaultLoc *time.Location) ([]matchdomain.Match, error) {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XLSX: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("XLSX file contains no sheets")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("XLSX must contain at least header and one data row")
	}

	cols := columnIndex(rows[0])
	for _, required := range []string{"stage", "kickoff", "home", "away"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("XLSX missing required %q column", required)
		}
	}

	var fixtures []matchdomain.Match
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		line := i + 1

		home := cell(row, cols, "home")
		away := cell(row, cols, "away")
		if home == "" && away == "" {
			continue
		}
		if home == "" || away == "" {
			return nil, fmt.Errorf("row %d: home and away teams are required", line)
		}

		stage, err := matchdomain.ParseStage(cell(row, cols, "stage"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		loc := defaultLoc
		if tz := cell(row, cols, "timezone"); tz != "" {
			loc, err = time.LoadLocation(tz)
			if err != nil {
				return nil, fmt.Errorf("row %d: unknown timezone %q", line, tz)
			}
		}
		kickoff, err := parseKickoff(cell(row, cols, "kickoff"), loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		m := matchdomain.Match{
			Stage:     stage,
			KickoffAt: kickoff.UTC(),
			HomeTeam:  home,
			AwayTeam:  away,
			FifaID:    optional(cell(row, cols, "fifa_id")),
			City:      optional(cell(row, cols, "city")),
		}
		if stage == matchdomain.StageGroup {
			m.Group = optional(strings.ToUpper(cell(row, cols, "group")))
		}
		if md := cell(row, cols, "matchday"); md != "" {
			n, err := strconv.Atoi(md)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid matchday %q", line, md)
			}
			if stage == matchdomain.StageGroup && (n < 1 || n > 3) {
				return nil, fmt.Errorf("row %d: group matchday must be 1-3, got %d", line, n)
			}
			m.Matchday = &n
		}
		fixtures = append(fixtures, m)
	}

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no fixtures found in XLSX")
	}
	return fixtures, nil
}

func columnIndex(header []string) map[string]int {
	aliases := map[string]string{
		"fifa_id": "fifa_id", "fifaid": "fifa_id", "id": "fifa_id",
		"stage": "stage", "group": "group", "matchday": "matchday",
		"kickoff": "kickoff", "kickoff_at": "kickoff", "date": "kickoff",
		"timezone": "timezone", "tz": "timezone",
		"home": "home", "home_team": "home",
		"away": "away", "away_team": "away",
		"city": "city", "venue": "city",
	}
	out := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := aliases[key]; ok {
			if _, seen := out[canonical]; !seen {
				out[canonical] = i
			}
		}
	}
	return out
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseKickoff(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("kickoff is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized kickoff %q", raw)
}

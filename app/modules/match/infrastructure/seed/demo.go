package matchseed

import (
	"fmt"
	"strings"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DemoFixtures returns two GROUP A fixtures 24 hours apart, the first at the
// natural-language start ("tomorrow 18:00", "in 2 hours") read in timezone tz.
func DemoFixtures(start, tz string, now time.Time) ([]matchdomain.Match, error) {
	loc := time.UTC
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", tz, err)
		}
	}

	first, err := parseStart(start, now.In(loc))
	if err != nil {
		return nil, err
	}

	group := "A"
	day1, day2 := 1, 1
	return []matchdomain.Match{
		{
			Stage:     matchdomain.StageGroup,
			Group:     &group,
			Matchday:  &day1,
			KickoffAt: first.UTC(),
			HomeTeam:  "Argentina",
			AwayTeam:  "Canada",
		},
		{
			Stage:     matchdomain.StageGroup,
			Group:     &group,
			Matchday:  &day2,
			KickoffAt: first.Add(24 * time.Hour).UTC(),
			HomeTeam:  "Mexico",
			AwayTeam:  "USA",
		},
	}, nil
}

func parseStart(start string, now time.Time) (time.Time, error) {
	start = strings.TrimSpace(start)
	if start == "" {
		return now.Add(24 * time.Hour).Truncate(time.Minute), nil
	}
	if t, err := time.Parse(time.RFC3339, start); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(start, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse start %q: %w", start, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize start %q", start)
	}
	return r.Time.In(now.Location()).Truncate(time.Minute), nil
}

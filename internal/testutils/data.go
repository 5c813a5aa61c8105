package testutils

import (
	"fmt"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// DataGenerator builds realistic fixtures. A fixed seed reproduces a run.
type DataGenerator struct {
	faker *gofakeit.Faker
	seq   int
}

// NewDataGenerator creates a generator with an optional seed.
func NewDataGenerator(seed ...uint64) *DataGenerator {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = uint64(time.Now().UnixNano())
	}
	return &DataGenerator{faker: gofakeit.New(s)}
}

// UserID returns a guest-style id.
func (g *DataGenerator) UserID() string {
	return g.faker.LetterN(12)
}

// DisplayName returns a unique, valid display name.
func (g *DataGenerator) DisplayName() string {
	g.seq++
	return fmt.Sprintf("%s %d", g.faker.FirstName(), g.seq)
}

// Email returns a unique address.
func (g *DataGenerator) Email() string {
	g.seq++
	return fmt.Sprintf("%s.%d@%s", g.faker.Username(), g.seq, g.faker.DomainName())
}

// RoomName returns a plausible pool name.
func (g *DataGenerator) RoomName() string {
	return fmt.Sprintf("Prode %s", g.faker.Company())
}

// Team returns a country name.
func (g *DataGenerator) Team() string {
	return g.faker.Country()
}

// Match returns an unplayed fixture of stage kicking off at kickoff.
func (g *DataGenerator) Match(stage matchdomain.Stage, kickoff time.Time) matchdomain.Match {
	home := g.Team()
	away := g.Team()
	for away == home {
		away = g.Team()
	}
	city := g.faker.City()
	m := matchdomain.Match{
		ID:        uuid.New(),
		Stage:     stage,
		KickoffAt: kickoff.UTC(),
		HomeTeam:  home,
		AwayTeam:  away,
		City:      &city,
	}
	if stage == matchdomain.StageGroup {
		letter := string(rune('A' + g.faker.IntN(12)))
		m.Group = &letter
	}
	return m
}

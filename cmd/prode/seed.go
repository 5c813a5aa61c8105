package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Black-And-White-Club/prode/app/modules/match"
	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	matchseed "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/seed"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/Black-And-White-Club/prode/internal/eventbus"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/urfave/cli/v2"
)

func newSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "load match fixtures",
		Subcommands: []*cli.Command{
			{
				Name:      "xlsx",
				Usage:     "import the schedule from a spreadsheet",
				ArgsUsage: "<file.xlsx>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tz", Value: "UTC", Usage: "timezone for kickoffs without an offset"},
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("missing spreadsheet path")
					}
					loc, err := time.LoadLocation(c.String("tz"))
					if err != nil {
						return fmt.Errorf("invalid timezone: %w", err)
					}
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					defer f.Close()

					fixtures, err := matchseed.ParseScheduleXLSX(f, loc)
					if err != nil {
						return err
					}
					return importFixtures(c, fixtures)
				},
			},
			{
				Name:  "demo",
				Usage: "insert a short demo schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: `first kickoff, e.g. "2026-06-11 18:00" or "tomorrow at 6pm"`},
					&cli.StringFlag{Name: "tz", Value: "UTC", Usage: "timezone of --start"},
				},
				Action: func(c *cli.Context) error {
					fixtures, err := matchseed.DemoFixtures(c.String("start"), c.String("tz"), time.Now())
					if err != nil {
						return err
					}
					return importFixtures(c, fixtures)
				},
			},
		},
	}
}

func importFixtures(c *cli.Context, fixtures []matchdomain.Match) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	obs := observability.Init(config.ToObsConfig(cfg))

	db, err := bundb.Open(c.Context, cfg.Postgres.DSN, obs.Provider.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	bus := eventbus.NewInMemory(obs.Provider.Logger)
	defer bus.Close()

	matches, err := match.NewModule(c.Context, obs, db, bus, nil, nil)
	if err != nil {
		return err
	}

	n, err := matches.Service().ImportFixtures(c.Context, fixtures)
	if err != nil {
		return fmt.Errorf("failed to import fixtures: %w", err)
	}
	fmt.Printf("Imported %d of %d fixtures\n", n, len(fixtures))
	return nil
}

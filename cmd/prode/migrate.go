package main

import (
	"context"
	"fmt"
	"strings"

	matchmigrations "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories/migrations"
	predictionmigrations "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories/migrations"
	roommigrations "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

// newMigrators returns one migrator per module in dependency order. Each
// module tracks its own migration table so groups never interleave.
func newMigrators(db *bun.DB) []moduleMigrator {
	mk := func(name string, m *migrate.Migrations) moduleMigrator {
		return moduleMigrator{
			name: name,
			migrator: migrate.NewMigrator(db, m,
				migrate.WithTableName("bun_migrations_"+name),
				migrate.WithLocksTableName("bun_migration_locks_"+name),
			),
		}
	}
	return []moduleMigrator{
		mk("users", usermigrations.Migrations),
		mk("matches", matchmigrations.Migrations),
		mk("rooms", roommigrations.Migrations),
		mk("predictions", predictionmigrations.Migrations),
	}
}

func lookupMigrator(migrators []moduleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.name == name {
			return m.migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

// withMigrators opens the database for the duration of fn.
func withMigrators(c *cli.Context, fn func(ctx context.Context, db *bun.DB, migrators []moduleMigrator) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := bundb.Open(c.Context, cfg.Postgres.DSN, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(c.Context, db, newMigrators(db))
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, _ *bun.DB, migrators []moduleMigrator) error {
						for _, m := range migrators {
							fmt.Printf("Initializing migrations for module: %s\n", m.name)
							if err := m.migrator.Init(ctx); err != nil {
								return fmt.Errorf("init %s: %w", m.name, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "up",
				Usage: "apply pending migrations, including the job queue schema",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, _ *bun.DB, migrators []moduleMigrator) error {
						for _, m := range migrators {
							if err := m.migrator.Init(ctx); err != nil {
								return fmt.Errorf("init %s: %w", m.name, err)
							}
							if err := m.migrator.Lock(ctx); err != nil {
								return err
							}
							group, err := m.migrator.Migrate(ctx)
							_ = m.migrator.Unlock(ctx)
							if err != nil {
								return fmt.Errorf("migrate %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.name, group)
							}
						}
						return migrateRiver(c)
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, _ *bun.DB, migrators []moduleMigrator) error {
						for i := len(migrators) - 1; i >= 0; i-- {
							m := migrators[i]
							group, err := m.migrator.Rollback(ctx)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, _ *bun.DB, migrators []moduleMigrator) error {
						migrator, err := lookupMigrator(migrators, c.Args().First())
						if err != nil {
							return err
						}
						mf, err := migrator.CreateGoMigration(ctx, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, _ *bun.DB, migrators []moduleMigrator) error {
						for _, m := range migrators {
							ms, err := m.migrator.MigrationsWithStatus(ctx)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", m.name)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}

// migrateRiver applies the job queue schema used by the standings refresh.
func migrateRiver(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	pool, err := bundb.OpenPool(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	res, err := migrator.Migrate(c.Context, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}
	fmt.Printf("Applied %d river migrations\n", len(res.Versions))
	return nil
}

package testutils

import (
	"context"
	"fmt"
	"strings"
	"testing"

	matchmigrations "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories/migrations"
	predictionmigrations "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories/migrations"
	roommigrations "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// appTables lists every table truncated by Truncate.
var appTables = []string{"predictions", "room_members", "rooms", "matches", "users"}

// DB is a migrated database backed by a container.
type DB struct {
	Bun  *bun.DB
	Pool *pgxpool.Pool
	DSN  string
}

// NewDB starts Postgres, applies every module migration plus the River
// schema and closes the connections when t finishes.
func NewDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	dsn := StartPostgres(t)

	db, err := bundb.Open(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	pool, err := bundb.OpenPool(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, db, pool); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return &DB{Bun: db, Pool: pool, DSN: dsn}
}

// Migrate applies module migrations in dependency order, then River's.
func Migrate(ctx context.Context, db *bun.DB, pool *pgxpool.Pool) error {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"users", usermigrations.Migrations},
		{"matches", matchmigrations.Migrations},
		{"rooms", roommigrations.Migrations},
		{"predictions", predictionmigrations.Migrations},
	}
	for _, mod := range modules {
		migrator := migrate.NewMigrator(db, mod.migrations,
			migrate.WithTableName("bun_migrations_"+mod.name),
			migrate.WithLocksTableName("bun_migration_locks_"+mod.name),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("run %s migrations: %w", mod.name, err)
		}
	}

	if pool == nil {
		return nil
	}
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("run river migrations: %w", err)
	}
	return nil
}

// Truncate empties every application table and the River job table.
func (d *DB) Truncate(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := d.Bun.ExecContext(ctx, query); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	if _, err := d.Bun.ExecContext(ctx, "DELETE FROM river_job"); err != nil && !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("failed to clean river jobs: %v", err)
	}
}

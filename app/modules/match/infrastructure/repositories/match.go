package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a match is not found.
var ErrNotFound = errors.New("match not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new match repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error) {
	db = r.resolveDB(db)
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Where("m.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}
	return match, nil
}

func (r *Impl) ListAll(ctx context.Context, db bun.IDB) ([]Match, error) {
	db = r.resolveDB(db)
	var matches []Match
	err := db.NewSelect().
		Model(&matches).
		Order("m.kickoff_at ASC", "m.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *Impl) ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Match, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var matches []Match
	err := db.NewSelect().
		Model(&matches).
		Where("m.id IN (?)", bun.In(ids)).
		Order("m.kickoff_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches by id: %w", err)
	}
	return matches, nil
}

func (r *Impl) ListByStages(ctx context.Context, db bun.IDB, stages []string) ([]Match, error) {
	if len(stages) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var matches []Match
	err := db.NewSelect().
		Model(&matches).
		Where("m.stage IN (?)", bun.In(stages)).
		Order("m.kickoff_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches by stage: %w", err)
	}
	return matches, nil
}

func (r *Impl) UpdateResult(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	match.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(match).
		Column("home_team", "away_team", "home_goals", "away_goals", "decided_by_penalties", "pen_winner", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByFifaID refreshes schedule fields on conflict and never touches
// recorded results.
func (r *Impl) UpsertByFifaID(ctx context.Context, db bun.IDB, matches []*Match) (int, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, m := range matches {
		if m.FifaID == nil {
			return 0, fmt.Errorf("match %s has no fifa id", m.ID)
		}
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt = now
		m.UpdatedAt = now
	}
	result, err := db.NewInsert().
		Model(&matches).
		On("CONFLICT (fifa_id) DO UPDATE").
		Set("stage = EXCLUDED.stage").
		Set("group_letter = EXCLUDED.group_letter").
		Set("matchday = EXCLUDED.matchday").
		Set("kickoff_at = EXCLUDED.kickoff_at").
		Set("home_team = EXCLUDED.home_team").
		Set("away_team = EXCLUDED.away_team").
		Set("city = EXCLUDED.city").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert matches: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *Impl) Insert(ctx context.Context, db bun.IDB, matches []*Match) error {
	if len(matches) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt = now
		m.UpdatedAt = now
	}
	if _, err := db.NewInsert().Model(&matches).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert matches: %w", err)
	}
	return nil
}

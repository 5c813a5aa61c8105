package matchdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for match persistence.
type Repository interface {
	// GetByID retrieves a match by id.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error)

	// ListAll returns the whole schedule ordered by kickoff.
	ListAll(ctx context.Context, db bun.IDB) ([]Match, error)

	// ListByIDs returns the matches with the given ids.
	ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Match, error)

	// ListByStages returns every scheduled match of the given stages ordered by kickoff.
	ListByStages(ctx context.Context, db bun.IDB, stages []string) ([]Match, error)

	// UpdateResult persists result and team fields.
	UpdateResult(ctx context.Context, db bun.IDB, match *Match) error

	// UpsertByFifaID inserts fixtures or refreshes their schedule fields.
	UpsertByFifaID(ctx context.Context, db bun.IDB, matches []*Match) (int, error)

	// Insert creates fixtures without an external reference.
	Insert(ctx context.Context, db bun.IDB, matches []*Match) error
}

package roomdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a room or member is not found.
	ErrNotFound = errors.New("room not found")
	// ErrMemberNotFound is returned when a membership is not found.
	ErrMemberNotFound = errors.New("room member not found")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new room repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateRoom(ctx context.Context, db bun.IDB, room *Room) error {
	db = r.resolveDB(db)
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(room).Returning("created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *Impl) getRoom(ctx context.Context, db bun.IDB, where string, arg any) (*Room, error) {
	db = r.resolveDB(db)
	room := new(Room)
	if err := db.NewSelect().Model(room).Where(where, arg).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (r *Impl) GetRoomByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Room, error) {
	return r.getRoom(ctx, db, "r.id = ?", id)
}

func (r *Impl) GetRoomByCode(ctx context.Context, db bun.IDB, code string) (*Room, error) {
	return r.getRoom(ctx, db, "r.code = ?", code)
}

func (r *Impl) DeleteRoom(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().Model((*Room)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListRoomsForUser(ctx context.Context, db bun.IDB, userID string) ([]Membership, error) {
	db = r.resolveDB(db)
	var rows []Membership
	err := db.NewSelect().
		TableExpr("rooms AS r").
		Join("JOIN room_members AS rm ON rm.room_id = r.id").
		ColumnExpr("r.*").
		ColumnExpr("rm.role, rm.status").
		ColumnExpr("(SELECT COUNT(*) FROM room_members AS c WHERE c.room_id = r.id AND c.status = 'ACTIVE') AS member_count").
		Where("rm.user_id = ?", userID).
		Where("rm.status <> 'REJECTED'").
		Order("r.created_at DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms for user: %w", err)
	}
	return rows, nil
}

func (r *Impl) CreateMember(ctx context.Context, db bun.IDB, member *Member) error {
	db = r.resolveDB(db)
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(member).Returning("joined_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *Impl) selectMember(db bun.IDB, member *Member) *bun.SelectQuery {
	return db.NewSelect().
		Model(member).
		ColumnExpr("rm.*").
		ColumnExpr("u.display_name").
		Join("LEFT JOIN users AS u ON u.id = rm.user_id")
}

func (r *Impl) GetMember(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := r.selectMember(db, member).
		Where("rm.id = ?", memberID).
		Where("rm.room_id = ?", roomID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *Impl) GetMemberByUser(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := r.selectMember(db, member).
		Where("rm.room_id = ?", roomID).
		Where("rm.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by user: %w", err)
	}
	return member, nil
}

func (r *Impl) ListMembers(ctx context.Context, db bun.IDB, roomID uuid.UUID, status string) ([]Member, error) {
	db = r.resolveDB(db)
	var members []Member
	err := db.NewSelect().
		Model(&members).
		ColumnExpr("rm.*").
		ColumnExpr("u.display_name").
		Join("LEFT JOIN users AS u ON u.id = rm.user_id").
		Where("rm.room_id = ?", roomID).
		Where("rm.status = ?", status).
		Order("rm.joined_at ASC", "rm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *Impl) updateMember(ctx context.Context, db bun.IDB, memberID uuid.UUID, column, value string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Member)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *Impl) UpdateMemberStatus(ctx context.Context, db bun.IDB, memberID uuid.UUID, status string) error {
	return r.updateMember(ctx, db, memberID, "status", status)
}

func (r *Impl) UpdateMemberRole(ctx context.Context, db bun.IDB, memberID uuid.UUID, role string) error {
	return r.updateMember(ctx, db, memberID, "role", role)
}

func (r *Impl) DeleteMember(ctx context.Context, db bun.IDB, memberID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().Model((*Member)(nil)).Where("id = ?", memberID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

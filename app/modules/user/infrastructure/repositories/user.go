package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a user is not found.
	ErrNotFound = errors.New("user not found")
	// ErrDisplayNameTaken is returned on a display name unique violation.
	ErrDisplayNameTaken = errors.New("display name taken")
)

const uniqueViolation = "23505"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) getBy(ctx context.Context, db bun.IDB, column, value string) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("? = ?", bun.Ident("u."+column), value).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id string) (*User, error) {
	return r.getBy(ctx, db, "id", id)
}

func (r *Impl) GetByGoogleSub(ctx context.Context, db bun.IDB, sub string) (*User, error) {
	return r.getBy(ctx, db, "google_sub", sub)
}

func (r *Impl) GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	return r.getBy(ctx, db, "email", email)
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isDisplayNameViolation(err) {
			return ErrDisplayNameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *Impl) UpdateProfile(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	user.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(user).
		Column("email", "name", "image", "google_sub", "is_guest", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) UpdateDisplayName(ctx context.Context, db bun.IDB, id, displayName string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("display_name = ?", displayName).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		if isDisplayNameViolation(err) {
			return ErrDisplayNameTaken
		}
		return fmt.Errorf("failed to update display name: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) GuestData(ctx context.Context, db bun.IDB, id string) (GuestData, error) {
	db = r.resolveDB(db)
	var data GuestData
	err := db.NewRaw(`
		SELECT
			(SELECT COUNT(*) FROM room_members WHERE user_id = ?0) AS memberships,
			(SELECT COUNT(*) FROM predictions WHERE user_id = ?0) AS predictions
	`, id).Scan(ctx, &data)
	if err != nil {
		return GuestData{}, fmt.Errorf("failed to count guest data: %w", err)
	}
	return data, nil
}

// MergeGuest copies the guest's memberships without overwriting the
// account's: contribution is only filled when empty, the higher role wins and
// an ACTIVE guest membership activates a PENDING one. Predictions the account
// already has for a match are kept.
func (r *Impl) MergeGuest(ctx context.Context, db bun.IDB, guestID, accountID string) error {
	db = r.resolveDB(db)

	if _, err := db.NewRaw(`
		INSERT INTO room_members (id, room_id, user_id, role, status, contribution_text, joined_at)
		SELECT gen_random_uuid(), g.room_id, ?1, g.role, g.status, g.contribution_text, g.joined_at
		FROM room_members g
		WHERE g.user_id = ?0
		ON CONFLICT (room_id, user_id) DO UPDATE SET
			contribution_text = COALESCE(NULLIF(room_members.contribution_text, ''), EXCLUDED.contribution_text),
			role = CASE
				WHEN (CASE EXCLUDED.role WHEN 'OWNER' THEN 3 WHEN 'ADMIN' THEN 2 ELSE 1 END) >
				     (CASE room_members.role WHEN 'OWNER' THEN 3 WHEN 'ADMIN' THEN 2 ELSE 1 END)
				THEN EXCLUDED.role ELSE room_members.role END,
			status = CASE
				WHEN room_members.status = 'PENDING' AND EXCLUDED.status = 'ACTIVE'
				THEN 'ACTIVE' ELSE room_members.status END
	`, guestID, accountID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to merge guest memberships: %w", err)
	}

	if _, err := db.NewRaw(`
		INSERT INTO predictions (id, room_id, user_id, match_id, pred_home_goals, pred_away_goals, pred_pen_winner, created_at, updated_at)
		SELECT gen_random_uuid(), p.room_id, ?1, p.match_id, p.pred_home_goals, p.pred_away_goals, p.pred_pen_winner, p.created_at, p.updated_at
		FROM predictions p
		WHERE p.user_id = ?0
		ON CONFLICT (room_id, user_id, match_id) DO NOTHING
	`, guestID, accountID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to merge guest predictions: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM predictions WHERE user_id = ?`,
		`DELETE FROM room_members WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	} {
		if _, err := db.NewRaw(stmt, guestID).Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove guest: %w", err)
		}
	}
	return nil
}

func isDisplayNameViolation(err error) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Field('C') == uniqueViolation && pgErr.Field('n') == "users_display_name_key"
}

package roomdb

import (
	"time"

	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Room is the persisted room row.
type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:r"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	Code       string    `bun:"code,notnull,unique"`
	Name       string    `bun:"name,notnull"`
	EditPolicy string    `bun:"edit_policy,notnull"`
	AccessType string    `bun:"access_type,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (r *Room) ToDomain() roomdomain.Room {
	return roomdomain.Room{
		ID:         r.ID,
		Code:       r.Code,
		Name:       r.Name,
		EditPolicy: roomdomain.EditPolicy(r.EditPolicy),
		AccessType: roomdomain.AccessType(r.AccessType),
		CreatedAt:  r.CreatedAt,
	}
}

// Member is the persisted membership row. DisplayName is filled by joins
// with the users table.
type Member struct {
	bun.BaseModel `bun:"table:room_members,alias:rm"`

	ID               uuid.UUID `bun:"id,pk,type:uuid"`
	RoomID           uuid.UUID `bun:"room_id,notnull,type:uuid"`
	UserID           string    `bun:"user_id,notnull"`
	Role             string    `bun:"role,notnull"`
	Status           string    `bun:"status,notnull"`
	ContributionText string    `bun:"contribution_text,notnull,default:''"`
	JoinedAt         time.Time `bun:"joined_at,notnull,default:current_timestamp"`

	DisplayName *string `bun:"display_name,scanonly"`
}

func (m *Member) ToDomain() roomdomain.Member {
	name := roomdomain.GuestFallbackName
	if m.DisplayName != nil && *m.DisplayName != "" {
		name = *m.DisplayName
	}
	return roomdomain.Member{
		ID:               m.ID,
		RoomID:           m.RoomID,
		UserID:           m.UserID,
		DisplayName:      name,
		Role:             roomdomain.Role(m.Role),
		Status:           roomdomain.MemberStatus(m.Status),
		ContributionText: m.ContributionText,
		JoinedAt:         m.JoinedAt,
	}
}

// MembersToDomain converts rows preserving order.
func MembersToDomain(rows []Member) []roomdomain.Member {
	out := make([]roomdomain.Member, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}

// Membership is a room joined with the caller's membership.
type Membership struct {
	Room        `bun:",extend"`
	Role        string `bun:"role"`
	Status      string `bun:"status"`
	MemberCount int    `bun:"member_count"`
}

func (m *Membership) ToDomain() roomdomain.RoomMembership {
	return roomdomain.RoomMembership{
		Room:        m.Room.ToDomain(),
		Role:        roomdomain.Role(m.Role),
		Status:      roomdomain.MemberStatus(m.Status),
		MemberCount: m.MemberCount,
	}
}

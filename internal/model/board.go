package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   User          `gorm:"foreignKey:OwnerID"`
	Members []BoardMember `gorm:"foreignKey:BoardID"`
}

// BoardMember is one row of a board's membership set. The owner is implicitly
// authorized and does not need a row here. Member IDs are not validated against
// the users table.
type BoardMember struct {
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// HasMember reports whether userID is in the board's membership set.
// The caller is responsible for having preloaded Members.
func (b *Board) HasMember(userID uuid.UUID) bool {
	for _, m := range b.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the membership set as plain user IDs.
func (b *Board) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.Members))
	for i, m := range b.Members {
		ids[i] = m.UserID
	}
	return ids
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Board represents a kanban board owned by exactly one user
type Board struct {
	BaseModel
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	IsPrivate   bool          `gorm:"default:true" json:"isPrivate"`
	Members     []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Lists       []List        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"lists,omitempty"`
}

// MemberRole represents the role of a board member
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// BoardMember represents a user's membership on a board
type BoardMember struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_board_members_board_id;uniqueIndex:uq_board_members_board_user" json:"boardId"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_board_members_user_id;uniqueIndex:uq_board_members_board_user" json:"userId"`
	Role     MemberRole `gorm:"type:varchar(50);not null;default:'MEMBER'" json:"role"`
	JoinedAt time.Time  `gorm:"type:timestamp;not null;default:now()" json:"joinedAt"`
	Board    Board      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a task card within a list. BoardID is denormalized so
// access checks and room-scoped broadcasts never need a join through lists.
type Card struct {
	BaseModel
	ListID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_list_id" json:"listId"`
	BoardID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_board_id" json:"boardId"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Position     int        `gorm:"not null;default:0;index:idx_cards_position" json:"position"`
	IsCompleted  bool       `gorm:"default:false" json:"isCompleted"`
	AssigneeID   *uuid.UUID `gorm:"type:uuid;index:idx_cards_assignee_id" json:"assigneeId"`
	DueDate      *time.Time `gorm:"type:timestamp" json:"dueDate"`
	CommentCount int        `gorm:"not null;default:0" json:"commentCount"`
	List         List       `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"list,omitempty"`
	Comments     []Comment  `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}

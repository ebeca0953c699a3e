package domain

import "github.com/google/uuid"

// List represents a column of cards on a board. Position uses sparse
// integer spacing (multiples of PositionGap) so inserts between siblings
// do not renumber the whole sequence.
type List struct {
	BaseModel
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index:idx_lists_board_id" json:"boardId"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Position   int       `gorm:"not null;default:0;index:idx_lists_position" json:"position"`
	IsArchived bool      `gorm:"default:false;index:idx_lists_is_archived" json:"isArchived"`
	Board      Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
	Cards      []Card    `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// PositionGap is the spacing between freshly assigned sibling positions
const PositionGap = 1000

// TableName specifies the table name for List
func (List) TableName() string {
	return "lists"
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCardRequest represents the request to create a new card.
// ListID is taken from the route path; a body value is ignored.
type CreateCardRequest struct {
	ListID      uuid.UUID  `json:"listId" binding:"omitempty" swaggerignore:"true"`
	Title       string     `json:"title" binding:"required,min=1,max=255" example:"Fix login redirect"`
	Description string     `json:"description" binding:"omitempty,max=5000"`
	AssigneeID  *uuid.UUID `json:"assigneeId" binding:"omitempty"`
	DueDate     *time.Time `json:"dueDate" binding:"omitempty"`
}

// UpdateCardRequest represents the request to update a card.
// Nil fields are left unchanged.
type UpdateCardRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	IsCompleted *bool      `json:"isCompleted" binding:"omitempty"`
	AssigneeID  *uuid.UUID `json:"assigneeId" binding:"omitempty"`
	DueDate     *time.Time `json:"dueDate" binding:"omitempty"`
}

// MoveCardRequest represents the request to move a card to a target list
// and index. The index is the zero-based slot among the target list's
// active cards; the server derives the stored sparse position from it.
type MoveCardRequest struct {
	ListID uuid.UUID `json:"listId" binding:"required" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	Index  *int      `json:"index" binding:"required,gte=0" example:"1"`
}

// CardResponse represents the card response
type CardResponse struct {
	CardID       uuid.UUID  `json:"cardId" example:"c1d2e3f4-0516-4a7b-9c8d-7e6f5a4b3c2d"`
	ListID       uuid.UUID  `json:"listId" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	BoardID      uuid.UUID  `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title        string     `json:"title" example:"Fix login redirect"`
	Description  string     `json:"description"`
	Position     int        `json:"position" example:"1000"`
	IsCompleted  bool       `json:"isCompleted" example:"false"`
	AssigneeID   *uuid.UUID `json:"assigneeId"`
	DueDate      *time.Time `json:"dueDate"`
	CommentCount int        `json:"commentCount" example:"0"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CardMovedResponse is returned (and broadcast) after a move: the card id,
// its list after the move, and its recomputed position.
type CardMovedResponse struct {
	ID       uuid.UUID `json:"id" example:"c1d2e3f4-0516-4a7b-9c8d-7e6f5a4b3c2d"`
	ListID   uuid.UUID `json:"listId" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	Position int       `json:"position" example:"1500"`
}

// CardDeletedResponse is returned (and broadcast) after a card is deleted
type CardDeletedResponse struct {
	CardID  uuid.UUID `json:"cardId" example:"c1d2e3f4-0516-4a7b-9c8d-7e6f5a4b3c2d"`
	ListID  uuid.UUID `json:"listId" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	BoardID uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a new board
// @Description Request body for creating a new board. The creator becomes
// @Description the board owner and its first member.
type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"Sprint 12"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	IsPrivate   *bool  `json:"isPrivate" binding:"omitempty"`
}

// UpdateBoardRequest represents the request to update a board.
// Nil fields are left unchanged.
type UpdateBoardRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPrivate   *bool   `json:"isPrivate" binding:"omitempty"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	BoardID     uuid.UUID        `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	OwnerID     uuid.UUID        `json:"ownerId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Title       string           `json:"title" example:"Sprint 12"`
	Description string           `json:"description"`
	IsPrivate   bool             `json:"isPrivate" example:"true"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// BoardDetailResponse is the full board fetch used by clients to load or
// re-synchronize a board: board fields plus all active lists and cards.
type BoardDetailResponse struct {
	BoardResponse
	Lists []ListResponse `json:"lists"`
	Cards []CardResponse `json:"cards"`
}

// BoardDeletedResponse is broadcast when a board is deleted; every client
// subscribed to the board must drop it and leave its room.
type BoardDeletedResponse struct {
	BoardID uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
}

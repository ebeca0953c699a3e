package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddMemberRequest represents the request to add a member to a board
// @Description Request to add a user as a board member.
// @Description Adding a user who is already a member is a no-op and returns
// @Description the existing membership. BoardID is taken from the route path.
type AddMemberRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"omitempty" swaggerignore:"true"`
	UserID  uuid.UUID `json:"userId" binding:"required" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Role    string    `json:"role" binding:"omitempty,oneof=ADMIN MEMBER" example:"MEMBER"`
}

// MemberResponse represents a board membership
type MemberResponse struct {
	ID       uuid.UUID `json:"id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	BoardID  uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	UserID   uuid.UUID `json:"userId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Role     string    `json:"role" example:"MEMBER"`
	JoinedAt time.Time `json:"joinedAt" example:"2024-01-15T10:30:00Z"`
}

// MemberRemovedResponse is returned (and broadcast) when a membership is
// revoked. Clients receiving it for themselves must leave the board.
type MemberRemovedResponse struct {
	UserID  uuid.UUID `json:"userId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	BoardID uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
}

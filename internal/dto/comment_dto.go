package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a new comment.
// CardID is taken from the route path; a body value is ignored.
type CreateCommentRequest struct {
	CardID  uuid.UUID `json:"cardId" binding:"omitempty" swaggerignore:"true"`
	Content string    `json:"content" binding:"required,min=1"`
}

// UpdateCommentRequest represents the request to update a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	CommentID uuid.UUID `json:"commentId"`
	CardID    uuid.UUID `json:"cardId"`
	BoardID   uuid.UUID `json:"boardId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentDeletedResponse is returned (and broadcast) after a comment is
// deleted; cardId lets clients decrement the card's comment count.
type CommentDeletedResponse struct {
	CommentID uuid.UUID `json:"commentId"`
	CardID    uuid.UUID `json:"cardId"`
	BoardID   uuid.UUID `json:"boardId"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateListRequest represents the request to create a new list.
// BoardID is taken from the route path; a body value is ignored.
type CreateListRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"omitempty" swaggerignore:"true"`
	Title   string    `json:"title" binding:"required,min=1,max=255" example:"To Do"`
}

// UpdateListRequest represents the request to update a list.
// Setting isArchived to true removes the list from the active board view.
type UpdateListRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=255"`
	IsArchived *bool   `json:"isArchived" binding:"omitempty"`
}

// ListDeletedResponse is returned (and broadcast) after a list is deleted
type ListDeletedResponse struct {
	ListID  uuid.UUID `json:"listId" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	BoardID uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
}

// ListResponse represents the list response
type ListResponse struct {
	ListID     uuid.UUID `json:"listId" example:"9f4b1c2d-3e5a-4b6c-8d7e-0f1a2b3c4d5e"`
	BoardID    uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title      string    `json:"title" example:"To Do"`
	Position   int       `json:"position" example:"1000"`
	IsArchived bool      `json:"isArchived" example:"false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

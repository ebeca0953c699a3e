package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityResponse represents one activity log entry
type ActivityResponse struct {
	ActivityID uuid.UUID       `json:"activityId"`
	BoardID    uuid.UUID       `json:"boardId"`
	UserID     uuid.UUID       `json:"userId"`
	Type       string          `json:"type" example:"CARD_MOVED"`
	Data       json.RawMessage `json:"data" swaggertype:"object"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ActivityListResponse is a paginated page of a board's activity log,
// newest first
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int64              `json:"total" example:"134"`
	Page       int                `json:"page" example:"1"`
	Limit      int                `json:"limit" example:"50"`
}

package dto

import "time"

// UpdateSettingRequest represents the request to toggle a global flag
type UpdateSettingRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"false"`
}

// SettingResponse represents a global flag value
type SettingResponse struct {
	Key       string    `json:"key" example:"realtime_enabled"`
	Enabled   bool      `json:"enabled" example:"true"`
	UpdatedAt time.Time `json:"updatedAt"`
}

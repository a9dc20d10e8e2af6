package dto

import "time"

// Request DTOs

type CreateHoldRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
	// ReplaceHoldID releases a previous hold before acquiring the new one,
	// so one booking attempt can never hoard multiple slots
	ReplaceHoldID string `json:"replace_hold_id,omitempty"`
}

// Response DTOs

type HoldResponse struct {
	HoldID    string    `json:"hold_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

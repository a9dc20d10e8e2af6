package entity

import "time"

// SlotHold is a short-lived exclusive reservation of one (date, time) slot.
// Holds live in Redis, not the database; this struct is the value stored
// under the hold id key. Liveness is always computed from ExpiresAt at the
// point of use, never from a background sweep.
type SlotHold struct {
	ID        string    `json:"id"`
	SlotDate  string    `json:"slot_date"` // YYYY-MM-DD
	SlotTime  string    `json:"slot_time"` // HH:MM
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsLive reports whether the hold is still valid at the given instant
func (h *SlotHold) IsLive(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// Remaining returns the TTL left at the given instant, zero when expired
func (h *SlotHold) Remaining(now time.Time) time.Duration {
	remaining := h.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

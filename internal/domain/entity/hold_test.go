package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotHoldIsLive(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	hold := &SlotHold{
		ID:        "abc123",
		SlotDate:  "2025-06-10",
		SlotTime:  "10:30",
		CreatedAt: created,
		ExpiresAt: created.Add(10 * time.Minute),
	}

	assert.True(t, hold.IsLive(created))
	assert.True(t, hold.IsLive(created.Add(9*time.Minute+59*time.Second)))

	// Exactly at expiry the hold is dead
	assert.False(t, hold.IsLive(hold.ExpiresAt))
	assert.False(t, hold.IsLive(hold.ExpiresAt.Add(time.Second)))
}

func TestSlotHoldRemaining(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	hold := &SlotHold{
		CreatedAt: created,
		ExpiresAt: created.Add(10 * time.Minute),
	}

	assert.Equal(t, 10*time.Minute, hold.Remaining(created))
	assert.Equal(t, 3*time.Minute, hold.Remaining(created.Add(7*time.Minute)))
	assert.Equal(t, time.Duration(0), hold.Remaining(created.Add(11*time.Minute)))
}

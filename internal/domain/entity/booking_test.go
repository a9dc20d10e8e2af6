package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"draft to held", BookingStatusDraft, BookingStatusHeld, true},
		{"draft to confirmed", BookingStatusDraft, BookingStatusConfirmed, false},
		{"held to confirmed", BookingStatusHeld, BookingStatusConfirmed, true},
		{"held to completed", BookingStatusHeld, BookingStatusCompleted, false},
		{"held to draft", BookingStatusHeld, BookingStatusDraft, false},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to no_show", BookingStatusConfirmed, BookingStatusNoShow, true},
		{"confirmed to held", BookingStatusConfirmed, BookingStatusHeld, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"no_show is terminal", BookingStatusNoShow, BookingStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, booking.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingIsTerminal(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow} {
		booking := &Booking{Status: status}
		assert.True(t, booking.IsTerminal(), "status %s should be terminal", status)
	}

	for _, status := range []BookingStatus{BookingStatusDraft, BookingStatusHeld, BookingStatusConfirmed} {
		booking := &Booking{Status: status}
		assert.False(t, booking.IsTerminal(), "status %s should not be terminal", status)
	}
}

func TestBookingOccupiesSlot(t *testing.T) {
	cancelled := &Booking{Status: BookingStatusCancelled}
	assert.False(t, cancelled.OccupiesSlot())

	// Every non-cancelled status keeps the slot occupied, no_show included
	for _, status := range []BookingStatus{BookingStatusDraft, BookingStatusHeld, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusNoShow} {
		booking := &Booking{Status: status}
		assert.True(t, booking.OccupiesSlot(), "status %s should occupy the slot", status)
	}
}

func TestBookingHasRequiredDetails(t *testing.T) {
	complete := &Booking{
		CustomerName:        "Jo Smith",
		CustomerEmail:       "jo@example.com",
		VehicleRegistration: "AB12 CDE",
		Services:            []BookingService{{ServiceName: "MOT Test"}},
	}
	assert.True(t, complete.HasRequiredDetails())

	missingEmail := *complete
	missingEmail.CustomerEmail = ""
	assert.False(t, missingEmail.HasRequiredDetails())

	missingRegistration := *complete
	missingRegistration.VehicleRegistration = ""
	assert.False(t, missingRegistration.HasRequiredDetails())

	noServices := *complete
	noServices.Services = nil
	assert.False(t, noServices.HasRequiredDetails())
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusDraft     BookingStatus = "draft"
	BookingStatusHeld      BookingStatus = "held"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// BookingSource distinguishes self-service bookings from ones created by staff
type BookingSource string

const (
	BookingSourceOnline BookingSource = "online"
	BookingSourceManual BookingSource = "manual"
)

// PaymentStatus is metadata only; no payment gateway is involved
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// bookingTransitions is the closed transition table for booking statuses.
// Soft delete/restore is orthogonal and does not appear here.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusDraft:     {BookingStatusHeld},
	BookingStatusHeld:      {BookingStatusConfirmed},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
	BookingStatusNoShow:    {},
}

// Booking represents a garage service booking occupying one appointment slot
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference     string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`
	Status        BookingStatus `gorm:"type:booking_status;not null;default:'draft';index" json:"status"`
	Source        BookingSource `gorm:"type:booking_source;not null;default:'online'" json:"source"`
	PaymentStatus PaymentStatus `gorm:"type:payment_status;not null;default:'unpaid'" json:"payment_status"`

	SlotDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_bookings_slot" json:"slot_date"`
	SlotTime string    `gorm:"type:time;not null;uniqueIndex:idx_bookings_slot" json:"slot_time"`
	HoldID   *string   `gorm:"type:varchar(64)" json:"hold_id,omitempty"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(50)" json:"customer_phone"`

	VehicleRegistration string `gorm:"type:varchar(20);not null" json:"vehicle_registration"`
	VehicleMake         string `gorm:"type:varchar(100)" json:"vehicle_make"`
	VehicleModel        string `gorm:"type:varchar(100)" json:"vehicle_model"`
	EngineSizeCc        *int   `json:"engine_size_cc,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Services      []BookingService       `gorm:"foreignKey:BookingID" json:"services,omitempty"`
	StatusHistory []BookingStatusHistory `gorm:"foreignKey:BookingID" json:"status_history,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// CanTransitionTo reports whether moving to the target status is legal
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transition is possible
func (b *Booking) IsTerminal() bool {
	return len(bookingTransitions[b.Status]) == 0
}

// IsConfirmed checks if booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// OccupiesSlot reports whether the booking blocks its (date, time) slot.
// Cancelled bookings free the slot; everything else keeps it occupied.
func (b *Booking) OccupiesSlot() bool {
	return b.Status != BookingStatusCancelled
}

// HasRequiredDetails reports whether customer and vehicle fields needed
// for confirmation are present
func (b *Booking) HasRequiredDetails() bool {
	return b.CustomerName != "" &&
		b.CustomerEmail != "" &&
		b.VehicleRegistration != "" &&
		len(b.Services) > 0
}

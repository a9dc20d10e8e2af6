package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatusHistory is an append-only record of booking status changes.
// Rows are never updated or deleted; soft delete/restore of the booking does
// not append entries.
type BookingStatusHistory struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID     `gorm:"type:uuid;not null;index" json:"booking_id"`
	Status    BookingStatus `gorm:"type:booking_status;not null" json:"status"`
	ChangedAt time.Time     `gorm:"autoCreateTime" json:"changed_at"`
}

func (BookingStatusHistory) TableName() string {
	return "booking_status_history"
}

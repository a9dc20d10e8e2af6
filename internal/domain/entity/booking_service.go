package entity

import (
	"github.com/google/uuid"
)

// BookingService is one service line on a booking. UnitPricePence is frozen
// at confirmation time (or at creation for manual bookings) and is never
// re-resolved afterwards.
type BookingService struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"booking_id"`
	ServiceID      uuid.UUID  `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName    string     `gorm:"type:varchar(255);not null" json:"service_name"`
	EngineTierID   *uuid.UUID `gorm:"type:uuid" json:"engine_tier_id,omitempty"`
	UnitPricePence int64      `gorm:"not null;default:0" json:"unit_price_pence"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
}

func (BookingService) TableName() string {
	return "booking_services"
}

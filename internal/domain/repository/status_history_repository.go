package repository

import (
	"garage-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusHistoryRepository interface {
	// Append inserts one history row; history is append-only and rows are
	// never updated or removed
	Append(db *gorm.DB, bookingID uuid.UUID, status entity.BookingStatus) error
	FindByBookingID(db *gorm.DB, bookingID uuid.UUID) ([]entity.BookingStatusHistory, error)
}

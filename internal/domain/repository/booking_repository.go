package repository

import (
	"time"

	"garage-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	// FindByIDIncludingDeleted also returns soft-deleted bookings (restore path)
	FindByIDIncludingDeleted(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindAll(db *gorm.DB, includeDeleted bool) ([]entity.Booking, error)
	// FindOccupiedTimesByDate returns slot times taken by non-cancelled,
	// non-deleted bookings on the given date
	FindOccupiedTimesByDate(db *gorm.DB, date time.Time) ([]string, error)
	// ExistsForSlot reports whether a non-cancelled, non-deleted booking
	// already occupies the (date, time) slot
	ExistsForSlot(db *gorm.DB, date time.Time, slotTime string) (bool, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookingStatus) error
	UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, status entity.PaymentStatus) error
	SoftDelete(db *gorm.DB, id uuid.UUID) error
	Restore(db *gorm.DB, id uuid.UUID) error
	CreateServices(db *gorm.DB, services []entity.BookingService) error
	UpdateServicePrice(db *gorm.DB, id uuid.UUID, tierID *uuid.UUID, pricePence int64) error
}

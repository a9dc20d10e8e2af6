package repository

import (
	"errors"
	"time"

	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Services").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIDIncludingDeleted(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Unscoped().
		Preload("Services").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB, includeDeleted bool) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := db.Preload("Services").Order("slot_date DESC, slot_time DESC")
	if includeDeleted {
		query = query.Unscoped()
	}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindOccupiedTimesByDate(db *gorm.DB, date time.Time) ([]string, error) {
	var times []string
	err := db.Model(&entity.Booking{}).
		Where("slot_date = ? AND status != ?", date, entity.BookingStatusCancelled).
		Pluck("slot_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *bookingRepository) ExistsForSlot(db *gorm.DB, date time.Time, slotTime string) (bool, error) {
	var count int64
	err := db.Model(&entity.Booking{}).
		Where("slot_date = ? AND slot_time = ? AND status != ?", date, slotTime, entity.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookingStatus) error {
	return db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, status entity.PaymentStatus) error {
	return db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *bookingRepository) SoftDelete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Booking{}).Error
}

// Restore clears the soft-delete marker; the booking returns to whatever
// status it held before deletion
func (r *bookingRepository) Restore(db *gorm.DB, id uuid.UUID) error {
	return db.Unscoped().Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *bookingRepository) CreateServices(db *gorm.DB, services []entity.BookingService) error {
	if len(services) == 0 {
		return nil
	}
	return db.Create(&services).Error
}

func (r *bookingRepository) UpdateServicePrice(db *gorm.DB, id uuid.UUID, tierID *uuid.UUID, pricePence int64) error {
	return db.Model(&entity.BookingService{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"engine_tier_id":   tierID,
			"unit_price_pence": pricePence,
		}).Error
}

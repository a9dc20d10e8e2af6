package repository

import (
	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statusHistoryRepository struct{}

func NewStatusHistoryRepository() domainRepo.StatusHistoryRepository {
	return &statusHistoryRepository{}
}

func (r *statusHistoryRepository) Append(db *gorm.DB, bookingID uuid.UUID, status entity.BookingStatus) error {
	entry := &entity.BookingStatusHistory{
		BookingID: bookingID,
		Status:    status,
	}
	return db.Create(entry).Error
}

func (r *statusHistoryRepository) FindByBookingID(db *gorm.DB, bookingID uuid.UUID) ([]entity.BookingStatusHistory, error) {
	var entries []entity.BookingStatusHistory
	err := db.Where("booking_id = ?", bookingID).
		Order("changed_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

package repository

import (
	"time"

	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) FindTemplateSlotsByWeekday(db *gorm.DB, weekday time.Weekday) ([]entity.TemplateSlot, error) {
	var slots []entity.TemplateSlot
	err := db.Where("weekday = ?", int(weekday)).
		Order("slot_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *scheduleRepository) FindExtraSlotsByDate(db *gorm.DB, date time.Time) ([]entity.ExtraSlot, error) {
	var slots []entity.ExtraSlot
	err := db.Where("slot_date = ?", date).
		Order("slot_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *scheduleRepository) IsExceptionDate(db *gorm.DB, date time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.ExceptionDate{}).
		Where("slot_date = ?", date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"time"

	"garage-booking-service/internal/domain/entity"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	FindTemplateSlotsByWeekday(db *gorm.DB, weekday time.Weekday) ([]entity.TemplateSlot, error)
	FindExtraSlotsByDate(db *gorm.DB, date time.Time) ([]entity.ExtraSlot, error)
	IsExceptionDate(db *gorm.DB, date time.Time) (bool, error)
}

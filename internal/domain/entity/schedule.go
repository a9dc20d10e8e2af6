package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSlot is one weekly default slot time, keyed by day of week.
// Weekday follows time.Weekday (0 = Sunday).
type TemplateSlot struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Weekday  int       `gorm:"not null;index" json:"weekday"`
	SlotTime string    `gorm:"type:time;not null" json:"slot_time"`
}

func (TemplateSlot) TableName() string {
	return "template_slots"
}

// ExtraSlot is an admin-added slot for one exact date, on top of the weekly
// template. Extra slots may fall on any day of the week.
type ExtraSlot struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SlotDate time.Time `gorm:"type:date;not null;index" json:"slot_date"`
	SlotTime string    `gorm:"type:time;not null" json:"slot_time"`
}

func (ExtraSlot) TableName() string {
	return "extra_slots"
}

// ExceptionDate marks a closure or holiday: the date has no slots at all,
// template and extra slots included.
type ExceptionDate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SlotDate time.Time `gorm:"type:date;not null;uniqueIndex" json:"slot_date"`
	Reason   string    `gorm:"type:varchar(255)" json:"reason"`
}

func (ExceptionDate) TableName() string {
	return "exception_dates"
}

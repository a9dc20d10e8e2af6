package repository

import (
	"garage-booking-service/internal/domain/entity"

	"gorm.io/gorm"
)

type SequenceRepository interface {
	// Next atomically increments and returns the counter for (key, year).
	// Implementations must use a single increment-and-return statement so
	// two concurrent callers can never observe the same value.
	Next(db *gorm.DB, key entity.DocumentType, year int) (int64, error)
}

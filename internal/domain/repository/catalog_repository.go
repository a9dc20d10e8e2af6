package repository

import (
	"garage-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	// FindServiceByID loads a service with its tiers ordered by ascending
	// max_cc, unbounded tier last
	FindServiceByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
}

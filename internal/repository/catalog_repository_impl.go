package repository

import (
	"errors"

	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogRepository struct{}

func NewCatalogRepository() domainRepo.CatalogRepository {
	return &catalogRepository{}
}

func (r *catalogRepository) FindServiceByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		// ascending bound, unbounded tier last
		return db.Order("max_cc ASC NULLS LAST")
	}).Where("id = ? AND is_active = ?", id, true).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

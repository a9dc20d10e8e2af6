package repository

import (
	"garage-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(db *gorm.DB, document *entity.Document) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Document, error)
	FindAll(db *gorm.DB, docType *entity.DocumentType) ([]entity.Document, error)
	Update(db *gorm.DB, document *entity.Document) error
	// ReplaceLines swaps a draft's lines wholesale; issued documents never
	// reach this path
	ReplaceLines(db *gorm.DB, documentID uuid.UUID, lines []entity.DocumentLine) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.DocumentStatus) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

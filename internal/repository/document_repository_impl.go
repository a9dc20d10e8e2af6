package repository

import (
	"errors"

	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRepository struct{}

func NewDocumentRepository() domainRepo.DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(db *gorm.DB, document *entity.Document) error {
	return db.Create(document).Error
}

func (r *documentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := db.Preload("Lines").Where("id = ?", id).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindAll(db *gorm.DB, docType *entity.DocumentType) ([]entity.Document, error) {
	var documents []entity.Document
	query := db.Preload("Lines").Order("created_at DESC")
	if docType != nil {
		query = query.Where("type = ?", *docType)
	}
	if err := query.Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) Update(db *gorm.DB, document *entity.Document) error {
	return db.Omit("Lines").Save(document).Error
}

func (r *documentRepository) ReplaceLines(db *gorm.DB, documentID uuid.UUID, lines []entity.DocumentLine) error {
	if err := db.Where("document_id = ?", documentID).Delete(&entity.DocumentLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].DocumentID = documentID
	}
	return db.Create(&lines).Error
}

func (r *documentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.DocumentStatus) error {
	return db.Model(&entity.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *documentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	if err := db.Where("document_id = ?", id).Delete(&entity.DocumentLine{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Document{}).Error
}

package repository

import (
	"garage-booking-service/internal/domain/entity"
	domainRepo "garage-booking-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct{}

func NewSequenceRepository() domainRepo.SequenceRepository {
	return &sequenceRepository{}
}

// Next performs the increment and the read as ONE statement: an upsert that
// either creates the (key, year) row at 1 or bumps the existing counter, with
// RETURNING handing back the value this caller owns. Postgres row locking
// makes two concurrent callers serialize on the row, so duplicate counters
// are structurally impossible.
func (r *sequenceRepository) Next(db *gorm.DB, key entity.DocumentType, year int) (int64, error) {
	seq := entity.DocumentSequence{Key: key, Year: year, Counter: 1}
	err := db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"counter": gorm.Expr("document_sequences.counter + 1"),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "counter"}}},
	).Create(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq.Counter, nil
}

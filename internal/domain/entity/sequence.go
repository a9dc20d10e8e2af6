package entity

// DocumentSequence holds the per-(key, year) counter backing document
// numbering. The counter only ever increases; the next value is always
// obtained with a single atomic increment-and-return statement, never by
// reading and writing in two steps.
type DocumentSequence struct {
	Key     DocumentType `gorm:"type:document_type;primaryKey" json:"key"`
	Year    int          `gorm:"primaryKey" json:"year"`
	Counter int64        `gorm:"not null;default:0" json:"counter"`
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}

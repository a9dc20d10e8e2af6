package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the kind of financial document
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeQuote   DocumentType = "quote"
)

// DocumentStatus represents the lifecycle of a financial document,
// decoupled from the booking status
type DocumentStatus string

const (
	DocumentStatusDraft  DocumentStatus = "draft"
	DocumentStatusIssued DocumentStatus = "issued"
	DocumentStatusSent   DocumentStatus = "sent"
	DocumentStatusPaid   DocumentStatus = "paid"
	DocumentStatusVoid   DocumentStatus = "void"
)

// DraftNumber is the placeholder number a document carries before issuance
const DraftNumber = "DRAFT"

var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:  {DocumentStatusIssued},
	DocumentStatusIssued: {DocumentStatusSent, DocumentStatusPaid, DocumentStatusVoid},
	DocumentStatusSent:   {DocumentStatusPaid, DocumentStatusVoid},
	DocumentStatusPaid:   {},
	DocumentStatusVoid:   {},
}

// Document represents an invoice or quote. Once issued, the number and the
// computed totals are immutable; only status transitions remain.
type Document struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type      DocumentType   `gorm:"type:document_type;not null;index" json:"type"`
	Status    DocumentStatus `gorm:"type:document_status;not null;default:'draft';index" json:"status"`
	Number    string         `gorm:"type:varchar(50);not null;default:'DRAFT'" json:"number"`
	BookingID *uuid.UUID     `gorm:"type:uuid;index" json:"booking_id,omitempty"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`

	TotalAmountPence int64 `gorm:"not null;default:0" json:"total_amount_pence"`
	VatAmountPence   int64 `gorm:"not null;default:0" json:"vat_amount_pence"`

	PdfURL   string     `gorm:"type:text" json:"pdf_url"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Lines []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// CanTransitionTo reports whether moving to the target status is legal
func (d *Document) CanTransitionTo(target DocumentStatus) bool {
	for _, allowed := range documentTransitions[d.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsDraft checks if the document can still be edited or deleted
func (d *Document) IsDraft() bool {
	return d.Status == DocumentStatusDraft
}

// IsIssued reports whether the document has received its final number
func (d *Document) IsIssued() bool {
	return d.Status != DocumentStatusDraft
}

// Prefix returns the external number prefix for the document type
func (t DocumentType) Prefix() string {
	if t == DocumentTypeInvoice {
		return "INV"
	}
	return "QUO"
}

// FormatDocumentNumber renders the external document number,
// e.g. INV-2025-0001
func FormatDocumentNumber(docType DocumentType, year int, counter int64) string {
	return fmt.Sprintf("%s-%d-%04d", docType.Prefix(), year, counter)
}

// DocumentLine is one payload line on a document. VatRatePercent overrides
// the account default when set.
type DocumentLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DocumentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Description    string    `gorm:"type:varchar(255);not null" json:"description"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	UnitPricePence int64     `gorm:"not null" json:"unit_price_pence"`
	VatRatePercent *int      `json:"vat_rate_percent,omitempty"`
}

func (DocumentLine) TableName() string {
	return "document_lines"
}

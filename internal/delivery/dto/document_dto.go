package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type DocumentLineRequest struct {
	Description    string `json:"description" validate:"required,max=255"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	UnitPricePence int64  `json:"unit_price_pence" validate:"min=0"`
	VatRatePercent *int   `json:"vat_rate_percent,omitempty" validate:"omitempty,min=0,max=100"`
}

type DocumentCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateDocumentRequest struct {
	Type      string                  `json:"type" validate:"required,oneof=invoice quote"`
	BookingID *uuid.UUID              `json:"booking_id,omitempty"`
	Customer  DocumentCustomerRequest `json:"customer" validate:"required"`
	Lines     []DocumentLineRequest   `json:"lines" validate:"required,min=1,dive"`
}

type UpdateDocumentRequest struct {
	Customer DocumentCustomerRequest `json:"customer" validate:"required"`
	Lines    []DocumentLineRequest   `json:"lines" validate:"required,min=1,dive"`
}

type UpdateDocumentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=sent paid void"`
}

// Response DTOs

type DocumentLineResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	UnitPricePence int64     `json:"unit_price_pence"`
	VatRatePercent *int      `json:"vat_rate_percent,omitempty"`
}

type DocumentResponse struct {
	ID               uuid.UUID              `json:"id"`
	Type             string                 `json:"type"`
	Status           string                 `json:"status"`
	Number           string                 `json:"number"`
	BookingID        *uuid.UUID             `json:"booking_id,omitempty"`
	CustomerName     string                 `json:"customer_name"`
	CustomerEmail    string                 `json:"customer_email,omitempty"`
	TotalAmountPence int64                  `json:"total_amount_pence"`
	VatAmountPence   int64                  `json:"vat_amount_pence"`
	PdfURL           string                 `json:"pdf_url,omitempty"`
	IssuedAt         *time.Time             `json:"issued_at,omitempty"`
	DueAt            *time.Time             `json:"due_at,omitempty"`
	Lines            []DocumentLineResponse `json:"lines"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}

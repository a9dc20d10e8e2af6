package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=50"`
}

type VehicleRequest struct {
	Registration string `json:"registration" validate:"required,max=20"`
	Make         string `json:"make" validate:"max=100"`
	Model        string `json:"model" validate:"max=100"`
	EngineSizeCc *int   `json:"engine_size_cc,omitempty" validate:"omitempty,min=1"`
}

type BookingServiceRequest struct {
	ServiceID    uuid.UUID  `json:"service_id" validate:"required"`
	EngineTierID *uuid.UUID `json:"engine_tier_id,omitempty"`
	Quantity     int        `json:"quantity" validate:"omitempty,min=1"`
}

type CreateBookingRequest struct {
	Date     string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string                  `json:"time" validate:"required,datetime=15:04"`
	HoldID   string                  `json:"hold_id" validate:"required"`
	Customer CustomerRequest         `json:"customer" validate:"required"`
	Vehicle  VehicleRequest          `json:"vehicle" validate:"required"`
	Services []BookingServiceRequest `json:"services" validate:"required,min=1,dive"`
}

type CreateManualBookingRequest struct {
	Date     string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string                  `json:"time" validate:"required,datetime=15:04"`
	Customer CustomerRequest         `json:"customer" validate:"required"`
	Vehicle  VehicleRequest          `json:"vehicle" validate:"required"`
	Services []BookingServiceRequest `json:"services" validate:"required,min=1,dive"`
}

type ConfirmBookingRequest struct {
	CaptchaToken string `json:"captcha_token"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled no_show"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=unpaid paid refunded"`
}

// Response DTOs

type BookingServiceResponse struct {
	ID             uuid.UUID  `json:"id"`
	ServiceID      uuid.UUID  `json:"service_id"`
	ServiceName    string     `json:"service_name"`
	EngineTierID   *uuid.UUID `json:"engine_tier_id,omitempty"`
	UnitPricePence int64      `json:"unit_price_pence"`
	Quantity       int        `json:"quantity"`
}

type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

type BookingResponse struct {
	ID                  uuid.UUID                `json:"id"`
	Reference           string                   `json:"reference"`
	Status              string                   `json:"status"`
	Source              string                   `json:"source"`
	PaymentStatus       string                   `json:"payment_status"`
	SlotDate            string                   `json:"slot_date"`
	SlotTime            string                   `json:"slot_time"`
	CustomerName        string                   `json:"customer_name"`
	CustomerEmail       string                   `json:"customer_email"`
	CustomerPhone       string                   `json:"customer_phone,omitempty"`
	VehicleRegistration string                   `json:"vehicle_registration"`
	VehicleMake         string                   `json:"vehicle_make,omitempty"`
	VehicleModel        string                   `json:"vehicle_model,omitempty"`
	EngineSizeCc        *int                     `json:"engine_size_cc,omitempty"`
	Services            []BookingServiceResponse `json:"services"`
	StatusHistory       []StatusHistoryResponse  `json:"status_history,omitempty"`
	Deleted             bool                     `json:"deleted,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type ConfirmBookingResponse struct {
	Reference string                   `json:"reference"`
	Booking   *BookingResponse         `json:"booking"`
	Documents ConfirmDocumentsResponse `json:"documents"`
}

type ConfirmDocumentsResponse struct {
	Invoice *DocumentResponse `json:"invoice"`
	Quote   *DocumentResponse `json:"quote"`
}

package converter

import (
	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:                  booking.ID,
		Reference:           booking.Reference,
		Status:              string(booking.Status),
		Source:              string(booking.Source),
		PaymentStatus:       string(booking.PaymentStatus),
		SlotDate:            booking.SlotDate.Format("2006-01-02"),
		SlotTime:            booking.SlotTime,
		CustomerName:        booking.CustomerName,
		CustomerEmail:       booking.CustomerEmail,
		CustomerPhone:       booking.CustomerPhone,
		VehicleRegistration: booking.VehicleRegistration,
		VehicleMake:         booking.VehicleMake,
		VehicleModel:        booking.VehicleModel,
		EngineSizeCc:        booking.EngineSizeCc,
		Deleted:             booking.DeletedAt.Valid,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}

	response.Services = make([]dto.BookingServiceResponse, len(booking.Services))
	for i, svc := range booking.Services {
		response.Services[i] = dto.BookingServiceResponse{
			ID:             svc.ID,
			ServiceID:      svc.ServiceID,
			ServiceName:    svc.ServiceName,
			EngineTierID:   svc.EngineTierID,
			UnitPricePence: svc.UnitPricePence,
			Quantity:       svc.Quantity,
		}
	}

	if len(booking.StatusHistory) > 0 {
		response.StatusHistory = make([]dto.StatusHistoryResponse, len(booking.StatusHistory))
		for i, entry := range booking.StatusHistory {
			response.StatusHistory[i] = dto.StatusHistoryResponse{
				Status:    string(entry.Status),
				ChangedAt: entry.ChangedAt,
			}
		}
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

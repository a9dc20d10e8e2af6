package converter

import (
	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
)

// DocumentToResponse converts a Document entity to DocumentResponse DTO
func DocumentToResponse(document *entity.Document) *dto.DocumentResponse {
	if document == nil {
		return nil
	}

	response := &dto.DocumentResponse{
		ID:               document.ID,
		Type:             string(document.Type),
		Status:           string(document.Status),
		Number:           document.Number,
		BookingID:        document.BookingID,
		CustomerName:     document.CustomerName,
		CustomerEmail:    document.CustomerEmail,
		TotalAmountPence: document.TotalAmountPence,
		VatAmountPence:   document.VatAmountPence,
		PdfURL:           document.PdfURL,
		IssuedAt:         document.IssuedAt,
		DueAt:            document.DueAt,
		CreatedAt:        document.CreatedAt,
		UpdatedAt:        document.UpdatedAt,
	}

	response.Lines = make([]dto.DocumentLineResponse, len(document.Lines))
	for i, line := range document.Lines {
		response.Lines[i] = dto.DocumentLineResponse{
			ID:             line.ID,
			Description:    line.Description,
			Quantity:       line.Quantity,
			UnitPricePence: line.UnitPricePence,
			VatRatePercent: line.VatRatePercent,
		}
	}

	return response
}

// DocumentsToResponses converts a slice of Document entities to slice of DocumentResponse DTOs
func DocumentsToResponses(documents []entity.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(documents))
	for i, document := range documents {
		resp := DocumentToResponse(&document)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

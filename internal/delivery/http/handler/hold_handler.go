package handler

import (
	"encoding/json"
	"net/http"

	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/service"
	"garage-booking-service/internal/usecase"
	"garage-booking-service/pkg/response"
	"garage-booking-service/pkg/validator"

	"github.com/gorilla/mux"
)

type HoldHandler struct {
	holdUsecase usecase.HoldUsecase
	validator   *validator.CustomValidator
}

func NewHoldHandler(holdUsecase usecase.HoldUsecase, validator *validator.CustomValidator) *HoldHandler {
	return &HoldHandler{
		holdUsecase: holdUsecase,
		validator:   validator,
	}
}

func (h *HoldHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hold, err := h.holdUsecase.CreateHold(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrSlotNotBookable:
			response.NotFound(w, "Slot does not exist on this date")
		case service.ErrSlotUnavailable:
			response.Conflict(w, "Slot is already held or booked")
		default:
			response.InternalServerError(w, "Failed to create hold")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Hold created successfully", hold)
}

func (h *HoldHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	holdID := vars["holdId"]
	if holdID == "" {
		response.Error(w, http.StatusBadRequest, "Invalid hold ID", nil)
		return
	}

	if err := h.holdUsecase.ReleaseHold(r.Context(), holdID); err != nil {
		response.InternalServerError(w, "Failed to release hold")
		return
	}

	response.Success(w, http.StatusOK, "Hold released successfully", nil)
}

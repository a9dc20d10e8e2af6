package handler

import (
	"encoding/json"
	"net/http"

	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/usecase"
	"garage-booking-service/pkg/response"
	"garage-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

func (h *DocumentHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	document, err := h.documentUsecase.CreateDraft(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create document")
		return
	}

	response.Success(w, http.StatusCreated, "Document created successfully", document)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	document, err := h.documentUsecase.GetDocument(r.Context(), documentID)
	if err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			response.InternalServerError(w, "Failed to get document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document retrieved successfully", document)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docType := r.URL.Query().Get("type")
	if docType != "" && docType != string(entity.DocumentTypeInvoice) && docType != string(entity.DocumentTypeQuote) {
		response.BadRequest(w, "Query parameter 'type' must be invoice or quote")
		return
	}

	documents, err := h.documentUsecase.ListDocuments(r.Context(), docType)
	if err != nil {
		response.InternalServerError(w, "Failed to list documents")
		return
	}

	response.Success(w, http.StatusOK, "Documents retrieved successfully", documents)
}

func (h *DocumentHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	document, err := h.documentUsecase.UpdateDraft(r.Context(), documentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		case usecase.ErrDocumentNotEditable:
			response.Conflict(w, "Only draft documents can be edited")
		default:
			response.InternalServerError(w, "Failed to update document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document updated successfully", document)
}

func (h *DocumentHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	if err := h.documentUsecase.DeleteDraft(r.Context(), documentID); err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		case usecase.ErrDocumentNotEditable:
			response.Conflict(w, "Only draft documents can be deleted")
		default:
			response.InternalServerError(w, "Failed to delete document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document deleted successfully", nil)
}

func (h *DocumentHandler) IssueDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	document, err := h.documentUsecase.IssueDocument(r.Context(), documentID)
	if err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		case usecase.ErrInvalidDocumentMove:
			response.Conflict(w, "Document cannot be issued in its current state")
		default:
			response.InternalServerError(w, "Failed to issue document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document issued successfully", document)
}

func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	var req dto.UpdateDocumentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	document, err := h.documentUsecase.UpdateStatus(r.Context(), documentID, entity.DocumentStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		case usecase.ErrInvalidDocumentMove:
			response.Conflict(w, "Status transition is not allowed")
		default:
			response.InternalServerError(w, "Failed to update document status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document status updated successfully", document)
}

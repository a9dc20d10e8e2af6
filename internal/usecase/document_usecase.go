package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garage-booking-service/internal/converter"
	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/domain/repository"
	"garage-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentNotEditable = errors.New("only draft documents can be edited or deleted")
	ErrInvalidDocumentMove = errors.New("document status transition is not allowed")
)

type DocumentUsecase interface {
	CreateDraft(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, documentID uuid.UUID) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, docType string) (*dto.DocumentListResponse, error)
	UpdateDraft(ctx context.Context, documentID uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDraft(ctx context.Context, documentID uuid.UUID) error
	IssueDocument(ctx context.Context, documentID uuid.UUID) (*dto.DocumentResponse, error)
	UpdateStatus(ctx context.Context, documentID uuid.UUID, status entity.DocumentStatus) (*dto.DocumentResponse, error)
}

type documentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	documentRepo repository.DocumentRepository
	sequenceRepo repository.SequenceRepository
	totalsEngine *service.TotalsEngine
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	documentRepo repository.DocumentRepository,
	sequenceRepo repository.SequenceRepository,
	totalsEngine *service.TotalsEngine,
) DocumentUsecase {
	return &documentUsecase{
		db:           db,
		log:          log,
		documentRepo: documentRepo,
		sequenceRepo: sequenceRepo,
		totalsEngine: totalsEngine,
	}
}

// CreateDraft creates a standalone document in DRAFT: no number allocated,
// totals computed for display only and recomputed on every edit.
func (u *documentUsecase) CreateDraft(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	lines := linesFromRequest(req.Lines)
	totals := u.totalsEngine.Compute(lines)

	document := &entity.Document{
		Type:             entity.DocumentType(req.Type),
		Status:           entity.DocumentStatusDraft,
		Number:           entity.DraftNumber,
		BookingID:        req.BookingID,
		CustomerName:     req.Customer.Name,
		CustomerEmail:    req.Customer.Email,
		TotalAmountPence: totals.TotalAmountPence,
		VatAmountPence:   totals.VatAmountPence,
		Lines:            lines,
	}

	if err := u.documentRepo.Create(u.db.WithContext(ctx), document); err != nil {
		u.log.Errorf("Failed to create draft document: %+v", err)
		return nil, err
	}

	u.log.Infof("Draft document created: id=%s, type=%s", document.ID, document.Type)
	return u.GetDocument(ctx, document.ID)
}

func (u *documentUsecase) GetDocument(ctx context.Context, documentID uuid.UUID) (*dto.DocumentResponse, error) {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), documentID)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", documentID, err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	return converter.DocumentToResponse(document), nil
}

func (u *documentUsecase) ListDocuments(ctx context.Context, docType string) (*dto.DocumentListResponse, error) {
	var filter *entity.DocumentType
	if docType != "" {
		t := entity.DocumentType(docType)
		filter = &t
	}

	documents, err := u.documentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list documents: %+v", err)
		return nil, err
	}
	return &dto.DocumentListResponse{
		Documents: converter.DocumentsToResponses(documents),
		Total:     len(documents),
	}, nil
}

// UpdateDraft replaces a draft's customer data and lines and recomputes the
// totals. Issued documents are immutable apart from status.
func (u *documentUsecase) UpdateDraft(ctx context.Context, documentID uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), documentID)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", documentID, err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	if !document.IsDraft() {
		return nil, ErrDocumentNotEditable
	}

	lines := linesFromRequest(req.Lines)
	totals := u.totalsEngine.Compute(lines)

	document.CustomerName = req.Customer.Name
	document.CustomerEmail = req.Customer.Email
	document.TotalAmountPence = totals.TotalAmountPence
	document.VatAmountPence = totals.VatAmountPence

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.documentRepo.Update(tx, document); err != nil {
			return err
		}
		return u.documentRepo.ReplaceLines(tx, document.ID, lines)
	})
	if err != nil {
		u.log.Errorf("Failed to update draft document %s: %+v", documentID, err)
		return nil, err
	}

	return u.GetDocument(ctx, documentID)
}

func (u *documentUsecase) DeleteDraft(ctx context.Context, documentID uuid.UUID) error {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), documentID)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", documentID, err)
		return err
	}
	if document == nil {
		return ErrDocumentNotFound
	}
	if !document.IsDraft() {
		return ErrDocumentNotEditable
	}

	if err := u.documentRepo.Delete(u.db.WithContext(ctx), documentID); err != nil {
		u.log.Errorf("Failed to delete draft document %s: %+v", documentID, err)
		return err
	}

	u.log.Infof("Draft document deleted: id=%s", documentID)
	return nil
}

// IssueDocument promotes DRAFT -> ISSUED: allocate the next sequential
// number for (type, year), freeze totals, stamp issue and due dates. The
// sequence increment commits with the status change, so a failed issuance
// never burns a number.
func (u *documentUsecase) IssueDocument(ctx context.Context, documentID uuid.UUID) (*dto.DocumentResponse, error) {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), documentID)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", documentID, err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	if !document.CanTransitionTo(entity.DocumentStatusIssued) {
		return nil, ErrInvalidDocumentMove
	}

	now := time.Now().UTC()
	year := now.Year()

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := u.sequenceRepo.Next(tx, document.Type, year)
		if err != nil {
			return err
		}

		totals := u.totalsEngine.Compute(document.Lines)

		document.Number = entity.FormatDocumentNumber(document.Type, year, counter)
		document.Status = entity.DocumentStatusIssued
		document.TotalAmountPence = totals.TotalAmountPence
		document.VatAmountPence = totals.VatAmountPence
		document.PdfURL = fmt.Sprintf("/documents/%s.pdf", document.Number)
		document.IssuedAt = &now
		if document.Type == entity.DocumentTypeInvoice {
			dueAt := now.AddDate(0, 0, 30)
			document.DueAt = &dueAt
		}

		return u.documentRepo.Update(tx, document)
	})
	if err != nil {
		u.log.Errorf("Failed to issue document %s: %+v", documentID, err)
		return nil, err
	}

	u.log.Infof("Document issued: id=%s, number=%s", document.ID, document.Number)
	return u.GetDocument(ctx, documentID)
}

// UpdateStatus applies a post-issuance status move (sent, paid, void)
// against the document transition table.
func (u *documentUsecase) UpdateStatus(ctx context.Context, documentID uuid.UUID, status entity.DocumentStatus) (*dto.DocumentResponse, error) {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), documentID)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", documentID, err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	if !document.CanTransitionTo(status) {
		return nil, ErrInvalidDocumentMove
	}

	if err := u.documentRepo.UpdateStatus(u.db.WithContext(ctx), documentID, status); err != nil {
		u.log.Errorf("Failed to update status of document %s: %+v", documentID, err)
		return nil, err
	}

	u.log.Infof("Document status updated: id=%s, status=%s", documentID, status)
	return u.GetDocument(ctx, documentID)
}

func linesFromRequest(reqLines []dto.DocumentLineRequest) []entity.DocumentLine {
	lines := make([]entity.DocumentLine, len(reqLines))
	for i, line := range reqLines {
		lines[i] = entity.DocumentLine{
			Description:    line.Description,
			Quantity:       line.Quantity,
			UnitPricePence: line.UnitPricePence,
			VatRatePercent: line.VatRatePercent,
		}
	}
	return lines
}

package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"garage-booking-service/internal/converter"
	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/domain/repository"
	"garage-booking-service/internal/integrations/captcha"
	"garage-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("booking status transition is not allowed")
	ErrIncompleteBooking = errors.New("booking is missing required customer or vehicle details")
	ErrHoldMismatch      = errors.New("hold does not cover the booking slot")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID, req *dto.ConfirmBookingRequest) (*dto.ConfirmBookingResponse, error)
	CreateManualBooking(ctx context.Context, req *dto.CreateManualBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, includeDeleted bool) (*dto.BookingListResponse, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*dto.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) (*dto.BookingResponse, error)
	GetStatusHistory(ctx context.Context, bookingID uuid.UUID) ([]dto.StatusHistoryResponse, error)
	SoftDeleteBooking(ctx context.Context, bookingID uuid.UUID) error
	RestoreBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	bookingRepo    repository.BookingRepository
	historyRepo    repository.StatusHistoryRepository
	documentRepo   repository.DocumentRepository
	sequenceRepo   repository.SequenceRepository
	catalogRepo    repository.CatalogRepository
	holdService    SlotHoldManager
	pricingService *service.PricingService
	totalsEngine   *service.TotalsEngine
	captchaClient  *captcha.Client
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	historyRepo repository.StatusHistoryRepository,
	documentRepo repository.DocumentRepository,
	sequenceRepo repository.SequenceRepository,
	catalogRepo repository.CatalogRepository,
	holdService SlotHoldManager,
	pricingService *service.PricingService,
	totalsEngine *service.TotalsEngine,
	captchaClient *captcha.Client,
) BookingUsecase {
	return &bookingUsecase{
		db:             db,
		log:            log,
		bookingRepo:    bookingRepo,
		historyRepo:    historyRepo,
		documentRepo:   documentRepo,
		sequenceRepo:   sequenceRepo,
		catalogRepo:    catalogRepo,
		holdService:    holdService,
		pricingService: pricingService,
		totalsEngine:   totalsEngine,
		captchaClient:  captchaClient,
	}
}

// CreateBooking creates a self-service booking against a live hold.
//
// Flow:
// 1. Verify the hold is live and covers the requested (date, time)
// 2. Verify every requested service exists in the catalog
// 3. In one transaction: insert the booking as DRAFT, append DRAFT history,
//    transition DRAFT -> HELD, append HELD history
//
// Line prices stay at zero until confirmation; they are resolved and frozen
// there, never earlier and never again after.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	slotDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// Step 1: hold must be live and match the slot
	hold, err := u.holdService.Get(ctx, req.HoldID)
	if err != nil {
		u.log.Warnf("Failed to look up hold %s: %+v", req.HoldID, err)
		return nil, err
	}
	if hold == nil {
		return nil, service.ErrHoldExpired
	}
	if hold.SlotDate != req.Date || hold.SlotTime != req.Time {
		return nil, ErrHoldMismatch
	}

	// Step 2: resolve catalog entries so service names can be denormalized
	lines := make([]entity.BookingService, 0, len(req.Services))
	for _, line := range req.Services {
		svc, err := u.catalogRepo.FindServiceByID(u.db.WithContext(ctx), line.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service %s: %+v", line.ServiceID, err)
			return nil, err
		}
		if svc == nil {
			return nil, service.ErrServiceNotFound
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		lines = append(lines, entity.BookingService{
			ServiceID:    svc.ID,
			ServiceName:  svc.Name,
			EngineTierID: line.EngineTierID,
			Quantity:     quantity,
		})
	}

	reference, err := generateBookingReference(slotDate)
	if err != nil {
		u.log.Errorf("Failed to generate booking reference: %+v", err)
		return nil, err
	}

	holdID := req.HoldID
	booking := &entity.Booking{
		Reference:           reference,
		Status:              entity.BookingStatusDraft,
		Source:              entity.BookingSourceOnline,
		PaymentStatus:       entity.PaymentStatusUnpaid,
		SlotDate:            slotDate,
		SlotTime:            req.Time,
		HoldID:              &holdID,
		CustomerName:        req.Customer.Name,
		CustomerEmail:       req.Customer.Email,
		CustomerPhone:       req.Customer.Phone,
		VehicleRegistration: req.Vehicle.Registration,
		VehicleMake:         req.Vehicle.Make,
		VehicleModel:        req.Vehicle.Model,
		EngineSizeCc:        req.Vehicle.EngineSizeCc,
	}

	// Step 3: DRAFT and the DRAFT -> HELD transition commit together
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}
		for i := range lines {
			lines[i].BookingID = booking.ID
		}
		if err := u.bookingRepo.CreateServices(tx, lines); err != nil {
			return err
		}
		if err := u.historyRepo.Append(tx, booking.ID, entity.BookingStatusDraft); err != nil {
			return err
		}
		if err := u.bookingRepo.UpdateStatus(tx, booking.ID, entity.BookingStatusHeld); err != nil {
			return err
		}
		return u.historyRepo.Append(tx, booking.ID, entity.BookingStatusHeld)
	})
	if err != nil {
		if isSlotConflict(err) {
			return nil, service.ErrSlotUnavailable
		}
		u.log.Errorf("Failed to create booking for slot %s %s: %+v", req.Date, req.Time, err)
		return nil, err
	}

	u.log.Infof("Booking created: id=%s, reference=%s, slot=%s %s", booking.ID, booking.Reference, req.Date, req.Time)
	return u.GetBooking(ctx, booking.ID)
}

// ConfirmBooking performs the HELD -> CONFIRMED transition, the one place
// where the hold is consumed and the financial documents are issued.
//
// Flow:
// 1. Booking must exist, be HELD, and carry complete customer/vehicle data
// 2. Captcha gate (external collaborator; rejection does not touch state)
// 3. Resolve a price for every line; PriceNotFound blocks confirmation
// 4. Consume the hold (atomic; exactly one concurrent confirm wins)
// 5. In ONE transaction: freeze line prices, flip status, append history,
//    issue invoice and quote with sequential numbers and totals
// 6. If the transaction fails -> compensate: restore the hold for its
//    remaining TTL, and report the confirmation as failed
//
// There is no path that leaves a confirmed booking without its documents.
func (u *bookingUsecase) ConfirmBooking(ctx context.Context, bookingID uuid.UUID, req *dto.ConfirmBookingRequest) (*dto.ConfirmBookingResponse, error) {
	// Step 1: load and gate on state
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, ErrInvalidTransition
	}
	if !booking.HasRequiredDetails() {
		return nil, ErrIncompleteBooking
	}
	if booking.HoldID == nil {
		// Self-service bookings always reference a hold
		return nil, ErrInvalidTransition
	}

	// Step 2: captcha gate
	if err := u.captchaClient.Verify(ctx, req.CaptchaToken); err != nil {
		if errors.Is(err, captcha.ErrVerificationFailed) {
			return nil, ErrCaptchaFailed
		}
		return nil, err
	}

	// Step 3: every line must price before anything is consumed
	resolved := make([]*service.ResolvedPrice, len(booking.Services))
	for i, line := range booking.Services {
		price, err := u.pricingService.ResolvePrice(ctx, line.ServiceID, line.EngineTierID, booking.EngineSizeCc)
		if err != nil {
			u.log.Warnf("Failed to price line %s on booking %s: %+v", line.ID, bookingID, err)
			return nil, err
		}
		resolved[i] = price
	}

	// Step 4: consume the hold; losers of a concurrent confirm stop here
	hold, err := u.holdService.Consume(ctx, *booking.HoldID)
	if err != nil {
		return nil, err
	}

	// Step 5: one atomic unit for status, history, prices and documents
	var invoice, quote *entity.Document
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		docLines := make([]entity.DocumentLine, len(booking.Services))
		for i := range booking.Services {
			line := &booking.Services[i]
			price := resolved[i]

			var tierID *uuid.UUID
			description := price.Service.Name
			if price.Tier != nil {
				tierID = &price.Tier.ID
				description = fmt.Sprintf("%s (%s)", price.Service.Name, price.Tier.Name)
			}

			if err := u.bookingRepo.UpdateServicePrice(tx, line.ID, tierID, price.PricePence); err != nil {
				return err
			}

			docLines[i] = entity.DocumentLine{
				Description:    description,
				Quantity:       line.Quantity,
				UnitPricePence: price.PricePence,
				VatRatePercent: price.Service.VatRatePercent,
			}
		}

		if err := u.bookingRepo.UpdateStatus(tx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return err
		}
		if err := u.historyRepo.Append(tx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return err
		}

		invoice, err = u.issueDocument(tx, entity.DocumentTypeInvoice, booking, docLines)
		if err != nil {
			return err
		}
		quote, err = u.issueDocument(tx, entity.DocumentTypeQuote, booking, docLines)
		return err
	})
	if err != nil {
		u.log.Errorf("Failed to confirm booking %s, compensating hold: %+v", bookingID, err)

		// Step 6: COMPENSATE - re-grant the hold so the customer keeps the slot
		restoreCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if restoreErr := u.holdService.Restore(restoreCtx, hold); restoreErr != nil {
			u.log.Errorf("CRITICAL: Failed to restore hold %s after failed confirmation: %+v", hold.ID, restoreErr)
		}

		return nil, err
	}

	u.log.Infof("Booking confirmed: id=%s, reference=%s, invoice=%s, quote=%s",
		booking.ID, booking.Reference, invoice.Number, quote.Number)

	full, err := u.GetBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ConfirmBookingResponse{
		Reference: booking.Reference,
		Booking:   full,
		Documents: dto.ConfirmDocumentsResponse{
			Invoice: converter.DocumentToResponse(invoice),
			Quote:   converter.DocumentToResponse(quote),
		},
	}, nil
}

// CreateManualBooking creates a staff booking directly in CONFIRMED. The
// hold requirement applies only to the self-service path; prices are
// resolved and frozen at creation instead.
func (u *bookingUsecase) CreateManualBooking(ctx context.Context, req *dto.CreateManualBookingRequest) (*dto.BookingResponse, error) {
	slotDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	booked, err := u.bookingRepo.ExistsForSlot(u.db.WithContext(ctx), slotDate, req.Time)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, service.ErrSlotUnavailable
	}

	// A customer mid-checkout owns the slot too, not just committed bookings
	held, err := u.holdService.IsSlotHeld(ctx, req.Date, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check holds for slot %s %s: %+v", req.Date, req.Time, err)
		return nil, err
	}
	if held {
		return nil, service.ErrSlotUnavailable
	}

	lines := make([]entity.BookingService, 0, len(req.Services))
	for _, line := range req.Services {
		price, err := u.pricingService.ResolvePrice(ctx, line.ServiceID, line.EngineTierID, req.Vehicle.EngineSizeCc)
		if err != nil {
			u.log.Warnf("Failed to price service %s for manual booking: %+v", line.ServiceID, err)
			return nil, err
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		var tierID *uuid.UUID
		if price.Tier != nil {
			tierID = &price.Tier.ID
		}
		lines = append(lines, entity.BookingService{
			ServiceID:      price.Service.ID,
			ServiceName:    price.Service.Name,
			EngineTierID:   tierID,
			UnitPricePence: price.PricePence,
			Quantity:       quantity,
		})
	}

	reference, err := generateBookingReference(slotDate)
	if err != nil {
		u.log.Errorf("Failed to generate booking reference: %+v", err)
		return nil, err
	}

	booking := &entity.Booking{
		Reference:           reference,
		Status:              entity.BookingStatusConfirmed,
		Source:              entity.BookingSourceManual,
		PaymentStatus:       entity.PaymentStatusUnpaid,
		SlotDate:            slotDate,
		SlotTime:            req.Time,
		CustomerName:        req.Customer.Name,
		CustomerEmail:       req.Customer.Email,
		CustomerPhone:       req.Customer.Phone,
		VehicleRegistration: req.Vehicle.Registration,
		VehicleMake:         req.Vehicle.Make,
		VehicleModel:        req.Vehicle.Model,
		EngineSizeCc:        req.Vehicle.EngineSizeCc,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}
		for i := range lines {
			lines[i].BookingID = booking.ID
		}
		if err := u.bookingRepo.CreateServices(tx, lines); err != nil {
			return err
		}
		return u.historyRepo.Append(tx, booking.ID, entity.BookingStatusConfirmed)
	})
	if err != nil {
		if isSlotConflict(err) {
			return nil, service.ErrSlotUnavailable
		}
		u.log.Errorf("Failed to create manual booking for slot %s %s: %+v", req.Date, req.Time, err)
		return nil, err
	}

	u.log.Infof("Manual booking created: id=%s, reference=%s, slot=%s %s", booking.ID, booking.Reference, req.Date, req.Time)
	return u.GetBooking(ctx, booking.ID)
}

func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) ListBookings(ctx context.Context, includeDeleted bool) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), includeDeleted)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// UpdateStatus applies an admin status move. Only transitions in the table
// are accepted; terminal states move nowhere.
func (u *bookingUsecase) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.UpdateStatus(tx, bookingID, status); err != nil {
			return err
		}
		return u.historyRepo.Append(tx, bookingID, status)
	})
	if err != nil {
		u.log.Errorf("Failed to update status of booking %s: %+v", bookingID, err)
		return nil, err
	}

	u.log.Infof("Booking status updated: id=%s, status=%s", bookingID, status)
	return u.GetBooking(ctx, bookingID)
}

func (u *bookingUsecase) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := u.bookingRepo.UpdatePaymentStatus(u.db.WithContext(ctx), bookingID, status); err != nil {
		u.log.Warnf("Failed to update payment status of booking %s: %+v", bookingID, err)
		return nil, err
	}

	return u.GetBooking(ctx, bookingID)
}

// GetStatusHistory returns the append-only status trail of one booking,
// oldest entry first.
func (u *bookingUsecase) GetStatusHistory(ctx context.Context, bookingID uuid.UUID) ([]dto.StatusHistoryResponse, error) {
	booking, err := u.bookingRepo.FindByIDIncludingDeleted(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	entries, err := u.historyRepo.FindByBookingID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to load status history for booking %s: %+v", bookingID, err)
		return nil, err
	}

	history := make([]dto.StatusHistoryResponse, len(entries))
	for i, entry := range entries {
		history[i] = dto.StatusHistoryResponse{
			Status:    string(entry.Status),
			ChangedAt: entry.ChangedAt,
		}
	}
	return history, nil
}

// SoftDeleteBooking hides a booking from availability and default listings.
// It does not append status history: deletion is orthogonal to status.
func (u *bookingUsecase) SoftDeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if err := u.bookingRepo.SoftDelete(u.db.WithContext(ctx), bookingID); err != nil {
		u.log.Warnf("Failed to soft delete booking %s: %+v", bookingID, err)
		return err
	}

	u.log.Infof("Booking soft deleted: id=%s", bookingID)
	return nil
}

// RestoreBooking reverses a soft delete; the booking returns to the status
// it held before deletion, with no new history entries.
func (u *bookingUsecase) RestoreBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByIDIncludingDeleted(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.DeletedAt.Valid {
		if err := u.bookingRepo.Restore(u.db.WithContext(ctx), bookingID); err != nil {
			// Another booking may have taken the slot while this one was deleted
			if isSlotConflict(err) {
				return nil, service.ErrSlotUnavailable
			}
			u.log.Warnf("Failed to restore booking %s: %+v", bookingID, err)
			return nil, err
		}
		u.log.Infof("Booking restored: id=%s, status=%s", bookingID, booking.Status)
	}

	return u.GetBooking(ctx, bookingID)
}

// issueDocument creates a document in ISSUED state inside the confirmation
// transaction: sequential number, totals from the frozen lines, due date
// for invoices.
func (u *bookingUsecase) issueDocument(tx *gorm.DB, docType entity.DocumentType, booking *entity.Booking, lines []entity.DocumentLine) (*entity.Document, error) {
	now := time.Now().UTC()
	year := now.Year()

	counter, err := u.sequenceRepo.Next(tx, docType, year)
	if err != nil {
		return nil, err
	}
	number := entity.FormatDocumentNumber(docType, year, counter)

	totals := u.totalsEngine.Compute(lines)

	docLines := make([]entity.DocumentLine, len(lines))
	copy(docLines, lines)

	bookingID := booking.ID
	document := &entity.Document{
		Type:             docType,
		Status:           entity.DocumentStatusIssued,
		Number:           number,
		BookingID:        &bookingID,
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		TotalAmountPence: totals.TotalAmountPence,
		VatAmountPence:   totals.VatAmountPence,
		PdfURL:           fmt.Sprintf("/documents/%s.pdf", number),
		IssuedAt:         &now,
		Lines:            docLines,
	}
	if docType == entity.DocumentTypeInvoice {
		dueAt := now.AddDate(0, 0, 30)
		document.DueAt = &dueAt
	}

	if err := u.documentRepo.Create(tx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// generateBookingReference generates a unique booking reference: GB-YYYYMMDD-XXXXXX
func generateBookingReference(slotDate time.Time) (string, error) {
	dateStr := slotDate.Format("20060102")
	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate booking reference: %w", err)
	}
	return fmt.Sprintf("GB-%s-%06X", dateStr, randomBytes), nil
}

// isSlotConflict reports whether err is the unique slot index rejecting a
// second live booking for one (date, time)
func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "idx_bookings_slot")
	}
	return false
}

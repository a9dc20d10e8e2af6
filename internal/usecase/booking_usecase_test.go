package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// =============================================================================
// Fakes
// =============================================================================

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*entity.Booking
	slotBooked  bool
	softDeleted []uuid.UUID
	restored    []uuid.UUID
	statusMoves []entity.BookingStatus
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	booking.ID = uuid.New()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.DeletedAt.Valid {
		return nil, nil
	}
	return b, nil
}

func (r *fakeBookingRepo) FindByIDIncludingDeleted(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *fakeBookingRepo) FindAll(db *gorm.DB, includeDeleted bool) ([]entity.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) FindOccupiedTimesByDate(db *gorm.DB, date time.Time) ([]string, error) {
	return nil, nil
}

func (r *fakeBookingRepo) ExistsForSlot(db *gorm.DB, date time.Time, slotTime string) (bool, error) {
	return r.slotBooked, nil
}

func (r *fakeBookingRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookingStatus) error {
	r.statusMoves = append(r.statusMoves, status)
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, status entity.PaymentStatus) error {
	return nil
}

func (r *fakeBookingRepo) SoftDelete(db *gorm.DB, id uuid.UUID) error {
	r.softDeleted = append(r.softDeleted, id)
	if b, ok := r.bookings[id]; ok {
		b.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}
	}
	return nil
}

func (r *fakeBookingRepo) Restore(db *gorm.DB, id uuid.UUID) error {
	r.restored = append(r.restored, id)
	if b, ok := r.bookings[id]; ok {
		b.DeletedAt = gorm.DeletedAt{}
	}
	return nil
}

func (r *fakeBookingRepo) CreateServices(db *gorm.DB, services []entity.BookingService) error {
	return nil
}

func (r *fakeBookingRepo) UpdateServicePrice(db *gorm.DB, id uuid.UUID, tierID *uuid.UUID, pricePence int64) error {
	return nil
}

type fakeHistoryRepo struct {
	appended []entity.BookingStatus
	entries  []entity.BookingStatusHistory
}

func (r *fakeHistoryRepo) Append(db *gorm.DB, bookingID uuid.UUID, status entity.BookingStatus) error {
	r.appended = append(r.appended, status)
	return nil
}

func (r *fakeHistoryRepo) FindByBookingID(db *gorm.DB, bookingID uuid.UUID) ([]entity.BookingStatusHistory, error) {
	return r.entries, nil
}

type fakeHoldManager struct {
	slotHeld bool
}

func (m *fakeHoldManager) Acquire(ctx context.Context, slotDate, slotTime string) (*entity.SlotHold, error) {
	return nil, nil
}

func (m *fakeHoldManager) Get(ctx context.Context, holdID string) (*entity.SlotHold, error) {
	return nil, nil
}

func (m *fakeHoldManager) Consume(ctx context.Context, holdID string) (*entity.SlotHold, error) {
	return nil, nil
}

func (m *fakeHoldManager) Release(ctx context.Context, holdID string) error {
	return nil
}

func (m *fakeHoldManager) Restore(ctx context.Context, hold *entity.SlotHold) error {
	return nil
}

func (m *fakeHoldManager) IsSlotHeld(ctx context.Context, slotDate, slotTime string) (bool, error) {
	return m.slotHeld, nil
}

func (m *fakeHoldManager) HeldTimesForDate(ctx context.Context, slotDate string, slotTimes []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func newTestBookingUsecase(t *testing.T, bookingRepo *fakeBookingRepo, historyRepo *fakeHistoryRepo, holds *fakeHoldManager) BookingUsecase {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewBookingUsecase(db, log, bookingRepo, historyRepo, nil, nil, nil, holds, nil, nil, nil)
}

// =============================================================================
// Tests
// =============================================================================

func TestCreateManualBookingRejectsOccupiedSlot(t *testing.T) {
	req := &dto.CreateManualBookingRequest{
		Date:     "2025-06-10",
		Time:     "10:30",
		Customer: dto.CustomerRequest{Name: "Jo Bloggs", Email: "jo@example.com"},
		Vehicle:  dto.VehicleRequest{Registration: "AB12 CDE"},
		Services: []dto.BookingServiceRequest{{ServiceID: uuid.New()}},
	}

	t.Run("slot held by a customer mid-checkout", func(t *testing.T) {
		repo := newFakeBookingRepo()
		uc := newTestBookingUsecase(t, repo, &fakeHistoryRepo{}, &fakeHoldManager{slotHeld: true})

		_, err := uc.CreateManualBooking(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrSlotUnavailable)
	})

	t.Run("slot taken by an existing booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.slotBooked = true
		uc := newTestBookingUsecase(t, repo, &fakeHistoryRepo{}, &fakeHoldManager{})

		_, err := uc.CreateManualBooking(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrSlotUnavailable)
	})
}

func TestSoftDeleteBookingLeavesStatusAndHistoryUntouched(t *testing.T) {
	booking := &entity.Booking{
		ID:        uuid.New(),
		Reference: "GB-20250610-1A2B3C",
		Status:    entity.BookingStatusConfirmed,
		SlotDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:  "10:30",
	}
	repo := newFakeBookingRepo(booking)
	history := &fakeHistoryRepo{}
	uc := newTestBookingUsecase(t, repo, history, &fakeHoldManager{})

	err := uc.SoftDeleteBooking(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{booking.ID}, repo.softDeleted)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	// Deletion is orthogonal to status: no history entry, no transition
	assert.Empty(t, history.appended)
	assert.Empty(t, repo.statusMoves)

	// Deleting an unknown booking reports not found
	err = uc.SoftDeleteBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRestoreBookingRoundTrip(t *testing.T) {
	booking := &entity.Booking{
		ID:        uuid.New(),
		Reference: "GB-20250610-4D5E6F",
		Status:    entity.BookingStatusConfirmed,
		SlotDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:  "10:30",
	}
	repo := newFakeBookingRepo(booking)
	history := &fakeHistoryRepo{}
	uc := newTestBookingUsecase(t, repo, history, &fakeHoldManager{})

	require.NoError(t, uc.SoftDeleteBooking(context.Background(), booking.ID))
	require.True(t, booking.DeletedAt.Valid)

	restored, err := uc.RestoreBooking(context.Background(), booking.ID)
	require.NoError(t, err)

	// The booking comes back in the status it held before deletion
	assert.Equal(t, string(entity.BookingStatusConfirmed), restored.Status)
	assert.False(t, restored.Deleted)
	assert.Empty(t, history.appended)
	assert.Empty(t, repo.statusMoves)

	// Restoring a live booking is a no-op
	_, err = uc.RestoreBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Len(t, repo.restored, 1)
}

func TestGetStatusHistory(t *testing.T) {
	booking := &entity.Booking{ID: uuid.New(), Status: entity.BookingStatusConfirmed}
	history := &fakeHistoryRepo{entries: []entity.BookingStatusHistory{
		{Status: entity.BookingStatusDraft},
		{Status: entity.BookingStatusHeld},
		{Status: entity.BookingStatusConfirmed},
	}}
	uc := newTestBookingUsecase(t, newFakeBookingRepo(booking), history, &fakeHoldManager{})

	entries, err := uc.GetStatusHistory(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "draft", entries[0].Status)
	assert.Equal(t, "confirmed", entries[2].Status)

	_, err = uc.GetStatusHistory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestIsSlotConflict(t *testing.T) {
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_slot"}

	assert.True(t, isSlotConflict(conflict))
	assert.True(t, isSlotConflict(fmt.Errorf("create booking: %w", conflict)))

	assert.False(t, isSlotConflict(&pgconn.PgError{Code: "23505", ConstraintName: "idx_documents_number"}))
	assert.False(t, isSlotConflict(&pgconn.PgError{Code: "23503", ConstraintName: "idx_bookings_slot"}))
	assert.False(t, isSlotConflict(errors.New("connection reset")))
	assert.False(t, isSlotConflict(nil))
}

func TestGenerateBookingReference(t *testing.T) {
	slotDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	ref, err := generateBookingReference(slotDate)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^GB-20250610-[0-9A-F]{6}$`), ref)

	// References for the same date must still differ
	other, err := generateBookingReference(slotDate)
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)
}

func TestNormalizeSlotTime(t *testing.T) {
	assert.Equal(t, "10:30", normalizeSlotTime("10:30:00"))
	assert.Equal(t, "10:30", normalizeSlotTime("10:30"))
	assert.Equal(t, "09:00", normalizeSlotTime("09:00:00"))
}

package usecase

import (
	"context"
	"errors"
	"time"

	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/repository"
	"garage-booking-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotNotBookable is returned when the requested (date, time) is not a
// slot the calendar offers at all (no template/extra slot, or exception date)
var ErrSlotNotBookable = errors.New("slot does not exist on this date")

type HoldUsecase interface {
	CreateHold(ctx context.Context, req *dto.CreateHoldRequest) (*dto.HoldResponse, error)
	ReleaseHold(ctx context.Context, holdID string) error
}

type holdUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
	holdService  SlotHoldManager
}

func NewHoldUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	holdService SlotHoldManager,
) HoldUsecase {
	return &holdUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		holdService:  holdService,
	}
}

// CreateHold grants a TTL-bound exclusive reservation on one slot.
//
// Flow:
// 1. Verify the slot exists on the calendar for that date
// 2. Verify no non-cancelled booking already occupies the slot
// 3. Release the caller's previous hold, if any (one active hold per attempt)
// 4. Atomic acquire in Redis; losers of a race get ErrSlotUnavailable
//
// Failure is reported to the caller and is recoverable: the user picks
// another slot. No retries — failing fast is what prevents double booking.
func (u *holdUsecase) CreateHold(ctx context.Context, req *dto.CreateHoldRequest) (*dto.HoldResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	exists, err := u.slotExists(ctx, day, req.Time)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSlotNotBookable
	}

	booked, err := u.bookingRepo.ExistsForSlot(u.db.WithContext(ctx), day, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check bookings for slot %s %s: %+v", req.Date, req.Time, err)
		return nil, err
	}
	if booked {
		return nil, service.ErrSlotUnavailable
	}

	// At most one active hold per booking attempt: a new selection releases
	// the previous one so slots cannot be hoarded
	if req.ReplaceHoldID != "" {
		if err := u.holdService.Release(ctx, req.ReplaceHoldID); err != nil {
			u.log.Warnf("Failed to release previous hold %s: %+v", req.ReplaceHoldID, err)
			return nil, err
		}
	}

	hold, err := u.holdService.Acquire(ctx, req.Date, req.Time)
	if err != nil {
		if errors.Is(err, service.ErrSlotUnavailable) {
			return nil, service.ErrSlotUnavailable
		}
		u.log.Warnf("Failed to acquire hold for slot %s %s: %+v", req.Date, req.Time, err)
		return nil, err
	}

	u.log.Infof("Hold created: id=%s, slot=%s %s", hold.ID, req.Date, req.Time)
	return &dto.HoldResponse{
		HoldID:    hold.ID,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}

// ReleaseHold releases a hold. Idempotent: unknown, expired or already
// released ids are a no-op, never an error.
func (u *holdUsecase) ReleaseHold(ctx context.Context, holdID string) error {
	if err := u.holdService.Release(ctx, holdID); err != nil {
		u.log.Warnf("Failed to release hold %s: %+v", holdID, err)
		return err
	}
	return nil
}

func (u *holdUsecase) slotExists(ctx context.Context, day time.Time, slotTime string) (bool, error) {
	exception, err := u.scheduleRepo.IsExceptionDate(u.db.WithContext(ctx), day)
	if err != nil {
		return false, err
	}
	if exception {
		return false, nil
	}

	templateSlots, err := u.scheduleRepo.FindTemplateSlotsByWeekday(u.db.WithContext(ctx), day.Weekday())
	if err != nil {
		return false, err
	}
	for _, s := range templateSlots {
		if normalizeSlotTime(s.SlotTime) == slotTime {
			return true, nil
		}
	}

	extraSlots, err := u.scheduleRepo.FindExtraSlotsByDate(u.db.WithContext(ctx), day)
	if err != nil {
		return false, err
	}
	for _, s := range extraSlots {
		if normalizeSlotTime(s.SlotTime) == slotTime {
			return true, nil
		}
	}

	return false, nil
}

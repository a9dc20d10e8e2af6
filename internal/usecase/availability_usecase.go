package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"garage-booking-service/internal/delivery/dto"
	"garage-booking-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, date string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
	holdService  SlotHoldManager
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	holdService SlotHoldManager,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		holdService:  holdService,
	}
}

// GetAvailability computes the slots for one date: weekly template slots for
// the day of week, union admin-added extra slots for the exact date, none at
// all on exception dates. A slot is unavailable when a live hold or a
// non-cancelled booking occupies it. Pure read, no side effects. Day-of-week
// exclusions (e.g. no weekend self-service) are the caller's policy, not
// the calendar's.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	response := &dto.AvailabilityResponse{Date: date, Slots: []dto.SlotResponse{}}

	exception, err := u.scheduleRepo.IsExceptionDate(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to check exception date %s: %+v", date, err)
		return nil, err
	}
	if exception {
		// Closed all day; template and extra slots do not apply
		return response, nil
	}

	templateSlots, err := u.scheduleRepo.FindTemplateSlotsByWeekday(u.db.WithContext(ctx), day.Weekday())
	if err != nil {
		u.log.Warnf("Failed to load template slots for %s: %+v", date, err)
		return nil, err
	}
	extraSlots, err := u.scheduleRepo.FindExtraSlotsByDate(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to load extra slots for %s: %+v", date, err)
		return nil, err
	}

	candidates := make(map[string]struct{})
	for _, s := range templateSlots {
		candidates[normalizeSlotTime(s.SlotTime)] = struct{}{}
	}
	for _, s := range extraSlots {
		candidates[normalizeSlotTime(s.SlotTime)] = struct{}{}
	}
	if len(candidates) == 0 {
		return response, nil
	}

	times := make([]string, 0, len(candidates))
	for t := range candidates {
		times = append(times, t)
	}
	sort.Strings(times)

	occupiedTimes, err := u.bookingRepo.FindOccupiedTimesByDate(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to load occupied slots for %s: %+v", date, err)
		return nil, err
	}
	occupied := make(map[string]bool, len(occupiedTimes))
	for _, t := range occupiedTimes {
		occupied[normalizeSlotTime(t)] = true
	}

	held, err := u.holdService.HeldTimesForDate(ctx, date, times)
	if err != nil {
		u.log.Warnf("Failed to load held slots for %s: %+v", date, err)
		return nil, err
	}

	for _, t := range times {
		response.Slots = append(response.Slots, dto.SlotResponse{
			Time:        t,
			IsAvailable: !occupied[t] && !held[t],
		})
	}

	return response, nil
}

// normalizeSlotTime trims a postgres time value ("10:30:00") to HH:MM
func normalizeSlotTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

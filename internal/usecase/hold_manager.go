package usecase

import (
	"context"

	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/service"
)

// SlotHoldManager is the surface of the slot hold service the usecases
// depend on: TTL-bound exclusive reservations, at most one per (date, time).
type SlotHoldManager interface {
	Acquire(ctx context.Context, slotDate, slotTime string) (*entity.SlotHold, error)
	Get(ctx context.Context, holdID string) (*entity.SlotHold, error)
	Consume(ctx context.Context, holdID string) (*entity.SlotHold, error)
	Release(ctx context.Context, holdID string) error
	Restore(ctx context.Context, hold *entity.SlotHold) error
	IsSlotHeld(ctx context.Context, slotDate, slotTime string) (bool, error)
	HeldTimesForDate(ctx context.Context, slotDate string, slotTimes []string) (map[string]bool, error)
}

var _ SlotHoldManager = (*service.SlotHoldService)(nil)

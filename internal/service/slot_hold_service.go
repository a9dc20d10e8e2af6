package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garage-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

// ErrSlotUnavailable is returned when the slot is already held or booked
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrHoldExpired is returned when a hold is missing, expired or already
// consumed at the point of use
var ErrHoldExpired = errors.New("hold has expired")

// =============================================================================
// Lua scripts
// =============================================================================

// acquireHoldScript grants a hold only when the slot key is absent.
// Redis Go client automatically uses EVALSHA (send SHA hash only) after the
// first call, instead of EVAL (send full script text every time).
//
// KEYS[1] = slot key, KEYS[2] = hold id key
// ARGV[1] = hold id, ARGV[2] = hold payload (JSON), ARGV[3] = TTL millis
//
// Both keys are written with the same TTL inside one script, so there is no
// window where the slot is reserved but the hold cannot be looked up.
var acquireHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
	return 1
`)

// consumeHoldScript atomically verifies and removes a hold. Exactly one of
// two concurrent consumers can win: the script re-checks that the slot key
// still belongs to this hold id before deleting, all inside Redis.
//
// KEYS[1] = slot key, KEYS[2] = hold id key, ARGV[1] = hold id
var consumeHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[2]) == 0 then
		return 0
	end
	if redis.call('GET', KEYS[1]) ~= ARGV[1] then
		return 0
	end
	redis.call('DEL', KEYS[1], KEYS[2])
	return 1
`)

// releaseHoldScript removes a hold if it still owns its slot key. Releasing
// a missing or expired hold is a no-op by design.
//
// KEYS[1] = slot key, KEYS[2] = hold id key, ARGV[1] = hold id
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		redis.call('DEL', KEYS[1])
	end
	redis.call('DEL', KEYS[2])
	return 1
`)

// =============================================================================
// Constants
// =============================================================================

const (
	// Redis key prefixes for slot holds
	RedisSlotKeyPrefix = "hold:slot:"
	RedisHoldKeyPrefix = "hold:id:"
)

// =============================================================================
// Types
// =============================================================================

// SlotHoldService owns the short-lived exclusive reservations on appointment
// slots. At most one live hold can exist per (date, time).
//
// Atomicity comes from Lua scripts executing single-threaded inside Redis;
// no in-app locking is needed. Expiry is lazy: Redis TTL removes the keys,
// and every read additionally compares the stored expires_at against now,
// so correctness never depends on a timer firing.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

// NewSlotHoldService creates a SlotHoldService with the given hold TTL
func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Acquire reserves the (date, time) slot for a new hold. Exactly one of any
// number of concurrent callers for the same slot succeeds; the rest get
// ErrSlotUnavailable.
func (s *SlotHoldService) Acquire(ctx context.Context, slotDate, slotTime string) (*entity.SlotHold, error) {
	now := time.Now().UTC()
	hold := &entity.SlotHold{
		ID:        uuid.New().String(),
		SlotDate:  slotDate,
		SlotTime:  slotTime,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(hold)
	if err != nil {
		return nil, fmt.Errorf("marshal hold: %w", err)
	}

	keys := []string{s.slotKey(slotDate, slotTime), s.holdKey(hold.ID)}
	result, err := acquireHoldScript.Run(ctx, s.redisClient, keys, hold.ID, payload, s.ttl.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script acquire for slot %s %s: %+v", slotDate, slotTime, err)
		return nil, fmt.Errorf("lua acquire hold for slot %s %s: %w", slotDate, slotTime, err)
	}

	if result == 0 {
		return nil, ErrSlotUnavailable
	}

	s.log.Debugf("Hold acquired: id=%s, slot=%s %s, expires=%s", hold.ID, slotDate, slotTime, hold.ExpiresAt)
	return hold, nil
}

// Get returns the hold record, or nil when it does not exist or has expired
func (s *SlotHoldService) Get(ctx context.Context, holdID string) (*entity.SlotHold, error) {
	payload, err := s.redisClient.Get(ctx, s.holdKey(holdID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold %s: %w", holdID, err)
	}

	var hold entity.SlotHold
	if err := json.Unmarshal(payload, &hold); err != nil {
		return nil, fmt.Errorf("unmarshal hold %s: %w", holdID, err)
	}

	// Liveness is computed, not assumed: even if Redis has not evicted the
	// key yet, an expired hold is not live.
	if !hold.IsLive(time.Now().UTC()) {
		return nil, nil
	}

	return &hold, nil
}

// Consume destroys the hold as part of booking confirmation. Of two
// concurrent consumers of the same hold, exactly one receives the record;
// the other gets ErrHoldExpired.
func (s *SlotHoldService) Consume(ctx context.Context, holdID string) (*entity.SlotHold, error) {
	hold, err := s.Get(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldExpired
	}

	keys := []string{s.slotKey(hold.SlotDate, hold.SlotTime), s.holdKey(holdID)}
	result, err := consumeHoldScript.Run(ctx, s.redisClient, keys, holdID).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script consume for hold %s: %+v", holdID, err)
		return nil, fmt.Errorf("lua consume hold %s: %w", holdID, err)
	}

	if result == 0 {
		// Lost the race, or the hold expired between Get and Consume
		return nil, ErrHoldExpired
	}

	s.log.Debugf("Hold consumed: id=%s, slot=%s %s", holdID, hold.SlotDate, hold.SlotTime)
	return hold, nil
}

// Release removes the hold. Idempotent: releasing a missing, expired or
// already-released hold succeeds without error.
func (s *SlotHoldService) Release(ctx context.Context, holdID string) error {
	hold, err := s.Get(ctx, holdID)
	if err != nil {
		return err
	}
	if hold == nil {
		// Nothing to release
		return nil
	}

	keys := []string{s.slotKey(hold.SlotDate, hold.SlotTime), s.holdKey(holdID)}
	if err := releaseHoldScript.Run(ctx, s.redisClient, keys, holdID).Err(); err != nil {
		s.log.Warnf("Failed Lua script release for hold %s: %+v", holdID, err)
		return fmt.Errorf("lua release hold %s: %w", holdID, err)
	}

	s.log.Debugf("Hold released: id=%s, slot=%s %s", holdID, hold.SlotDate, hold.SlotTime)
	return nil
}

// Restore re-grants a consumed hold for its remaining TTL. Compensation path
// only: called when booking confirmation fails after the hold was consumed,
// so the customer keeps their reservation. Best effort — if another caller
// grabbed the slot in the gap, the restore is skipped and logged.
func (s *SlotHoldService) Restore(ctx context.Context, hold *entity.SlotHold) error {
	remaining := hold.Remaining(time.Now().UTC())
	if remaining <= 0 {
		s.log.Debugf("Skipping restore of expired hold %s", hold.ID)
		return nil
	}

	payload, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("marshal hold: %w", err)
	}

	keys := []string{s.slotKey(hold.SlotDate, hold.SlotTime), s.holdKey(hold.ID)}
	result, err := acquireHoldScript.Run(ctx, s.redisClient, keys, hold.ID, payload, remaining.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script restore for hold %s: %+v", hold.ID, err)
		return fmt.Errorf("lua restore hold %s: %w", hold.ID, err)
	}

	if result == 0 {
		s.log.Warnf("Could not restore hold %s: slot %s %s taken by another hold", hold.ID, hold.SlotDate, hold.SlotTime)
		return nil
	}

	s.log.Infof("Hold restored after failed confirmation: id=%s, slot=%s %s", hold.ID, hold.SlotDate, hold.SlotTime)
	return nil
}

// IsSlotHeld reports whether a live hold exists for the (date, time) slot
func (s *SlotHoldService) IsSlotHeld(ctx context.Context, slotDate, slotTime string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, s.slotKey(slotDate, slotTime)).Result()
	if err != nil {
		return false, fmt.Errorf("check slot %s %s: %w", slotDate, slotTime, err)
	}
	return exists > 0, nil
}

// HeldTimesForDate returns the slot times with live holds on the given date
func (s *SlotHoldService) HeldTimesForDate(ctx context.Context, slotDate string, slotTimes []string) (map[string]bool, error) {
	held := make(map[string]bool, len(slotTimes))
	if len(slotTimes) == 0 {
		return held, nil
	}

	pipe := s.redisClient.Pipeline()
	cmds := make([]*redis.IntCmd, len(slotTimes))
	for i, t := range slotTimes {
		cmds[i] = pipe.Exists(ctx, s.slotKey(slotDate, t))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("check held slots for %s: %w", slotDate, err)
	}

	for i, cmd := range cmds {
		if cmd.Val() > 0 {
			held[slotTimes[i]] = true
		}
	}
	return held, nil
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func (s *SlotHoldService) slotKey(slotDate, slotTime string) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotKeyPrefix, slotDate, slotTime)
}

func (s *SlotHoldService) holdKey(holdID string) string {
	return fmt.Sprintf("%s%s", RedisHoldKeyPrefix, holdID)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tiketbus/internal/domain"
	"tiketbus/internal/utils"
)

// holdTTL bounds how long a checkout can keep seats reserved without paying.
const holdTTL = 10 * time.Minute

// SeatHoldService keeps short-lived seat reservations in Redis while a
// customer fills in passenger details. Holds are advisory; the unique key on
// booking_seats remains the authority at insert time.
type SeatHoldService struct {
	Redis     *redis.Client
	RequestID string
}

func holdKey(scheduleID int64, travelDate string, seat int) string {
	return fmt.Sprintf("seathold:%d:%s:%d", scheduleID, travelDate, seat)
}

// Hold claims all requested seats atomically per seat (SETNX). If any seat
// is already held by someone else, the seats acquired so far are released
// and a conflict is returned.
func (s SeatHoldService) Hold(ctx context.Context, scheduleID int64, travelDate string, seats []int, owner string) error {
	if s.Redis == nil {
		return nil
	}
	if owner == "" {
		return domain.ValidationError{Field: "owner", Msg: "owner kosong"}
	}

	acquired := make([]int, 0, len(seats))
	for _, seat := range seats {
		ok, err := s.Redis.SetNX(ctx, holdKey(scheduleID, travelDate, seat), owner, holdTTL).Result()
		if err != nil {
			s.release(ctx, scheduleID, travelDate, acquired)
			return domain.InternalError{Err: err}
		}
		if !ok {
			// already held; holding again from the same checkout is fine
			current, err := s.Redis.Get(ctx, holdKey(scheduleID, travelDate, seat)).Result()
			if err == nil && current == owner {
				acquired = append(acquired, seat)
				continue
			}
			s.release(ctx, scheduleID, travelDate, acquired)
			return domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("kursi %d sedang dipegang pemesan lain", seat)}
		}
		acquired = append(acquired, seat)
	}

	utils.LogEvent(s.RequestID, "seathold", "hold",
		fmt.Sprintf("schedule_id=%d date=%s seats=%d", scheduleID, travelDate, len(seats)))
	return nil
}

// Release drops the caller's holds. Seats held by someone else are left
// alone.
func (s SeatHoldService) Release(ctx context.Context, scheduleID int64, travelDate string, seats []int, owner string) {
	if s.Redis == nil {
		return
	}
	for _, seat := range seats {
		key := holdKey(scheduleID, travelDate, seat)
		current, err := s.Redis.Get(ctx, key).Result()
		if err != nil || current != owner {
			continue
		}
		_ = s.Redis.Del(ctx, key).Err()
	}
}

func (s SeatHoldService) release(ctx context.Context, scheduleID int64, travelDate string, seats []int) {
	for _, seat := range seats {
		_ = s.Redis.Del(ctx, holdKey(scheduleID, travelDate, seat)).Err()
	}
}

// Held lists currently held seat numbers up to the bus capacity.
func (s SeatHoldService) Held(ctx context.Context, scheduleID int64, travelDate string, capacity int) ([]int, error) {
	if s.Redis == nil || capacity <= 0 {
		return []int{}, nil
	}
	keys := make([]string, 0, capacity)
	for seat := 1; seat <= capacity; seat++ {
		keys = append(keys, holdKey(scheduleID, travelDate, seat))
	}
	vals, err := s.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	held := []int{}
	for i, v := range vals {
		if v != nil {
			held = append(held, i+1)
		}
	}
	return held, nil
}

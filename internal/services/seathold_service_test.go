package services

import (
	"context"
	"testing"

	"tiketbus/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatHoldAcquiresAllSeats(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSetNX("seathold:5:2026-03-16:3", "user:7", holdTTL).SetVal(true)
	mock.ExpectSetNX("seathold:5:2026-03-16:4", "user:7", holdTTL).SetVal(true)

	svc := SeatHoldService{Redis: rdb}
	err := svc.Hold(context.Background(), 5, "2026-03-16", []int{3, 4}, "user:7")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHoldConflictRollsBack(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSetNX("seathold:5:2026-03-16:3", "user:7", holdTTL).SetVal(true)
	mock.ExpectSetNX("seathold:5:2026-03-16:4", "user:7", holdTTL).SetVal(false)
	mock.ExpectGet("seathold:5:2026-03-16:4").SetVal("user:9")
	// the seat acquired before the conflict is given back
	mock.ExpectDel("seathold:5:2026-03-16:3").SetVal(1)

	svc := SeatHoldService{Redis: rdb}
	err := svc.Hold(context.Background(), 5, "2026-03-16", []int{3, 4}, "user:7")
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHoldReholdBySameOwner(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSetNX("seathold:5:2026-03-16:3", "user:7", holdTTL).SetVal(false)
	mock.ExpectGet("seathold:5:2026-03-16:3").SetVal("user:7")

	svc := SeatHoldService{Redis: rdb}
	err := svc.Hold(context.Background(), 5, "2026-03-16", []int{3}, "user:7")
	assert.NoError(t, err, "re-holding own seat should succeed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHoldReleaseOnlyOwnSeats(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("seathold:5:2026-03-16:3").SetVal("user:7")
	mock.ExpectDel("seathold:5:2026-03-16:3").SetVal(1)
	mock.ExpectGet("seathold:5:2026-03-16:4").SetVal("user:9")
	// seat 4 belongs to someone else: no delete expected

	svc := SeatHoldService{Redis: rdb}
	svc.Release(context.Background(), 5, "2026-03-16", []int{3, 4}, "user:7")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHoldHeldList(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectMGet(
		"seathold:5:2026-03-16:1",
		"seathold:5:2026-03-16:2",
		"seathold:5:2026-03-16:3",
	).SetVal([]interface{}{nil, "user:9", nil})

	svc := SeatHoldService{Redis: rdb}
	held, err := svc.Held(context.Background(), 5, "2026-03-16", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, held)
}

func TestSeatHoldNilRedisIsNoop(t *testing.T) {
	svc := SeatHoldService{}
	if err := svc.Hold(context.Background(), 5, "2026-03-16", []int{1}, "user:7"); err != nil {
		t.Fatalf("nil redis should degrade to no-op, got %v", err)
	}
	held, err := svc.Held(context.Background(), 5, "2026-03-16", 10)
	if err != nil || len(held) != 0 {
		t.Fatalf("nil redis Held should return empty, got %v %v", held, err)
	}
}

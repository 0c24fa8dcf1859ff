package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tickethub/internal/models"
)

func testSnapshot() *Snapshot {
	return SnapshotFrom(&models.Event{
		ID:               1,
		Title:            "Jazz Night",
		ScheduledAt:      time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		GeneralPrice:     decimal.RequireFromString("50.00"),
		VipPrice:         decimal.RequireFromString("120.00"),
		GeneralTotal:     100,
		GeneralAvailable: 97,
		VipTotal:         20,
		VipAvailable:     20,
	})
}

func TestAvailability_GetHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	want := testSnapshot()
	raw, _ := json.Marshal(want)
	mock.ExpectGet("event:status:1").SetVal(string(raw))

	a := NewAvailability(rdb, time.Minute)
	got, err := a.Get(context.Background(), 1)

	assert.NoError(t, err)
	// Decimals compare by value: a round-tripped decimal carries different
	// internals than a freshly built one.
	assert.Equal(t, want.EventID, got.EventID)
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.ScheduledAt.Equal(got.ScheduledAt))
	assert.True(t, want.GeneralPrice.Equal(got.GeneralPrice), "general price %s", got.GeneralPrice)
	assert.True(t, want.VipPrice.Equal(got.VipPrice), "vip price %s", got.VipPrice)
	assert.Equal(t, want.GeneralAvailable, got.GeneralAvailable)
	assert.Equal(t, want.GeneralTotal, got.GeneralTotal)
	assert.Equal(t, want.VipAvailable, got.VipAvailable)
	assert.Equal(t, want.VipTotal, got.VipTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailability_GetMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("event:status:1").RedisNil()

	a := NewAvailability(rdb, time.Minute)
	got, err := a.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailability_Set(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	snap := testSnapshot()
	raw, _ := json.Marshal(snap)
	mock.ExpectSet("event:status:1", raw, time.Minute).SetVal("OK")

	a := NewAvailability(rdb, time.Minute)

	assert.NoError(t, a.Set(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailability_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("event:status:1").SetVal(1)

	a := NewAvailability(rdb, time.Minute)

	assert.NoError(t, a.Invalidate(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailability_NilIsAMiss(t *testing.T) {
	var a *Availability

	got, err := a.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, a.Set(context.Background(), testSnapshot()))
	assert.NoError(t, a.Invalidate(context.Background(), 1))
}

// Package cache serves availability snapshots out of Redis so the status
// endpoint doesn't hit postgres on every poll. Reads are deliberately dirty;
// every committed inventory mutation invalidates the key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"tickethub/internal/models"
)

type Snapshot struct {
	EventID          uint            `json:"event_id"`
	Title            string          `json:"title"`
	ScheduledAt      time.Time       `json:"scheduled_at"`
	GeneralPrice     decimal.Decimal `json:"general_price"`
	VipPrice         decimal.Decimal `json:"vip_price"`
	GeneralAvailable int             `json:"general_available"`
	GeneralTotal     int             `json:"general_total"`
	VipAvailable     int             `json:"vip_available"`
	VipTotal         int             `json:"vip_total"`
}

func SnapshotFrom(e *models.Event) *Snapshot {
	return &Snapshot{
		EventID:          e.ID,
		Title:            e.Title,
		ScheduledAt:      e.ScheduledAt,
		GeneralPrice:     e.GeneralPrice,
		VipPrice:         e.VipPrice,
		GeneralAvailable: e.GeneralAvailable,
		GeneralTotal:     e.GeneralTotal,
		VipAvailable:     e.VipAvailable,
		VipTotal:         e.VipTotal,
	}
}

// Availability is nil-safe: a nil receiver (no Redis configured) behaves as
// a permanent cache miss.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	return &Availability{rdb: rdb, ttl: ttl}
}

func key(eventID uint) string {
	return fmt.Sprintf("event:status:%d", eventID)
}

func (a *Availability) Get(ctx context.Context, eventID uint) (*Snapshot, error) {
	if a == nil || a.rdb == nil {
		return nil, nil
	}
	raw, err := a.rdb.Get(ctx, key(eventID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (a *Availability) Set(ctx context.Context, snap *Snapshot) error {
	if a == nil || a.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return a.rdb.Set(ctx, key(snap.EventID), raw, a.ttl).Err()
}

func (a *Availability) Invalidate(ctx context.Context, eventID uint) error {
	if a == nil || a.rdb == nil {
		return nil
	}
	return a.rdb.Del(ctx, key(eventID)).Err()
}

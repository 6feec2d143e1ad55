package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
)

// Availability is a short-lived Redis cache for open-slot listings.
// Availability browsing is advisory and allowed to be stale (the booking
// transaction rechecks), so a small TTL is safe. A nil *Availability is a
// no-op, which is how the service runs when REDIS_ADDR is unset.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(addr string) *Availability {
	if addr == "" {
		return nil
	}
	return &Availability{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 30 * time.Second,
	}
}

func key(professionalID, serviceID uint, date string) string {
	return fmt.Sprintf("availability:%d:%d:%s", professionalID, serviceID, date)
}

func (c *Availability) Get(ctx context.Context, professionalID, serviceID uint, date string) ([]domain.Slot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(professionalID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Availability) Set(ctx context.Context, professionalID, serviceID uint, date string, slots []domain.Slot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key(professionalID, serviceID, date), raw, c.ttl)
}

// Invalidate drops the cached listings for a professional's date after a
// booking or cancellation changes occupancy.
func (c *Availability) Invalidate(ctx context.Context, professionalID uint, date string) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*:%s", professionalID, date)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

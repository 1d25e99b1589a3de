// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openchurch/campaign-service/internal/model"
)

// StatsCache is a short-TTL Redis cache in front of the RSVP stats query,
// sized for dashboard polling. All methods degrade to a miss/no-op on Redis
// errors; the cache is never load-bearing.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(addr string, ttl time.Duration) *StatsCache {
	return &StatsCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// NewStatsCacheFromClient wires an existing client, used by tests.
func NewStatsCacheFromClient(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func (c *StatsCache) GetStats(ctx context.Context, campaignID int) (*model.RSVPStats, bool) {
	val, err := c.rdb.Get(ctx, RSVPStatsKey(campaignID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("⚠️ stats cache read failed:", err)
		}
		return nil, false
	}
	var stats model.RSVPStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) SetStats(ctx context.Context, campaignID int, stats *model.RSVPStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, RSVPStatsKey(campaignID), data, c.ttl).Err(); err != nil {
		log.Println("⚠️ stats cache write failed:", err)
	}
}

// InvalidateStats drops the cached entry after an RSVP upsert so dashboards
// never see a stale count for longer than one round trip.
func (c *StatsCache) InvalidateStats(ctx context.Context, campaignID int) {
	if err := c.rdb.Del(ctx, RSVPStatsKey(campaignID)).Err(); err != nil {
		log.Println("⚠️ stats cache invalidation failed:", err)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const dashboardKey = "dashboard:summary"

type DashboardCache struct {
	rdb redis.UniversalClient
}

func NewDashboardCache(rdb redis.UniversalClient) *DashboardCache {
	return &DashboardCache{rdb: rdb}
}

// GetSummary reports ok=false on a miss; only transport or decode failures are errors.
func (c *DashboardCache) GetSummary(ctx context.Context) (*entity.DashboardSummary, bool, error) {
	raw, err := c.rdb.Get(ctx, dashboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	var s entity.DashboardSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("failed to decode dashboard cache: %w", err)
	}
	return &s, true, nil
}

func (c *DashboardCache) SetSummary(ctx context.Context, s *entity.DashboardSummary, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard cache: %w", err)
	}
	return c.rdb.Set(ctx, dashboardKey, raw, ttl).Err()
}

// Invalidate drops the cached summary.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, dashboardKey).Err()
}

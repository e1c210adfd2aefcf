package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type DashboardUseCase struct {
	Repo  entity.DashboardRepositoryInterface
	Cache DashboardCache
	TTL   time.Duration
	Log   logger.Logger
}

func NewDashboardUseCase(repo entity.DashboardRepositoryInterface, cache DashboardCache, ttl time.Duration, log logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{Repo: repo, Cache: cache, TTL: ttl, Log: log}
}

// Summary serves from cache when possible; cache errors fall through to the database.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	if uc.Cache != nil {
		s, ok, err := uc.Cache.GetSummary(ctx)
		if err != nil {
			uc.Log.Warn("dashboard cache read failed", map[string]interface{}{"error": err})
		} else if ok {
			return s, nil
		}
	}

	s, err := uc.Repo.Summary(ctx)
	if err != nil {
		return nil, dbError("failed to build dashboard", err)
	}

	if uc.Cache != nil && uc.TTL > 0 {
		if err := uc.Cache.SetSummary(ctx, s, uc.TTL); err != nil {
			uc.Log.Warn("dashboard cache write failed", map[string]interface{}{"error": err})
		}
	}
	return s, nil
}

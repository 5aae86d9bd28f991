package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/dto"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
)

const dashboardSummaryKey = "dashboard:summary"

type dashboardRepository interface {
	Totals(ctx context.Context) (*dto.DashboardTotals, error)
	CountByProgram(ctx context.Context, limit int) ([]dto.CountBucket, error)
	CountByEntryLevel(ctx context.Context, limit int) ([]dto.CountBucket, error)
	CountByProvince(ctx context.Context, limit int) ([]dto.CountBucket, error)
}

type modelDescriber interface {
	DescribeModel() string
}

// DashboardService composes the admin dashboard payload, caching the
// aggregate queries behind a short TTL.
type DashboardService struct {
	repo      dashboardRepository
	predictor modelDescriber
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, predictor modelDescriber, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, predictor: predictor, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns the dashboard aggregates, served from cache when warm.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if s.cache != nil {
		var cached dto.DashboardSummary
		if hit, err := s.cache.Get(ctx, dashboardSummaryKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard totals")
	}
	byProgram, err := s.repo.CountByProgram(ctx, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program breakdown")
	}
	byEntry, err := s.repo.CountByEntryLevel(ctx, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load entry level breakdown")
	}
	byProvince, err := s.repo.CountByProvince(ctx, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load province breakdown")
	}

	summary := &dto.DashboardSummary{
		Totals:     *totals,
		ByProgram:  byProgram,
		ByEntry:    byEntry,
		ByProvince: byProvince,
	}
	if s.predictor != nil {
		summary.ModelStatus = s.predictor.DescribeModel()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardSummaryKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}
	return summary, nil
}

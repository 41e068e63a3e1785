package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"homenest/internal/domain"
)

const (
	statsCacheKey  = "dashboard:stats"
	chartsCacheKey = "dashboard:charts"
)

// DashboardService serves the admin summaries. Each call fans its queries
// out concurrently; any single failure fails the whole call.
type DashboardService struct {
	repo     domain.StatsRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewDashboardService(r domain.StatsRepository, c domain.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *DashboardService) Stats(ctx context.Context) (domain.Stats, error) {
	var out domain.Stats
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, statsCacheKey, &out); ok {
			return out, nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Properties, err = s.repo.Count(gctx, domain.CollProperties)
		return err
	})
	g.Go(func() (err error) {
		out.Reviews, err = s.repo.Count(gctx, domain.CollReviews)
		return err
	})
	g.Go(func() (err error) {
		out.Users, err = s.repo.Count(gctx, domain.CollUsers)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.repo.TotalRevenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Stats{}, fmt.Errorf("dashboard stats: %w", err)
	}

	s.store(ctx, statsCacheKey, out)
	return out, nil
}

func (s *DashboardService) Charts(ctx context.Context) (domain.Charts, error) {
	var out domain.Charts
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, chartsCacheKey, &out); ok {
			return out, nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.PropertiesByCategory, err = s.repo.PropertiesByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.RevenueByMonth, err = s.repo.RevenueByMonth(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.UsersStatus, err = s.repo.UsersByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Charts{}, fmt.Errorf("dashboard charts: %w", err)
	}

	out.PropertiesByCategory = nonNil(out.PropertiesByCategory)
	out.RevenueByMonth = nonNil(out.RevenueByMonth)
	out.UsersStatus = nonNil(out.UsersStatus)

	s.store(ctx, chartsCacheKey, out)
	return out, nil
}

func (s *DashboardService) store(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dashboard cache set failed")
	}
}

// invalidateDashboard drops cached summaries after a write that changes
// counts or categories. Cache errors never fail the write.
func invalidateDashboard(ctx context.Context, c domain.Cache) {
	if c == nil {
		return
	}
	for _, k := range []string{statsCacheKey, chartsCacheKey} {
		if err := c.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("dashboard cache invalidation failed")
		}
	}
}

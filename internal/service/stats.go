package service

import (
	"context"
	"fmt"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/repo"
)

// StatsService serves the weekly collection totals behind the analytics
// dashboard.
type StatsService struct {
	stats repo.StatsRepo
}

// NewStatsService constructs a StatsService backed by the provided StatsRepo.
func NewStatsService(stats repo.StatsRepo) *StatsService {
	return &StatsService{stats: stats}
}

// Weekly returns all recorded weeks, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StatsService) Weekly(ctx context.Context) ([]domain.WeeklyStat, error) {
	stats, err := s.stats.ListWeekly(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.Weekly: %w", err)
	}
	if stats == nil {
		stats = []domain.WeeklyStat{}
	}
	return stats, nil
}

// RecordWeek upserts one week of totals.
// Returns domain.ErrValidation when counts are negative or the week is zero.
func (s *StatsService) RecordWeek(ctx context.Context, stat domain.WeeklyStat) (domain.WeeklyStat, error) {
	if stat.WeekStart.IsZero() {
		return domain.WeeklyStat{}, fmt.Errorf("%w: week_start is required", domain.ErrValidation)
	}
	if stat.Sandwiches < 0 || stat.Volunteers < 0 || stat.HostsActive < 0 {
		return domain.WeeklyStat{}, fmt.Errorf("%w: counts must not be negative", domain.ErrValidation)
	}
	result, err := s.stats.UpsertWeekly(ctx, stat)
	if err != nil {
		return domain.WeeklyStat{}, fmt.Errorf("service.StatsService.RecordWeek: %w", err)
	}
	return result, nil
}

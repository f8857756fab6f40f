package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// StatsRepo defines the persistence operations for weekly collection stats.
type StatsRepo interface {
	// ListWeekly returns all weekly stats ordered by week_start ascending.
	ListWeekly(ctx context.Context) ([]domain.WeeklyStat, error)

	// UpsertWeekly inserts or replaces the stats row for a week.
	UpsertWeekly(ctx context.Context, stat domain.WeeklyStat) (domain.WeeklyStat, error)
}

// pgStatsRepo is the Postgres implementation of StatsRepo.
type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// ListWeekly returns every recorded week, oldest first, ready for charting.
func (r *pgStatsRepo) ListWeekly(ctx context.Context) ([]domain.WeeklyStat, error) {
	const q = `
		SELECT week_start, sandwiches, volunteers, hosts_active
		FROM weekly_stats
		ORDER BY week_start`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.ListWeekly: %w", err)
	}
	defer rows.Close()

	stats := []domain.WeeklyStat{}
	for rows.Next() {
		var s domain.WeeklyStat
		if err := rows.Scan(&s.WeekStart, &s.Sandwiches, &s.Volunteers, &s.HostsActive); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.ListWeekly: scan: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.ListWeekly: rows: %w", err)
	}
	return stats, nil
}

// UpsertWeekly inserts a week or replaces its totals on conflict.
func (r *pgStatsRepo) UpsertWeekly(ctx context.Context, stat domain.WeeklyStat) (domain.WeeklyStat, error) {
	const q = `
		INSERT INTO weekly_stats (week_start, sandwiches, volunteers, hosts_active)
		VALUES (@week_start, @sandwiches, @volunteers, @hosts_active)
		ON CONFLICT (week_start) DO UPDATE
		SET sandwiches = EXCLUDED.sandwiches,
		    volunteers = EXCLUDED.volunteers,
		    hosts_active = EXCLUDED.hosts_active
		RETURNING week_start, sandwiches, volunteers, hosts_active`

	args := pgx.NamedArgs{
		"week_start":   stat.WeekStart,
		"sandwiches":   stat.Sandwiches,
		"volunteers":   stat.Volunteers,
		"hosts_active": stat.HostsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	var s domain.WeeklyStat
	if err := row.Scan(&s.WeekStart, &s.Sandwiches, &s.Volunteers, &s.HostsActive); err != nil {
		return domain.WeeklyStat{}, fmt.Errorf("repo.StatsRepo.UpsertWeekly: %w", err)
	}
	return s, nil
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusCount pairs a grouping key with a ticket count.
type StatusCount struct {
	Key   string
	Count int64
}

// ReportRepository runs aggregate queries for admin dashboards. Soft-deleted
// tickets are excluded from every aggregate.
type ReportRepository interface {
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByGroup(ctx context.Context) ([]StatusCount, error)
	CountByPriority(ctx context.Context) ([]StatusCount, error)
	OpenedResolvedBetween(ctx context.Context, from, to time.Time) (opened int64, resolved int64, err error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	const query = `
        SELECT status, COUNT(*) FROM tickets WHERE is_deleted = FALSE
        GROUP BY status ORDER BY status`
	return r.countQuery(ctx, query)
}

func (r *reportRepository) CountByGroup(ctx context.Context) ([]StatusCount, error) {
	const query = `
        SELECT g.name, COUNT(t.id)
        FROM tickets t JOIN business_unit_groups g ON g.id = t.group_id
        WHERE t.is_deleted = FALSE
        GROUP BY g.name ORDER BY g.name`
	return r.countQuery(ctx, query)
}

func (r *reportRepository) CountByPriority(ctx context.Context) ([]StatusCount, error) {
	const query = `
        SELECT priority, COUNT(*) FROM tickets WHERE is_deleted = FALSE
        GROUP BY priority ORDER BY priority`
	return r.countQuery(ctx, query)
}

func (r *reportRepository) countQuery(ctx context.Context, query string) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var entry StatusCount
		if err := rows.Scan(&entry.Key, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *reportRepository) OpenedResolvedBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var opened, resolved int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE is_deleted = FALSE AND created_at BETWEEN $1 AND $2`,
		from, to).Scan(&opened); err != nil {
		return 0, 0, err
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE is_deleted = FALSE AND resolved_at BETWEEN $1 AND $2`,
		from, to).Scan(&resolved); err != nil {
		return 0, 0, err
	}
	return opened, resolved, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// StatusChangeRepository stores the per-transition audit entries carrying the
// mandatory remark.
type StatusChangeRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.StatusChange, error)
}

type statusChangeRepository struct {
	pool *pgxpool.Pool
}

// NewStatusChangeRepository builds repository.
func NewStatusChangeRepository(pool *pgxpool.Pool) StatusChangeRepository {
	return &statusChangeRepository{pool: pool}
}

func (r *statusChangeRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	const query = `
        INSERT INTO ticket_status_changes (ticket_id, from_status, to_status, remark, changed_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		change.TicketID,
		change.FromStatus,
		change.ToStatus,
		change.Remark,
		change.ChangedBy,
	).Scan(&change.ID, &change.CreatedAt)
}

func (r *statusChangeRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.StatusChange, error) {
	const query = `
        SELECT id, ticket_id, from_status, to_status, remark, changed_by, created_at
        FROM ticket_status_changes WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(
			&change.ID,
			&change.TicketID,
			&change.FromStatus,
			&change.ToStatus,
			&change.Remark,
			&change.ChangedBy,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// RedirectRepository stores the append-only escalation audit trail.
type RedirectRepository interface {
	Create(ctx context.Context, redirect *domain.Redirect) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Redirect, error)
}

type redirectRepository struct {
	pool *pgxpool.Pool
}

// NewRedirectRepository builds repository.
func NewRedirectRepository(pool *pgxpool.Pool) RedirectRepository {
	return &redirectRepository{pool: pool}
}

func (r *redirectRepository) Create(ctx context.Context, redirect *domain.Redirect) error {
	const query = `
        INSERT INTO ticket_redirects (ticket_id, from_group_id, to_group_id, from_spoc_id, to_spoc_id, remark, redirected_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		redirect.TicketID,
		redirect.FromGroupID,
		redirect.ToGroupID,
		redirect.FromSpocID,
		redirect.ToSpocID,
		redirect.Remark,
		redirect.RedirectedBy,
	).Scan(&redirect.ID, &redirect.CreatedAt)
}

func (r *redirectRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Redirect, error) {
	const query = `
        SELECT id, ticket_id, from_group_id, to_group_id, from_spoc_id, to_spoc_id, remark, redirected_by, created_at
        FROM ticket_redirects WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Redirect
	for rows.Next() {
		var redirect domain.Redirect
		if err := rows.Scan(
			&redirect.ID,
			&redirect.TicketID,
			&redirect.FromGroupID,
			&redirect.ToGroupID,
			&redirect.FromSpocID,
			&redirect.ToSpocID,
			&redirect.Remark,
			&redirect.RedirectedBy,
			&redirect.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, redirect)
	}
	return result, rows.Err()
}

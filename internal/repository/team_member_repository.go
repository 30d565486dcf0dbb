package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// TeamMemberRepository manages group rosters.
type TeamMemberRepository interface {
	Add(ctx context.Context, member *domain.TeamMember) error
	Remove(ctx context.Context, groupID, userID int64) error
	ListByGroup(ctx context.Context, groupID int64) ([]domain.TeamMember, error)
}

type teamMemberRepository struct {
	pool *pgxpool.Pool
}

// NewTeamMemberRepository builds the repository.
func NewTeamMemberRepository(pool *pgxpool.Pool) TeamMemberRepository {
	return &teamMemberRepository{pool: pool}
}

func (r *teamMemberRepository) Add(ctx context.Context, member *domain.TeamMember) error {
	const query = `
        INSERT INTO team_members (group_id, user_id)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, member.GroupID, member.UserID).
		Scan(&member.ID, &member.CreatedAt)
}

func (r *teamMemberRepository) Remove(ctx context.Context, groupID, userID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE group_id=$1 AND user_id=$2`, groupID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamMemberRepository) ListByGroup(ctx context.Context, groupID int64) ([]domain.TeamMember, error) {
	const query = `
        SELECT id, group_id, user_id, created_at
        FROM team_members WHERE group_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TeamMember
	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(&member.ID, &member.GroupID, &member.UserID, &member.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

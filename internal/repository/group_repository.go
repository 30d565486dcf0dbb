package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// GroupRepository manages business unit group persistence.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.BusinessUnitGroup) error
	Update(ctx context.Context, group *domain.BusinessUnitGroup) error
	GetByID(ctx context.Context, id int64) (*domain.BusinessUnitGroup, error)
	List(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error)
	Delete(ctx context.Context, id int64) error
}

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository builds the repository.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.BusinessUnitGroup) error {
	const query = `
        INSERT INTO business_unit_groups (name, description, is_active)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		group.Name,
		group.Description,
		group.IsActive,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
}

func (r *groupRepository) Update(ctx context.Context, group *domain.BusinessUnitGroup) error {
	const query = `
        UPDATE business_unit_groups SET name=$1, description=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		group.Name,
		group.Description,
		group.IsActive,
		group.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.BusinessUnitGroup, error) {
	const query = `
        SELECT id, name, description, is_active, created_at, updated_at
        FROM business_unit_groups WHERE id=$1`
	var group domain.BusinessUnitGroup
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.IsActive,
		&group.CreatedAt,
		&group.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, activeOnly bool) ([]domain.BusinessUnitGroup, error) {
	query := `
        SELECT id, name, description, is_active, created_at, updated_at
        FROM business_unit_groups`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BusinessUnitGroup
	for rows.Next() {
		var group domain.BusinessUnitGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.IsActive, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM business_unit_groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// MappingRepository manages classification mapping rows.
type MappingRepository interface {
	Create(ctx context.Context, mapping *domain.ClassificationMapping) error
	Update(ctx context.Context, mapping *domain.ClassificationMapping) error
	GetByID(ctx context.Context, id int64) (*domain.ClassificationMapping, error)
	List(ctx context.Context, groupID *int64) ([]domain.ClassificationMapping, error)
	Delete(ctx context.Context, id int64) error
	// FindMatch returns the mapping for (group, category, subcategory).
	// When subcategory is nil the first row matching group and category
	// wins. Returns pgx.ErrNoRows when nothing matches.
	FindMatch(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error)
}

type mappingRepository struct {
	pool *pgxpool.Pool
}

// NewMappingRepository builds the repository.
func NewMappingRepository(pool *pgxpool.Pool) MappingRepository {
	return &mappingRepository{pool: pool}
}

const mappingColumns = `id, group_id, category_id, subcategory_id, description_template,
       estimated_duration_minutes, default_spoc_id, created_at, updated_at`

func (r *mappingRepository) Create(ctx context.Context, mapping *domain.ClassificationMapping) error {
	const query = `
        INSERT INTO ticket_classification_mapping
            (group_id, category_id, subcategory_id, description_template, estimated_duration_minutes, default_spoc_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		mapping.GroupID,
		mapping.CategoryID,
		mapping.SubcategoryID,
		mapping.DescriptionTemplate,
		mapping.EstimatedDurationMinutes,
		mapping.DefaultSpocID,
	).Scan(&mapping.ID, &mapping.CreatedAt, &mapping.UpdatedAt)
}

func (r *mappingRepository) Update(ctx context.Context, mapping *domain.ClassificationMapping) error {
	const query = `
        UPDATE ticket_classification_mapping SET group_id=$1, category_id=$2, subcategory_id=$3,
            description_template=$4, estimated_duration_minutes=$5, default_spoc_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		mapping.GroupID,
		mapping.CategoryID,
		mapping.SubcategoryID,
		mapping.DescriptionTemplate,
		mapping.EstimatedDurationMinutes,
		mapping.DefaultSpocID,
		mapping.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mappingRepository) GetByID(ctx context.Context, id int64) (*domain.ClassificationMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM ticket_classification_mapping WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *mappingRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.ClassificationMapping, error) {
	var mapping domain.ClassificationMapping
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&mapping.ID,
		&mapping.GroupID,
		&mapping.CategoryID,
		&mapping.SubcategoryID,
		&mapping.DescriptionTemplate,
		&mapping.EstimatedDurationMinutes,
		&mapping.DefaultSpocID,
		&mapping.CreatedAt,
		&mapping.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) List(ctx context.Context, groupID *int64) ([]domain.ClassificationMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM ticket_classification_mapping`
	args := []any{}
	if groupID != nil {
		query += ` WHERE group_id=$1`
		args = append(args, *groupID)
	}
	query += ` ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClassificationMapping
	for rows.Next() {
		var mapping domain.ClassificationMapping
		if err := rows.Scan(
			&mapping.ID,
			&mapping.GroupID,
			&mapping.CategoryID,
			&mapping.SubcategoryID,
			&mapping.DescriptionTemplate,
			&mapping.EstimatedDurationMinutes,
			&mapping.DefaultSpocID,
			&mapping.CreatedAt,
			&mapping.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, mapping)
	}
	return result, rows.Err()
}

func (r *mappingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket_classification_mapping WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindMatch resolves a classification triple to a mapping row. Matching is
// exact on the supplied fields: a lookup with a subcategory considers only
// subcategory-specific rows and does not fall back to the category-level
// mapping; a lookup without one takes the first category-level row by id.
func (r *mappingRepository) FindMatch(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error) {
	if subcategoryID != nil {
		query := `SELECT ` + mappingColumns + `
            FROM ticket_classification_mapping
            WHERE group_id=$1 AND category_id=$2 AND subcategory_id=$3
            ORDER BY id ASC LIMIT 1`
		return r.fetchSingle(ctx, query, groupID, categoryID, *subcategoryID)
	}
	query := `SELECT ` + mappingColumns + `
        FROM ticket_classification_mapping
        WHERE group_id=$1 AND category_id=$2
        ORDER BY id ASC LIMIT 1`
	return r.fetchSingle(ctx, query, groupID, categoryID)
}

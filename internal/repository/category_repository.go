package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// CategoryRepository manages category and subcategory master data.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateSubcategory(ctx context.Context, sub *domain.Subcategory) error
	UpdateSubcategory(ctx context.Context, sub *domain.Subcategory) error
	GetSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, is_active)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, category.Name, category.IsActive).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, is_active=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, category.Name, category.IsActive, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `
        SELECT id, name, is_active, created_at, updated_at FROM categories WHERE id=$1`
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.IsActive, &category.CreatedAt, &category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.IsActive, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) CreateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	const query = `
        INSERT INTO subcategories (category_id, name, is_active)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, sub.CategoryID, sub.Name, sub.IsActive).
		Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *categoryRepository) UpdateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	const query = `
        UPDATE subcategories SET category_id=$1, name=$2, is_active=$3, updated_at=NOW() WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, sub.CategoryID, sub.Name, sub.IsActive, sub.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error) {
	const query = `
        SELECT id, category_id, name, is_active, created_at, updated_at
        FROM subcategories WHERE id=$1`
	var sub domain.Subcategory
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *categoryRepository) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	const query = `
        SELECT id, category_id, name, is_active, created_at, updated_at
        FROM subcategories WHERE category_id=$1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subcategory
	for rows.Next() {
		var sub domain.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *categoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// ProjectRepository manages project and product release master data.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *domain.Project) error
	UpdateProject(ctx context.Context, project *domain.Project) error
	GetProjectByID(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	CreateRelease(ctx context.Context, release *domain.ProductRelease) error
	ListReleases(ctx context.Context, projectID int64) ([]domain.ProductRelease, error)
	DeleteRelease(ctx context.Context, id int64) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) CreateProject(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, is_active)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, project.Name, project.IsActive).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) UpdateProject(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, is_active=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, project.Name, project.IsActive, project.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `
        SELECT id, name, is_active, created_at, updated_at FROM projects WHERE id=$1`
	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.IsActive, &project.CreatedAt, &project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM projects`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.ID, &project.Name, &project.IsActive, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) DeleteProject(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) CreateRelease(ctx context.Context, release *domain.ProductRelease) error {
	const query = `
        INSERT INTO product_releases (project_id, version, release_date)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		release.ProjectID,
		release.Version,
		release.ReleaseDate,
	).Scan(&release.ID, &release.CreatedAt, &release.UpdatedAt)
}

func (r *projectRepository) ListReleases(ctx context.Context, projectID int64) ([]domain.ProductRelease, error) {
	const query = `
        SELECT id, project_id, version, release_date, created_at, updated_at
        FROM product_releases WHERE project_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductRelease
	for rows.Next() {
		var release domain.ProductRelease
		if err := rows.Scan(&release.ID, &release.ProjectID, &release.Version, &release.ReleaseDate, &release.CreatedAt, &release.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, release)
	}
	return result, rows.Err()
}

func (r *projectRepository) DeleteRelease(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM product_releases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

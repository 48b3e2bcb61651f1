package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// ScholarshipRepository implements repository.ScholarshipRepository using PostgreSQL.
type ScholarshipRepository struct {
	db *sqlx.DB
}

// NewScholarshipRepository creates a new PostgreSQL scholarship repository.
func NewScholarshipRepository(db *sqlx.DB) repository.ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

// List retrieves all scholarships.
func (r *ScholarshipRepository) List(ctx context.Context) ([]models.Scholarship, error) {
	var schs []models.Scholarship
	query := `SELECT * FROM scholarships ORDER BY id`
	if err := r.db.SelectContext(ctx, &schs, query); err != nil {
		return nil, err
	}
	return schs, nil
}

// Get retrieves a scholarship by id.
func (r *ScholarshipRepository) Get(ctx context.Context, id int) (*models.Scholarship, error) {
	var sch models.Scholarship
	query := `SELECT * FROM scholarships WHERE id = $1`
	if err := r.db.GetContext(ctx, &sch, query, id); err != nil {
		return nil, err
	}
	return &sch, nil
}

// Create inserts a scholarship, filling in the assigned id.
func (r *ScholarshipRepository) Create(ctx context.Context, sch *models.Scholarship) error {
	query := `
		INSERT INTO scholarships (name, provider, deadline, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		sch.Name, sch.Provider, sch.Deadline, sch.Type, sch.Description,
	).Scan(&sch.ID)
}

// Update rewrites a scholarship.
func (r *ScholarshipRepository) Update(ctx context.Context, sch *models.Scholarship) error {
	query := `
		UPDATE scholarships
		SET name = :name, provider = :provider, deadline = :deadline, type = :type, description = :description
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, sch)
	return err
}

// Delete removes a scholarship.
func (r *ScholarshipRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM scholarships WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

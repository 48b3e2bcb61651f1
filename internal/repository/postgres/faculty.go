package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// FacultyRepository implements repository.FacultyRepository using PostgreSQL.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new PostgreSQL faculty repository.
func NewFacultyRepository(db *sqlx.DB) repository.FacultyRepository {
	return &FacultyRepository{db: db}
}

// List retrieves all faculty members.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	var faculty []models.Faculty
	query := `SELECT * FROM faculty ORDER BY id`
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, err
	}
	return faculty, nil
}

// Get retrieves a faculty member by id.
func (r *FacultyRepository) Get(ctx context.Context, id int) (*models.Faculty, error) {
	var f models.Faculty
	query := `SELECT * FROM faculty WHERE id = $1`
	if err := r.db.GetContext(ctx, &f, query, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a faculty member, filling in the assigned id.
func (r *FacultyRepository) Create(ctx context.Context, f *models.Faculty) error {
	query := `
		INSERT INTO faculty (name, position, department, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		f.Name, f.Position, f.Department, f.Email,
	).Scan(&f.ID)
}

// Update rewrites a faculty member.
func (r *FacultyRepository) Update(ctx context.Context, f *models.Faculty) error {
	query := `
		UPDATE faculty
		SET name = :name, position = :position, department = :department, email = :email
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, f)
	return err
}

// Delete removes a faculty member.
func (r *FacultyRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM faculty WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// DepartmentRepository implements repository.DepartmentRepository using PostgreSQL.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new PostgreSQL department repository.
func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List retrieves all departments.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	query := `SELECT * FROM departments ORDER BY id`
	if err := r.db.SelectContext(ctx, &depts, query); err != nil {
		return nil, err
	}
	return depts, nil
}

// Get retrieves a department by id.
func (r *DepartmentRepository) Get(ctx context.Context, id int) (*models.Department, error) {
	var dept models.Department
	query := `SELECT * FROM departments WHERE id = $1`
	if err := r.db.GetContext(ctx, &dept, query, id); err != nil {
		return nil, err
	}
	return &dept, nil
}

// Create inserts a department, filling in the assigned id.
func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	query := `
		INSERT INTO departments (name, dean, email, phone, description, programs, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		dept.Name, dept.Dean, dept.Email, dept.Phone, dept.Description, dept.Programs, dept.Image,
	).Scan(&dept.ID)
}

// Update rewrites a department.
func (r *DepartmentRepository) Update(ctx context.Context, dept *models.Department) error {
	query := `
		UPDATE departments
		SET name = :name, dean = :dean, email = :email, phone = :phone,
		    description = :description, programs = :programs, image = :image
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, dept)
	return err
}

// Delete removes a department.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM departments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

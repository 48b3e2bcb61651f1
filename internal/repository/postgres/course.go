package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// CourseRepository implements repository.CourseRepository using PostgreSQL.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new PostgreSQL course repository.
func NewCourseRepository(db *sqlx.DB) repository.CourseRepository {
	return &CourseRepository{db: db}
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	query := `SELECT * FROM courses ORDER BY id`
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, err
	}
	return courses, nil
}

// Get retrieves a course by id.
func (r *CourseRepository) Get(ctx context.Context, id int) (*models.Course, error) {
	var course models.Course
	query := `SELECT * FROM courses WHERE id = $1`
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course, filling in the assigned id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, department, duration, units, description, requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		course.Code, course.Name, course.Department, course.Duration, course.Units, course.Description, course.Requirements,
	).Scan(&course.ID)
}

// Update rewrites a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = :code, name = :name, department = :department, duration = :duration,
		    units = :units, description = :description, requirements = :requirements
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, course)
	return err
}

// Delete removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courses WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

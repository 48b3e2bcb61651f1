package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/gabai/gabai-backend/internal/models"
)

// UserRepository defines user account storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserSessionRepository defines login session storage operations.
type UserSessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.UserSession, error)
	GetByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*models.UserSession, error)
	Update(ctx context.Context, session *models.UserSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
}

// DepartmentRepository defines department CRUD.
type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	Get(ctx context.Context, id int) (*models.Department, error)
	Create(ctx context.Context, dept *models.Department) error
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id int) error
}

// CourseRepository defines course CRUD.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id int) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int) error
}

// ScholarshipRepository defines scholarship CRUD.
type ScholarshipRepository interface {
	List(ctx context.Context) ([]models.Scholarship, error)
	Get(ctx context.Context, id int) (*models.Scholarship, error)
	Create(ctx context.Context, sch *models.Scholarship) error
	Update(ctx context.Context, sch *models.Scholarship) error
	Delete(ctx context.Context, id int) error
}

// FacultyRepository defines faculty CRUD.
type FacultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	Get(ctx context.Context, id int) (*models.Faculty, error)
	Create(ctx context.Context, f *models.Faculty) error
	Update(ctx context.Context, f *models.Faculty) error
	Delete(ctx context.Context, id int) error
}

// MapLocationRepository defines campus map marker CRUD.
type MapLocationRepository interface {
	List(ctx context.Context) ([]models.MapLocation, error)
	Get(ctx context.Context, id int) (*models.MapLocation, error)
	Create(ctx context.Context, loc *models.MapLocation) error
	Update(ctx context.Context, loc *models.MapLocation) error
	Delete(ctx context.Context, id int) error
}

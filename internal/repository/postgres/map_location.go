package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// MapLocationRepository implements repository.MapLocationRepository using PostgreSQL.
type MapLocationRepository struct {
	db *sqlx.DB
}

// NewMapLocationRepository creates a new PostgreSQL map marker repository.
func NewMapLocationRepository(db *sqlx.DB) repository.MapLocationRepository {
	return &MapLocationRepository{db: db}
}

// List retrieves all map markers.
func (r *MapLocationRepository) List(ctx context.Context) ([]models.MapLocation, error) {
	var locs []models.MapLocation
	query := `SELECT * FROM map_locations ORDER BY id`
	if err := r.db.SelectContext(ctx, &locs, query); err != nil {
		return nil, err
	}
	return locs, nil
}

// Get retrieves a map marker by id.
func (r *MapLocationRepository) Get(ctx context.Context, id int) (*models.MapLocation, error) {
	var loc models.MapLocation
	query := `SELECT * FROM map_locations WHERE id = $1`
	if err := r.db.GetContext(ctx, &loc, query, id); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Create inserts a map marker, filling in the assigned id.
func (r *MapLocationRepository) Create(ctx context.Context, loc *models.MapLocation) error {
	query := `
		INSERT INTO map_locations (name, type, lat, lng, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		loc.Name, loc.Type, loc.Lat, loc.Lng, loc.Description,
	).Scan(&loc.ID)
}

// Update rewrites a map marker.
func (r *MapLocationRepository) Update(ctx context.Context, loc *models.MapLocation) error {
	query := `
		UPDATE map_locations
		SET name = :name, type = :type, lat = :lat, lng = :lng, description = :description
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, loc)
	return err
}

// Delete removes a map marker.
func (r *MapLocationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM map_locations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

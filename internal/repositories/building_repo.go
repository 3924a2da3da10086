package repositories

import (
	"context"

	"rentdesk/internal/models"

	"github.com/google/uuid"
)

type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Building, error)
	Count(ctx context.Context) (int, error)
}

type buildingRepo struct {
	db Database
}

func NewBuildingRepo(db Database) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, building *models.Building) error {
	query := `
		INSERT INTO buildings (id, name, location, type, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, building.ID, building.Name, building.Location, building.Type, building.Description)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	building := &models.Building{}
	query := `
		SELECT id, name, location, type, description, created_at, updated_at
		FROM buildings
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&building.ID, &building.Name, &building.Location, &building.Type, &building.Description, &building.CreatedAt, &building.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return building, nil
}

func (r *buildingRepo) Update(ctx context.Context, building *models.Building) error {
	query := `
		UPDATE buildings
		SET name = $1, location = $2, type = $3, description = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, building.Name, building.Location, building.Type, building.Description, building.ID)
	return err
}

// Delete removes the building; its units go with it via ON DELETE CASCADE.
func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM buildings WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *buildingRepo) List(ctx context.Context, limit, offset int) ([]*models.Building, error) {
	query := `
		SELECT id, name, location, type, description, created_at, updated_at
		FROM buildings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		building := &models.Building{}
		if err := rows.Scan(&building.ID, &building.Name, &building.Location, &building.Type, &building.Description, &building.CreatedAt, &building.UpdatedAt); err != nil {
			return nil, err
		}
		buildings = append(buildings, building)
	}
	return buildings, rows.Err()
}

func (r *buildingRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM buildings`).Scan(&count)
	return count, err
}

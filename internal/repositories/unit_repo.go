package repositories

import (
	"context"

	"rentdesk/internal/models"

	"github.com/google/uuid"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	// GetByIDForUpdate locks the unit row for the rest of the enclosing
	// transaction so concurrent occupancy writes serialize.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Unit, error)
	ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit, offset int) ([]*models.Unit, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	WithTx(tx Database) UnitRepository
}

type unitRepo struct {
	db Database
}

func NewUnitRepo(db Database) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) WithTx(tx Database) UnitRepository {
	return &unitRepo{db: tx}
}

const unitColumns = `id, building_id, unit_number, type, rent_amount, status, created_at, updated_at`

func (r *unitRepo) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (id, building_id, unit_number, type, rent_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, unit.ID, unit.BuildingID, unit.UnitNumber, unit.Type, unit.RentAmount, unit.Status)
	return err
}

func (r *unitRepo) scanOne(row interface{ Scan(dest ...any) error }) (*models.Unit, error) {
	unit := &models.Unit{}
	err := row.Scan(&unit.ID, &unit.BuildingID, &unit.UnitNumber, &unit.Type, &unit.RentAmount, &unit.Status, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *unitRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *unitRepo) Update(ctx context.Context, unit *models.Unit) error {
	query := `
		UPDATE units
		SET building_id = $1, unit_number = $2, type = $3, rent_amount = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, unit.BuildingID, unit.UnitNumber, unit.Type, unit.RentAmount, unit.Status, unit.ID)
	return err
}

func (r *unitRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE units SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// Delete removes the unit; tenants referencing it keep their records with
// unit_id nulled by ON DELETE SET NULL.
func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM units WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *unitRepo) List(ctx context.Context, limit, offset int) ([]*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY unit_number LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *unitRepo) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit, offset int) ([]*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE building_id = $1 ORDER BY unit_number LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, buildingID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *unitRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM units WHERE status = $1`, status).Scan(&count)
	return count, err
}

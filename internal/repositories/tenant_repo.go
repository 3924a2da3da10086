package repositories

import (
	"context"

	"rentdesk/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	// GetByIDForUpdate locks the tenant row for the rest of the
	// enclosing transaction. The occupancy rule reads the prior
	// persisted state through this before overwriting it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByUserEmail(ctx context.Context, email string) (*models.Tenant, error)
	// CountOthersForUnit counts tenants referencing the unit, excluding
	// excludeID so re-saving an assigned tenant does not self-conflict.
	CountOthersForUnit(ctx context.Context, unitID, excludeID uuid.UUID) (int, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photoObject *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
	Count(ctx context.Context) (int, error)
	WithTx(tx Database) TenantRepository
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) WithTx(tx Database) TenantRepository {
	return &tenantRepo{db: tx}
}

const tenantColumns = `id, name, phone, email, id_number, photo_object, status, unit_id, created_at, updated_at`

func (r *tenantRepo) scanOne(row interface{ Scan(dest ...any) error }) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.Phone, &tenant.Email, &tenant.IDNumber, &tenant.PhotoObject, &tenant.Status, &tenant.UnitID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, phone, email, id_number, photo_object, status, unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.Phone, tenant.Email, tenant.IDNumber, tenant.PhotoObject, tenant.Status, tenant.UnitID)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) GetByUserEmail(ctx context.Context, email string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *tenantRepo) CountOthersForUnit(ctx context.Context, unitID, excludeID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tenants WHERE unit_id = $1 AND id <> $2`
	err := r.db.QueryRow(ctx, query, unitID, excludeID).Scan(&count)
	return count, err
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, phone = $2, email = $3, id_number = $4, status = $5, unit_id = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.Phone, tenant.Email, tenant.IDNumber, tenant.Status, tenant.UnitID, tenant.ID)
	return err
}

func (r *tenantRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, photoObject *string) error {
	query := `UPDATE tenants SET photo_object = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, photoObject, id)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tenants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count)
	return count, err
}

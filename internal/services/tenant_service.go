package services

import (
	"context"
	"log"
	"strings"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/caching"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
)

// TenantService owns the occupancy consistency rule: every tenant write
// runs inside one transaction that validates the candidate unit, commits
// the tenant record, occupies the newly referenced unit, and vacates the
// previously referenced one. A failed validation aborts the whole write.
type TenantService interface {
	Create(ctx context.Context, actor models.Principal, req *TenantWriteRequest) (*models.Tenant, error)
	Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *TenantWriteRequest) (*models.Tenant, error)
	Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error
	GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Tenant, error)
	SetPhoto(ctx context.Context, actor models.Principal, id uuid.UUID, photoObject *string) error
}

// TenantWriteRequest carries the tenant fields plus the candidate unit
// reference (nil clears the assignment).
type TenantWriteRequest struct {
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	IDNumber string     `json:"id_number"`
	Status   string     `json:"status"`
	UnitID   *uuid.UUID `json:"unit_id"`
}

type tenantService struct {
	db         TxBeginner
	tenantRepo repositories.TenantRepository
	unitRepo   repositories.UnitRepository
	cacheSvc   caching.CacheService
}

func NewTenantService(db TxBeginner, tenantRepo repositories.TenantRepository, unitRepo repositories.UnitRepository, cacheSvc caching.CacheService) TenantService {
	return &tenantService{
		db:         db,
		tenantRepo: tenantRepo,
		unitRepo:   unitRepo,
		cacheSvc:   cacheSvc,
	}
}

func (s *tenantService) validateWrite(req *TenantWriteRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.Validation("email", "email is required")
	}
	if strings.TrimSpace(req.IDNumber) == "" {
		return apperrors.Validation("id_number", "id number is required")
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return apperrors.Validation("status", "status must be active or inactive")
	}
	return nil
}

// checkUnitAvailable locks the candidate unit row and rejects the write
// when any other tenant already references it. The exclusion of
// excludeID keeps a re-save of an already-assigned tenant from
// conflicting with itself.
func (s *tenantService) checkUnitAvailable(ctx context.Context, tenants repositories.TenantRepository, units repositories.UnitRepository, unitID, excludeID uuid.UUID) error {
	if _, err := units.GetByIDForUpdate(ctx, unitID); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.Validation("unit_id", "unit does not exist")
		}
		return err
	}
	others, err := tenants.CountOthersForUnit(ctx, unitID, excludeID)
	if err != nil {
		return err
	}
	if others > 0 {
		return apperrors.Conflict("unit", "unit already occupied")
	}
	return nil
}

func (s *tenantService) Create(ctx context.Context, actor models.Principal, req *TenantWriteRequest) (*models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if err := s.validateWrite(req); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tenants := s.tenantRepo.WithTx(tx)
	units := s.unitRepo.WithTx(tx)

	tenant := &models.Tenant{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		IDNumber:  req.IDNumber,
		Status:    req.Status,
		UnitID:    req.UnitID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if req.UnitID != nil {
		if err := s.checkUnitAvailable(ctx, tenants, units, *req.UnitID, tenant.ID); err != nil {
			return nil, err
		}
	}

	if err := tenants.Create(ctx, tenant); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("tenant", "email or id number already in use")
		}
		return nil, err
	}

	// Forward side effect: a new reference occupies the unit. There is
	// no prior persisted state, so nothing to vacate.
	if req.UnitID != nil {
		if err := units.UpdateStatus(ctx, *req.UnitID, models.UnitStatusOccupied); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, req.UnitID, nil)
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *TenantWriteRequest) (*models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateWrite(req); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tenants := s.tenantRepo.WithTx(tx)
	units := s.unitRepo.WithTx(tx)

	// Read the prior persisted state under a row lock. The previous unit
	// reference decides the backward side effect, and the lock closes
	// the lost-update window between concurrent writers.
	prev, err := tenants.GetByIDForUpdate(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("tenant")
		}
		return nil, err
	}

	if req.UnitID != nil {
		if err := s.checkUnitAvailable(ctx, tenants, units, *req.UnitID, id); err != nil {
			return nil, err
		}
	}

	tenant := &models.Tenant{
		ID:          id,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
		PhotoObject: prev.PhotoObject,
		Status:      req.Status,
		UnitID:      req.UnitID,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	if err := tenants.Update(ctx, tenant); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("tenant", "email or id number already in use")
		}
		return nil, err
	}

	// Forward side effect: the committed reference occupies its unit.
	if req.UnitID != nil {
		if err := units.UpdateStatus(ctx, *req.UnitID, models.UnitStatusOccupied); err != nil {
			return nil, err
		}
	}

	// Backward side effect: a cleared or replaced reference vacates the
	// previously referenced unit.
	if prev.UnitID != nil && (req.UnitID == nil || *prev.UnitID != *req.UnitID) {
		if err := units.UpdateStatus(ctx, *prev.UnitID, models.UnitStatusVacant); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, req.UnitID, prev.UnitID)
	return tenant, nil
}

// Delete removes the tenant and vacates the unit it referenced.
func (s *tenantService) Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tenants := s.tenantRepo.WithTx(tx)
	units := s.unitRepo.WithTx(tx)

	prev, err := tenants.GetByIDForUpdate(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("tenant")
		}
		return err
	}

	if err := tenants.Delete(ctx, id); err != nil {
		return err
	}
	if prev.UnitID != nil {
		if err := units.UpdateStatus(ctx, *prev.UnitID, models.UnitStatusVacant); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidateCaches(ctx, nil, prev.UnitID)
	return nil
}

func (s *tenantService) GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("tenant")
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Tenant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.tenantRepo.List(ctx, limit, offset)
}

func (s *tenantService) SetPhoto(ctx context.Context, actor models.Principal, id uuid.UUID, photoObject *string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.tenantRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("tenant")
		}
		return err
	}
	return s.tenantRepo.UpdatePhoto(ctx, id, photoObject)
}

func (s *tenantService) invalidateCaches(ctx context.Context, newUnitID, prevUnitID *uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateDashboard(ctx); err != nil {
		log.Printf("WARN: dashboard cache invalidation failed: %v", err)
	}
	for _, unitID := range []*uuid.UUID{newUnitID, prevUnitID} {
		if unitID == nil {
			continue
		}
		if err := s.cacheSvc.DeleteUnit(ctx, *unitID); err != nil {
			log.Printf("WARN: unit cache invalidation failed: %v", err)
		}
	}
}

package services

import (
	"context"
	"log"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/caching"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
)

// UnitService is plain CRUD except for one rule: unit status is derived
// from tenant references, so callers never set it. Creation forces
// vacant and updates preserve whatever the occupancy rule last wrote.
type UnitService interface {
	Create(ctx context.Context, actor models.Principal, req *UnitWriteRequest) (*models.Unit, error)
	Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *UnitWriteRequest) (*models.Unit, error)
	Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error
	GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Unit, error)
	List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Unit, error)
	ListByBuilding(ctx context.Context, actor models.Principal, buildingID uuid.UUID, limit, offset int) ([]*models.Unit, error)
}

type UnitWriteRequest struct {
	BuildingID uuid.UUID `json:"building_id"`
	UnitNumber string    `json:"unit_number"`
	Type       string    `json:"type"`
	RentAmount float64   `json:"rent_amount"`
}

type unitService struct {
	unitRepo     repositories.UnitRepository
	buildingRepo repositories.BuildingRepository
	cacheSvc     caching.CacheService
}

func NewUnitService(unitRepo repositories.UnitRepository, buildingRepo repositories.BuildingRepository, cacheSvc caching.CacheService) UnitService {
	return &unitService{
		unitRepo:     unitRepo,
		buildingRepo: buildingRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *unitService) validate(ctx context.Context, req *UnitWriteRequest) error {
	if req.UnitNumber == "" {
		return apperrors.Validation("unit_number", "unit number is required")
	}
	if !models.ValidUnitType(req.Type) {
		return apperrors.Validation("type", "type must be one of studio, 1BR, 2BR, 3BR")
	}
	if req.RentAmount <= 0 {
		return apperrors.Validation("rent_amount", "rent amount must be positive")
	}
	if _, err := s.buildingRepo.GetByID(ctx, req.BuildingID); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.Validation("building_id", "building does not exist")
		}
		return err
	}
	return nil
}

func (s *unitService) Create(ctx context.Context, actor models.Principal, req *UnitWriteRequest) (*models.Unit, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	unit := &models.Unit{
		ID:         uuid.New(),
		BuildingID: req.BuildingID,
		UnitNumber: req.UnitNumber,
		Type:       req.Type,
		RentAmount: req.RentAmount,
		Status:     models.UnitStatusVacant,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("unit", "unit number already in use")
		}
		return nil, err
	}
	s.invalidate(ctx, unit.ID)
	return unit, nil
}

func (s *unitService) Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *UnitWriteRequest) (*models.Unit, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	prev, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("unit")
		}
		return nil, err
	}

	unit := &models.Unit{
		ID:         id,
		BuildingID: req.BuildingID,
		UnitNumber: req.UnitNumber,
		Type:       req.Type,
		RentAmount: req.RentAmount,
		Status:     prev.Status, // derived, never taken from input
		CreatedAt:  prev.CreatedAt,
		UpdatedAt:  time.Now(),
	}
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("unit", "unit number already in use")
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return unit, nil
}

func (s *unitService) Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.unitRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("unit")
		}
		return err
	}
	// Tenants referencing this unit keep their records; the FK nulls
	// their unit_id.
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *unitService) GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Unit, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetUnit(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("unit")
		}
		return nil, err
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetUnit(ctx, unit, 5*time.Minute); err != nil {
			log.Printf("WARN: unit cache write failed: %v", err)
		}
	}
	return unit, nil
}

func (s *unitService) List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Unit, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.unitRepo.List(ctx, limit, offset)
}

func (s *unitService) ListByBuilding(ctx context.Context, actor models.Principal, buildingID uuid.UUID, limit, offset int) ([]*models.Unit, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.unitRepo.ListByBuilding(ctx, buildingID, limit, offset)
}

func (s *unitService) invalidate(ctx context.Context, unitID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteUnit(ctx, unitID); err != nil {
		log.Printf("WARN: unit cache invalidation failed: %v", err)
	}
	if err := s.cacheSvc.InvalidateDashboard(ctx); err != nil {
		log.Printf("WARN: dashboard cache invalidation failed: %v", err)
	}
}

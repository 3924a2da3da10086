package services

import (
	"context"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
)

type BuildingService interface {
	Create(ctx context.Context, actor models.Principal, req *BuildingWriteRequest) (*models.Building, error)
	Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *BuildingWriteRequest) (*models.Building, error)
	Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error
	GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Building, error)
}

type BuildingWriteRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type buildingService struct {
	buildingRepo repositories.BuildingRepository
}

func NewBuildingService(buildingRepo repositories.BuildingRepository) BuildingService {
	return &buildingService{buildingRepo: buildingRepo}
}

func (s *buildingService) validate(req *BuildingWriteRequest) error {
	if req.Name == "" {
		return apperrors.Validation("name", "name is required")
	}
	if !models.ValidBuildingType(req.Type) {
		return apperrors.Validation("type", "type must be apartment or house")
	}
	return nil
}

func (s *buildingService) Create(ctx context.Context, actor models.Principal, req *BuildingWriteRequest) (*models.Building, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	building := &models.Building{
		ID:          uuid.New(),
		Name:        req.Name,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.buildingRepo.Create(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

func (s *buildingService) Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *BuildingWriteRequest) (*models.Building, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	prev, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("building")
		}
		return nil, err
	}

	building := &models.Building{
		ID:          id,
		Name:        req.Name,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	if err := s.buildingRepo.Update(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

func (s *buildingService) Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.buildingRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("building")
		}
		return err
	}
	return s.buildingRepo.Delete(ctx, id)
}

func (s *buildingService) GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Building, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	building, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("building")
		}
		return nil, err
	}
	return building, nil
}

func (s *buildingService) List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.Building, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.buildingRepo.List(ctx, limit, offset)
}

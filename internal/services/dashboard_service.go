package services

import (
	"context"
	"log"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/caching"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"
)

// DashboardService builds the role-partitioned dashboard views: admins
// see portfolio totals, tenants see only their own record.
type DashboardService interface {
	AdminDashboard(ctx context.Context, actor models.Principal) (*models.AdminDashboard, error)
	TenantDashboard(ctx context.Context, actor models.Principal) (*models.TenantDashboard, error)
}

type dashboardService struct {
	buildingRepo repositories.BuildingRepository
	unitRepo     repositories.UnitRepository
	tenantRepo   repositories.TenantRepository
	paymentRepo  repositories.RentPaymentRepository
	userRepo     repositories.UserRepository
	cacheSvc     caching.CacheService
}

func NewDashboardService(
	buildingRepo repositories.BuildingRepository,
	unitRepo repositories.UnitRepository,
	tenantRepo repositories.TenantRepository,
	paymentRepo repositories.RentPaymentRepository,
	userRepo repositories.UserRepository,
	cacheSvc caching.CacheService,
) DashboardService {
	return &dashboardService{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *dashboardService) AdminDashboard(ctx context.Context, actor models.Principal) (*models.AdminDashboard, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetAdminDashboard(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	buildings, err := s.buildingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.unitRepo.CountByStatus(ctx, models.UnitStatusOccupied)
	if err != nil {
		return nil, err
	}
	vacant, err := s.unitRepo.CountByStatus(ctx, models.UnitStatusVacant)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.paymentRepo.SumUnpaid(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.AdminDashboard{
		Buildings:       buildings,
		Units:           occupied + vacant,
		OccupiedUnits:   occupied,
		VacantUnits:     vacant,
		Tenants:         tenants,
		OutstandingRent: outstanding,
	}
	if summary.Units > 0 {
		summary.OccupancyRate = float64(occupied) / float64(summary.Units) * 100
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetAdminDashboard(ctx, summary, time.Minute); err != nil {
			log.Printf("WARN: dashboard cache write failed: %v", err)
		}
	}
	return summary, nil
}

// TenantDashboard resolves the caller's tenant record by the email on
// their user account.
func (s *dashboardService) TenantDashboard(ctx context.Context, actor models.Principal) (*models.TenantDashboard, error) {
	if err := requireRole(actor, models.RoleTenant); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.Unauthenticated("account no longer exists")
		}
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByUserEmail(ctx, user.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("tenant record")
		}
		return nil, err
	}

	view := &models.TenantDashboard{Tenant: tenant}

	if tenant.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *tenant.UnitID)
		if err != nil && !repositories.IsNotFound(err) {
			return nil, err
		}
		view.Unit = unit
	}

	payments, err := s.paymentRepo.ListByTenant(ctx, tenant.ID, 100, 0)
	if err != nil {
		return nil, err
	}
	view.Payments = payments

	return view, nil
}

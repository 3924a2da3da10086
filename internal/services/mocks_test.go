package services

import (
	"context"
	"time"

	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) Create(ctx context.Context, building *models.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Building), args.Error(1)
}

func (m *MockBuildingRepository) Update(ctx context.Context, building *models.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuildingRepository) List(ctx context.Context, limit, offset int) ([]*models.Building, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Building), args.Error(1)
}

func (m *MockBuildingRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) Update(ctx context.Context, unit *models.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) List(ctx context.Context, limit, offset int) ([]*models.Unit, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit, offset int) ([]*models.Unit, error) {
	args := m.Called(ctx, buildingID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockUnitRepository) WithTx(tx repositories.Database) repositories.UnitRepository {
	return m
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByUserEmail(ctx context.Context, email string) (*models.Tenant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) CountOthersForUnit(ctx context.Context, unitID, excludeID uuid.UUID) (int, error) {
	args := m.Called(ctx, unitID, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoObject *string) error {
	args := m.Called(ctx, id, photoObject)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTenantRepository) WithTx(tx repositories.Database) repositories.TenantRepository {
	return m
}

type MockRentPaymentRepository struct {
	mock.Mock
}

func (m *MockRentPaymentRepository) Create(ctx context.Context, payment *models.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) Update(ctx context.Context, payment *models.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) List(ctx context.Context, limit, offset int) ([]*models.RentPayment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RentPayment, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) ListUnpaid(ctx context.Context, limit, offset int) ([]*models.RentPayment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) SumUnpaid(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRentPaymentRepository) WithTx(tx repositories.Database) repositories.RentPaymentRepository {
	return m
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockCacheService) SetUnit(ctx context.Context, unit *models.Unit, ttl time.Duration) error {
	args := m.Called(ctx, unit, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteUnit(ctx context.Context, unitID uuid.UUID) error {
	args := m.Called(ctx, unitID)
	return args.Error(0)
}

func (m *MockCacheService) GetAdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminDashboard), args.Error(1)
}

func (m *MockCacheService) SetAdminDashboard(ctx context.Context, summary *models.AdminDashboard, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateDashboard(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

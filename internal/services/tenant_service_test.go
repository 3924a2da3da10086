package services

import (
	"context"
	"testing"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	selectUnitForUpdate   = `SELECT id, building_id, unit_number, type, rent_amount, status, created_at, updated_at FROM units WHERE id = \$1 FOR UPDATE`
	selectTenantForUpdate = `SELECT id, name, phone, email, id_number, photo_object, status, unit_id, created_at, updated_at FROM tenants WHERE id = \$1 FOR UPDATE`
	countOthersForUnit    = `SELECT COUNT\(\*\) FROM tenants WHERE unit_id = \$1 AND id <> \$2`
	insertTenant          = `INSERT INTO tenants`
	updateTenant          = `UPDATE tenants`
	deleteTenant          = `DELETE FROM tenants WHERE id = \$1`
	updateUnitStatus      = `UPDATE units SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`
)

type TenantServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service TenantService
	admin   models.Principal
	unitID  uuid.UUID
	ctx     context.Context
}

func (suite *TenantServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewTenantService(mock, repositories.NewTenantRepo(mock), repositories.NewUnitRepo(mock), nil)
	suite.admin = models.Principal{UserID: uuid.New(), Role: models.RoleAdmin}
	suite.unitID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (suite *TenantServiceTestSuite) unitRows(status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "building_id", "unit_number", "type", "rent_amount", "status", "created_at", "updated_at"}).
		AddRow(suite.unitID, uuid.New(), "A-101", models.UnitType1BR, 500.0, status, time.Now(), time.Now())
}

func (suite *TenantServiceTestSuite) tenantRows(id uuid.UUID, unitID *uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "phone", "email", "id_number", "photo_object", "status", "unit_id", "created_at", "updated_at"}).
		AddRow(id, "Jane Doe", "555-0100", "jane@example.com", "ID-1", (*string)(nil), models.StatusActive, unitID, time.Now(), time.Now())
}

func writeRequest(unitID *uuid.UUID) *TenantWriteRequest {
	return &TenantWriteRequest{
		Name:     "Jane Doe",
		Phone:    "555-0100",
		Email:    "jane@example.com",
		IDNumber: "ID-1",
		Status:   models.StatusActive,
		UnitID:   unitID,
	}
}

func (suite *TenantServiceTestSuite) TestCreate_WithUnit_OccupiesUnit() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(suite.unitID).WillReturnRows(suite.unitRows(models.UnitStatusVacant))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(suite.unitID, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(insertTenant).WithArgs(
		pgxmock.AnyArg(), "Jane Doe", "555-0100", "jane@example.com", "ID-1", (*string)(nil), models.StatusActive, &suite.unitID,
	).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusOccupied, suite.unitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Create(suite.ctx, suite.admin, writeRequest(&suite.unitID))
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tenant)
	assert.Equal(suite.T(), &suite.unitID, tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestCreate_UnitAlreadyOccupied_Conflict() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(suite.unitID).WillReturnRows(suite.unitRows(models.UnitStatusOccupied))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(suite.unitID, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectRollback()

	tenant, err := suite.service.Create(suite.ctx, suite.admin, writeRequest(&suite.unitID))
	assert.Nil(suite.T(), tenant)

	var conflictErr *apperrors.ConflictError
	assert.ErrorAs(suite.T(), err, &conflictErr)
	assert.Contains(suite.T(), conflictErr.Message, "already occupied")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestCreate_WithoutUnit_NoSideEffects() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(insertTenant).WithArgs(
		pgxmock.AnyArg(), "Jane Doe", "555-0100", "jane@example.com", "ID-1", (*string)(nil), models.StatusActive, (*uuid.UUID)(nil),
	).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Create(suite.ctx, suite.admin, writeRequest(nil))
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestCreate_DuplicateEmail_Conflict() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(insertTenant).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(uniqueViolation())
	suite.mock.ExpectRollback()

	tenant, err := suite.service.Create(suite.ctx, suite.admin, writeRequest(nil))
	assert.Nil(suite.T(), tenant)

	var conflictErr *apperrors.ConflictError
	assert.ErrorAs(suite.T(), err, &conflictErr)
}

func (suite *TenantServiceTestSuite) TestCreate_TenantRoleDenied() {
	actor := models.Principal{UserID: uuid.New(), Role: models.RoleTenant}

	tenant, err := suite.service.Create(suite.ctx, actor, writeRequest(nil))
	assert.Nil(suite.T(), tenant)

	var authzErr *apperrors.AuthorizationError
	assert.ErrorAs(suite.T(), err, &authzErr)
	// nothing reached the database
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestCreate_MissingName_Validation() {
	req := writeRequest(nil)
	req.Name = ""

	tenant, err := suite.service.Create(suite.ctx, suite.admin, req)
	assert.Nil(suite.T(), tenant)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "name", validationErr.Field)
}

func (suite *TenantServiceTestSuite) TestUpdate_AssignUnit_OccupiesIt() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, nil))
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(suite.unitID).WillReturnRows(suite.unitRows(models.UnitStatusVacant))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(suite.unitID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(updateTenant).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusOccupied, suite.unitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(&suite.unitID))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &suite.unitID, tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestUpdate_ClearUnit_VacatesPrevious() {
	tenantID := uuid.New()
	prevUnit := suite.unitID

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, &prevUnit))
	suite.mock.ExpectExec(updateTenant).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusVacant, prevUnit).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(nil))
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestUpdate_Reassign_OccupiesNewVacatesOld() {
	tenantID := uuid.New()
	prevUnit := uuid.New()
	newUnit := suite.unitID

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, &prevUnit))
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(newUnit).WillReturnRows(suite.unitRows(models.UnitStatusVacant))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(newUnit, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(updateTenant).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusOccupied, newUnit).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusVacant, prevUnit).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(&newUnit))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &newUnit, tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// Re-saving a tenant that keeps its unit must not conflict with itself
// and must not vacate anything.
func (suite *TenantServiceTestSuite) TestUpdate_SameUnit_NoSelfConflict() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, &suite.unitID))
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(suite.unitID).WillReturnRows(suite.unitRows(models.UnitStatusOccupied))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(suite.unitID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(updateTenant).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusOccupied, suite.unitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(&suite.unitID))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &suite.unitID, tenant.UnitID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestUpdate_UnitTaken_ConflictRollsBack() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, nil))
	suite.mock.ExpectQuery(selectUnitForUpdate).WithArgs(suite.unitID).WillReturnRows(suite.unitRows(models.UnitStatusOccupied))
	suite.mock.ExpectQuery(countOthersForUnit).WithArgs(suite.unitID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectRollback()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(&suite.unitID))
	assert.Nil(suite.T(), tenant)

	var conflictErr *apperrors.ConflictError
	assert.ErrorAs(suite.T(), err, &conflictErr)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestUpdate_UnknownTenant_NotFound() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnError(noRowsError())
	suite.mock.ExpectRollback()

	tenant, err := suite.service.Update(suite.ctx, suite.admin, tenantID, writeRequest(nil))
	assert.Nil(suite.T(), tenant)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFoundErr)
}

func (suite *TenantServiceTestSuite) TestDelete_VacatesUnit() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, &suite.unitID))
	suite.mock.ExpectExec(deleteTenant).WithArgs(tenantID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(updateUnitStatus).WithArgs(models.UnitStatusVacant, suite.unitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.Delete(suite.ctx, suite.admin, tenantID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TenantServiceTestSuite) TestDelete_Unassigned_NoUnitWrite() {
	tenantID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(selectTenantForUpdate).WithArgs(tenantID).WillReturnRows(suite.tenantRows(tenantID, nil))
	suite.mock.ExpectExec(deleteTenant).WithArgs(tenantID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.Delete(suite.ctx, suite.admin, tenantID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
)

// RentPaymentService owns the payment consistency rule: every write
// checks the tenant/unit pairing against the tenant's current
// assignment, couples payment_date to status, and stamps or clears the
// receipt number. The check is write-time only; later tenant
// reassignment does not invalidate history.
type RentPaymentService interface {
	Create(ctx context.Context, actor models.Principal, req *PaymentWriteRequest) (*models.RentPayment, error)
	Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *PaymentWriteRequest) (*models.RentPayment, error)
	Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error
	GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.RentPayment, error)
	List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.RentPayment, error)
	ListUnpaid(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.RentPayment, error)
}

type PaymentWriteRequest struct {
	TenantID    uuid.UUID  `json:"tenant_id"`
	UnitID      uuid.UUID  `json:"unit_id"`
	Amount      float64    `json:"amount"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date"`
}

type rentPaymentService struct {
	db          TxBeginner
	paymentRepo repositories.RentPaymentRepository
	tenantRepo  repositories.TenantRepository
}

func NewRentPaymentService(db TxBeginner, paymentRepo repositories.RentPaymentRepository, tenantRepo repositories.TenantRepository) RentPaymentService {
	return &rentPaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
	}
}

func (s *rentPaymentService) validateFields(req *PaymentWriteRequest) error {
	if req.TenantID == uuid.Nil {
		return apperrors.Validation("tenant_id", "tenant is required")
	}
	if req.UnitID == uuid.Nil {
		return apperrors.Validation("unit_id", "unit is required")
	}
	if req.Amount <= 0 {
		return apperrors.Validation("amount", "amount must be positive")
	}
	if req.Month < 1 || req.Month > 12 {
		return apperrors.Validation("month", "month must be between 1 and 12")
	}
	if req.Year < 1900 {
		return apperrors.Validation("year", "year is not plausible")
	}
	if req.Status != models.PaymentStatusPaid && req.Status != models.PaymentStatusUnpaid {
		return apperrors.Validation("status", "status must be paid or unpaid")
	}
	// payment_date is present iff status is paid
	if req.Status == models.PaymentStatusPaid && req.PaymentDate == nil {
		return apperrors.Validation("payment_date", "paid payments require a payment date")
	}
	if req.Status == models.PaymentStatusUnpaid && req.PaymentDate != nil {
		return apperrors.Validation("payment_date", "unpaid payments cannot carry a payment date")
	}
	return nil
}

// validateAssignment checks that the payment's unit matches the
// tenant's current unit. The tenant row is locked so a concurrent
// reassignment cannot slip between the check and the persist.
func (s *rentPaymentService) validateAssignment(ctx context.Context, tenants repositories.TenantRepository, req *PaymentWriteRequest) error {
	tenant, err := tenants.GetByIDForUpdate(ctx, req.TenantID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.Validation("tenant_id", "tenant does not exist")
		}
		return err
	}
	if tenant.UnitID == nil || *tenant.UnitID != req.UnitID {
		return apperrors.Validation("unit_id", "tenant not assigned to this unit")
	}
	return nil
}

// stamp applies the receipt rule: a payment turning paid gets
// REC-{tenantId}-{month}-{year} unless it already carries a receipt,
// and a payment turning unpaid has its receipt cleared.
func stamp(payment *models.RentPayment) {
	switch payment.Status {
	case models.PaymentStatusPaid:
		if payment.ReceiptNumber == "" {
			payment.ReceiptNumber = models.ReceiptNumberFor(payment.TenantID, payment.Month, payment.Year)
		}
	case models.PaymentStatusUnpaid:
		payment.ReceiptNumber = ""
	}
}

func (s *rentPaymentService) Create(ctx context.Context, actor models.Principal, req *PaymentWriteRequest) (*models.RentPayment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payments := s.paymentRepo.WithTx(tx)
	tenants := s.tenantRepo.WithTx(tx)

	if err := s.validateAssignment(ctx, tenants, req); err != nil {
		return nil, err
	}

	payment := &models.RentPayment{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		UnitID:      req.UnitID,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Status:      req.Status,
		PaymentDate: req.PaymentDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	stamp(payment)

	if err := payments.Create(ctx, payment); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("rent_payment", "receipt number already issued for this tenant and month")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *rentPaymentService) Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *PaymentWriteRequest) (*models.RentPayment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payments := s.paymentRepo.WithTx(tx)
	tenants := s.tenantRepo.WithTx(tx)

	prev, err := payments.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("rent payment")
		}
		return nil, err
	}

	if err := s.validateAssignment(ctx, tenants, req); err != nil {
		return nil, err
	}

	payment := &models.RentPayment{
		ID:          id,
		TenantID:    req.TenantID,
		UnitID:      req.UnitID,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Status:      req.Status,
		PaymentDate: req.PaymentDate,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	// Carry the existing receipt so a re-save of a paid payment does not
	// reissue it; stamp still clears it on the paid -> unpaid transition.
	payment.ReceiptNumber = prev.ReceiptNumber
	stamp(payment)

	if err := payments.Update(ctx, payment); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("rent_payment", "receipt number already issued for this tenant and month")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *rentPaymentService) Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("rent payment")
		}
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}

func (s *rentPaymentService) GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.RentPayment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("rent payment")
		}
		return nil, err
	}
	return payment, nil
}

func (s *rentPaymentService) List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.RentPayment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.paymentRepo.List(ctx, limit, offset)
}

func (s *rentPaymentService) ListUnpaid(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.RentPayment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListUnpaid(ctx, limit, offset)
}

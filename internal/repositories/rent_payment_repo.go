package repositories

import (
	"context"

	"rentdesk/internal/models"

	"github.com/google/uuid"
)

type RentPaymentRepository interface {
	Create(ctx context.Context, payment *models.RentPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error)
	Update(ctx context.Context, payment *models.RentPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.RentPayment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RentPayment, error)
	ListUnpaid(ctx context.Context, limit, offset int) ([]*models.RentPayment, error)
	SumUnpaid(ctx context.Context) (float64, error)
	WithTx(tx Database) RentPaymentRepository
}

type rentPaymentRepo struct {
	db Database
}

func NewRentPaymentRepo(db Database) RentPaymentRepository {
	return &rentPaymentRepo{db: db}
}

func (r *rentPaymentRepo) WithTx(tx Database) RentPaymentRepository {
	return &rentPaymentRepo{db: tx}
}

const paymentColumns = `id, tenant_id, unit_id, amount, month, year, status, payment_date, receipt_number, created_at, updated_at`

func (r *rentPaymentRepo) scanOne(row interface{ Scan(dest ...any) error }) (*models.RentPayment, error) {
	payment := &models.RentPayment{}
	err := row.Scan(&payment.ID, &payment.TenantID, &payment.UnitID, &payment.Amount, &payment.Month, &payment.Year, &payment.Status, &payment.PaymentDate, &payment.ReceiptNumber, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *rentPaymentRepo) Create(ctx context.Context, payment *models.RentPayment) error {
	query := `
		INSERT INTO rent_payments (id, tenant_id, unit_id, amount, month, year, status, payment_date, receipt_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.TenantID, payment.UnitID, payment.Amount, payment.Month, payment.Year, payment.Status, payment.PaymentDate, payment.ReceiptNumber)
	return err
}

func (r *rentPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *rentPaymentRepo) Update(ctx context.Context, payment *models.RentPayment) error {
	query := `
		UPDATE rent_payments
		SET tenant_id = $1, unit_id = $2, amount = $3, month = $4, year = $5, status = $6, payment_date = $7, receipt_number = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, payment.TenantID, payment.UnitID, payment.Amount, payment.Month, payment.Year, payment.Status, payment.PaymentDate, payment.ReceiptNumber, payment.ID)
	return err
}

func (r *rentPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rent_payments WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *rentPaymentRepo) list(ctx context.Context, query string, args ...any) ([]*models.RentPayment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		payment, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *rentPaymentRepo) List(ctx context.Context, limit, offset int) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments ORDER BY year DESC, month DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *rentPaymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE tenant_id = $1 ORDER BY year DESC, month DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

func (r *rentPaymentRepo) ListUnpaid(ctx context.Context, limit, offset int) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE status = 'unpaid' ORDER BY year DESC, month DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *rentPaymentRepo) SumUnpaid(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM rent_payments WHERE status = 'unpaid'`).Scan(&total)
	return total, err
}

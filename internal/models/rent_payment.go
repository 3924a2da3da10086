package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RentPayment status constants
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// RentPayment records one month of rent for a tenant/unit pair. The unit
// is denormalized and checked against the tenant's current unit at write
// time only; reassigning the tenant later does not invalidate history.
type RentPayment struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	UnitID        uuid.UUID  `json:"unit_id" db:"unit_id"`
	Amount        float64    `json:"amount" db:"amount"`
	Month         int        `json:"month" db:"month"`
	Year          int        `json:"year" db:"year"`
	Status        string     `json:"status" db:"status"`
	PaymentDate   *time.Time `json:"payment_date" db:"payment_date"`
	ReceiptNumber string     `json:"receipt_number" db:"receipt_number"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// ReceiptNumberFor builds the receipt identifier stamped on a payment
// when it transitions to paid. The database's unique index on
// receipt_number is the authoritative guard against re-entry collisions.
func ReceiptNumberFor(tenantID uuid.UUID, month, year int) string {
	return fmt.Sprintf("REC-%s-%d-%d", tenantID, month, year)
}

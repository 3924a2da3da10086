package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a renter. UnitID is nullable: a tenant may exist without a
// unit, and deleting a unit nulls the reference rather than deleting the
// tenant (ON DELETE SET NULL in schema.sql). At most one tenant may
// reference a given unit at a time; the occupancy rule in
// services.TenantService enforces that on every write.
type Tenant struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Phone       string     `json:"phone" db:"phone"`
	Email       string     `json:"email" db:"email"`
	IDNumber    string     `json:"id_number" db:"id_number"`
	PhotoObject *string    `json:"photo_object,omitempty" db:"photo_object"`
	Status      string     `json:"status" db:"status"`
	UnitID      *uuid.UUID `json:"unit_id" db:"unit_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for users
const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

// Status constants shared by users and tenants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Principal identifies the authenticated caller of a gated operation.
// Service methods take it explicitly instead of reading ambient session
// state, so the access policy is visible in every signature.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit type constants
const (
	UnitTypeStudio = "studio"
	UnitType1BR    = "1BR"
	UnitType2BR    = "2BR"
	UnitType3BR    = "3BR"
)

// Unit status constants. Status is derived from tenant references and is
// never accepted from request input.
const (
	UnitStatusVacant   = "vacant"
	UnitStatusOccupied = "occupied"
)

type Unit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BuildingID uuid.UUID `json:"building_id" db:"building_id"`
	UnitNumber string    `json:"unit_number" db:"unit_number"`
	Type       string    `json:"type" db:"type"`
	RentAmount float64   `json:"rent_amount" db:"rent_amount"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func ValidUnitType(t string) bool {
	switch t {
	case UnitTypeStudio, UnitType1BR, UnitType2BR, UnitType3BR:
		return true
	}
	return false
}

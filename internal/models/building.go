package models

import (
	"time"

	"github.com/google/uuid"
)

// Building type constants
const (
	BuildingTypeApartment = "apartment"
	BuildingTypeHouse     = "house"
)

// Building owns zero or more units. Deleting a building deletes its
// units (ON DELETE CASCADE in schema.sql).
type Building struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Type        string    `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func ValidBuildingType(t string) bool {
	return t == BuildingTypeApartment || t == BuildingTypeHouse
}

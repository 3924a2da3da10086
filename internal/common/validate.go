package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidateUUID validates UUID path or payload parameters.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// SafeString safely dereferences optional string fields.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidatePaginationParams clamps pagination parameters to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

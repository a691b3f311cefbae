package resource

import (
	"github.com/google/uuid"
)

// MasterTenantID identifies the master tenant, whose users administer the
// whole platform.
var MasterTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// ParseOptionalID parses an identifier, returning nil for an empty string.
func ParseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// EqualIDs reports whether a nullable identifier equals id.
func EqualIDs(a *uuid.UUID, b uuid.UUID) bool {
	return a != nil && *a == b
}

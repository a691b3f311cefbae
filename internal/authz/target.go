package authz

import (
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// target is the record against which a ladder is evaluated.
type target struct {
	Kind           resource.Kind
	ID             uuid.UUID
	TenantID       uuid.UUID
	OrganisationID *uuid.UUID
	OwnerUserID    *uuid.UUID
	CustomerID     *uuid.UUID
	ProductID      *uuid.UUID
}

// targetOf constructs a target from a record summary. A customer record
// belongs to itself, so its customer ID defaults to its own ID.
func targetOf(s *resource.Summary) target {
	t := target{
		Kind:           s.Kind,
		ID:             s.ID,
		TenantID:       s.TenantID,
		OrganisationID: s.OrganisationID,
		OwnerUserID:    s.OwnerUserID,
		CustomerID:     s.CustomerID,
		ProductID:      s.ProductID,
	}
	if s.Kind == resource.CustomerKind && t.CustomerID == nil {
		t.CustomerID = &s.ID
	}
	return t
}

package authz

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// checkLadder evaluates the tiers of a ladder from strongest to weakest; the
// first tier the subject holds decides the outcome:
//
//  1. Tenant: the subject must be from the tenant's default organisation (or
//     be granted tenant visibility for the record's product), and be in the
//     record's tenant or the master tenant.
//  2. Organisation: the record must belong to the subject's organisation, or
//     to no organisation in the subject's tenant, or be owned by the subject.
//     A tenant tier permission held without the default organisation also
//     qualifies here.
//  3. Ownership: a client user must own the record; a customer user must be
//     the record's customer.
//
// A subject holding none of the tiers is denied.
func (a *Authorizer) checkLadder(ctx context.Context, subj *Principal, ladder rbac.Ladder, t target) error {
	hasTenant, err := a.holds(ctx, subj, ladder.Tenant)
	if err != nil {
		return err
	}
	if hasTenant {
		tenantWide, err := a.tenantWide(ctx, subj, t.ProductID)
		if err != nil {
			return err
		}
		if tenantWide {
			if subj.SameTenant(t.TenantID) {
				return nil
			}
			return &internal.AuthorizationError{
				Code:       internal.CodePermissionRequired,
				Message:    fmt.Sprintf("you cannot access %s %s", t.Kind, t.ID),
				Kind:       t.Kind.String(),
				ID:         t.ID.String(),
				Permission: ladder.Tenant.Name(),
				Reason:     "you must be in the same tenant",
			}
		}
	}

	hasOrganisation, err := a.holds(ctx, subj, ladder.Organisation)
	if err != nil {
		return err
	}
	if hasOrganisation || hasTenant {
		held := ladder.Organisation
		if !hasOrganisation {
			held = ladder.Tenant
		}
		if t.OrganisationID == nil && subj.SameTenant(t.TenantID) {
			return nil
		}
		if resource.EqualIDs(t.OrganisationID, subj.OrganisationID) {
			return nil
		}
		// a stronger tier never revokes what ownership would permit
		if owns(subj, t) {
			return nil
		}
		// only offer the tenant tier as an escalation path if the subject
		// does not hold it already
		var alternative string
		if !hasTenant && ladder.Tenant != rbac.NoPermission {
			alternative = ladder.Tenant.Name()
		}
		return &internal.AuthorizationError{
			Code:        internal.CodePermissionRequired,
			Message:     fmt.Sprintf("you cannot access %s %s", t.Kind, t.ID),
			Kind:        t.Kind.String(),
			ID:          t.ID.String(),
			Permission:  held.Name(),
			Alternative: alternative,
			Reason:      "you must be in the same organisation",
		}
	}

	hasOwnership, err := a.holds(ctx, subj, ladder.Ownership)
	if err != nil {
		return err
	}
	if hasOwnership && owns(subj, t) {
		return nil
	}

	return &internal.AuthorizationError{
		Code:       internal.CodeAccessNotPermitted,
		Message:    fmt.Sprintf("you don't have permission to access %s %s, or you don't own it", t.Kind, t.ID),
		Kind:       t.Kind.String(),
		ID:         t.ID.String(),
		Permission: ladder.Ownership.Name(),
	}
}

// owns reports whether the subject owns the target: a client user must be
// the record's owner, and a customer user must be the record's customer.
func owns(subj *Principal, t target) bool {
	if !subj.SameTenant(t.TenantID) {
		return false
	}
	switch subj.UserType {
	case resource.ClientUser:
		return resource.EqualIDs(t.OwnerUserID, subj.UserID)
	case resource.CustomerUser:
		return subj.CustomerID != nil && resource.EqualIDs(t.CustomerID, *subj.CustomerID)
	default:
		return false
	}
}

// holds reports whether the subject holds the permission. An unavailable
// tier is never held.
func (a *Authorizer) holds(ctx context.Context, subj *Principal, perm rbac.Permission) (bool, error) {
	if perm == rbac.NoPermission {
		return false, nil
	}
	return a.Permissions.HasPermission(ctx, subj, perm)
}

// tenantWide reports whether a tenant tier permission held by the subject
// extends across the tenant: the subject must be from the default
// organisation, or be granted tenant visibility for the product.
func (a *Authorizer) tenantWide(ctx context.Context, subj *Principal, productID *uuid.UUID) (bool, error) {
	if a.TenantVisibility.GrantsTenantVisibility(subj, productID) {
		return true, nil
	}
	return a.Organisations.IsDefaultOrganisation(ctx, subj.TenantID, subj.OrganisationID)
}

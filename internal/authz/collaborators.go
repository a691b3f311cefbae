package authz

import (
	"context"

	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

type (
	// PermissionChecker determines whether a principal holds permissions.
	PermissionChecker interface {
		HasPermission(ctx context.Context, subj *Principal, perm rbac.Permission) (bool, error)
		HasAnyPermission(ctx context.Context, subj *Principal, perms ...rbac.Permission) (bool, error)
	}

	// RecordFetcher retrieves record summaries. Implementations return
	// internal.ErrResourceNotFound if the record does not exist for the
	// tenant.
	RecordFetcher interface {
		GetSummary(ctx context.Context, kind resource.Kind, tenantID, id uuid.UUID) (*resource.Summary, error)
		GetEmail(ctx context.Context, tenantID, id uuid.UUID) (*resource.EmailSummary, error)
	}

	// OrganisationQuerier answers questions about a tenant's organisation
	// hierarchy.
	OrganisationQuerier interface {
		IsDefaultOrganisation(ctx context.Context, tenantID, organisationID uuid.UUID) (bool, error)
		DefaultOrganisationID(ctx context.Context, tenantID uuid.UUID) (uuid.UUID, error)
		ManagedOrganisationIDs(ctx context.Context, tenantID, organisationID uuid.UUID) ([]uuid.UUID, error)
	}

	// TenantVisibility grants a principal visibility of records across its
	// tenant for a product, regardless of whether the principal belongs to
	// the tenant's default organisation.
	TenantVisibility interface {
		GrantsTenantVisibility(subj *Principal, productID *uuid.UUID) bool
	}
)

// GrantedPermissions is a PermissionChecker that consults the permissions
// granted to the principal by the authentication layer.
type GrantedPermissions struct{}

func (GrantedPermissions) HasPermission(_ context.Context, subj *Principal, perm rbac.Permission) (bool, error) {
	return subj.HasPermission(perm), nil
}

func (GrantedPermissions) HasAnyPermission(_ context.Context, subj *Principal, perms ...rbac.Permission) (bool, error) {
	for _, perm := range perms {
		if subj.HasPermission(perm) {
			return true, nil
		}
	}
	return false, nil
}

// NoTenantVisibility never grants additional visibility.
type NoTenantVisibility struct{}

func (NoTenantVisibility) GrantsTenantVisibility(*Principal, *uuid.UUID) bool { return false }

package authz

import (
	"fmt"
	"log/slog"

	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// Principal is the identity on whose behalf an action is carried out. It is
// constructed by the authentication layer and is immutable for the duration
// of a request.
type Principal struct {
	TenantID       uuid.UUID
	OrganisationID uuid.UUID
	UserID         uuid.UUID
	UserType       resource.UserType
	// CustomerID is set for customer users only.
	CustomerID *uuid.UUID

	permissions map[rbac.Permission]struct{}
}

// NewPrincipal constructs a principal with the given permissions.
func NewPrincipal(tenantID, organisationID, userID uuid.UUID, userType resource.UserType, customerID *uuid.UUID, perms ...rbac.Permission) *Principal {
	p := &Principal{
		TenantID:       tenantID,
		OrganisationID: organisationID,
		UserID:         userID,
		UserType:       userType,
		CustomerID:     customerID,
		permissions:    make(map[rbac.Permission]struct{}, len(perms)),
	}
	for _, perm := range perms {
		p.permissions[perm] = struct{}{}
	}
	return p
}

// HasPermission reports whether the permission was granted to the principal.
func (p *Principal) HasPermission(perm rbac.Permission) bool {
	_, ok := p.permissions[perm]
	return ok
}

// Permissions returns the permissions granted to the principal.
func (p *Principal) Permissions() []rbac.Permission {
	perms := make([]rbac.Permission, 0, len(p.permissions))
	for _, perm := range rbac.AllPermissions() {
		if p.HasPermission(perm) {
			perms = append(perms, perm)
		}
	}
	return perms
}

// IsMaster reports whether the principal belongs to the master tenant.
func (p *Principal) IsMaster() bool {
	return p.TenantID == resource.MasterTenantID
}

// IsCustomer reports whether the principal is a customer user.
func (p *Principal) IsCustomer() bool {
	return p.UserType == resource.CustomerUser
}

// SameTenant reports whether the principal may act within the given tenant
// by virtue of tenancy alone: either it belongs to the tenant or it is a
// master tenant principal.
func (p *Principal) SameTenant(tenantID uuid.UUID) bool {
	return p.TenantID == tenantID || p.IsMaster()
}

func (p *Principal) String() string {
	return fmt.Sprintf("%s:%s", p.UserType, p.UserID)
}

func (p *Principal) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user_id", p.UserID.String()),
		slog.String("user_type", string(p.UserType)),
		slog.String("tenant_id", p.TenantID.String()),
		slog.String("organisation_id", p.OrganisationID.String()),
	)
}

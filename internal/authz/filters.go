package authz

import (
	"context"
	"fmt"
	"slices"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// Filters constrains a list query to a subset of records. A nil or empty
// field does not constrain the query.
type Filters struct {
	TenantID        *uuid.UUID             `yaml:"tenant,omitempty"`
	OrganisationIDs []uuid.UUID            `yaml:"organisations,omitempty"`
	OwnerUserID     *uuid.UUID             `yaml:"owner,omitempty"`
	CustomerID      *uuid.UUID             `yaml:"customer,omitempty"`
	ProductIDs      []uuid.UUID            `yaml:"products,omitempty"`
	Environments    []resource.Environment `yaml:"environments,omitempty"`
	IncludeTestData bool                   `yaml:"include_test_data,omitempty"`
}

// Clone returns a deep copy of the filters.
func (f Filters) Clone() Filters {
	f.OrganisationIDs = slices.Clone(f.OrganisationIDs)
	f.ProductIDs = slices.Clone(f.ProductIDs)
	f.Environments = slices.Clone(f.Environments)
	if f.TenantID != nil {
		f.TenantID = internal.Ptr(*f.TenantID)
	}
	if f.OwnerUserID != nil {
		f.OwnerUserID = internal.Ptr(*f.OwnerUserID)
	}
	if f.CustomerID != nil {
		f.CustomerID = internal.Ptr(*f.CustomerID)
	}
	return f
}

// Matches reports whether a record falls within the filters.
func (f Filters) Matches(s *resource.Summary) bool {
	if f.TenantID != nil && *f.TenantID != s.TenantID {
		return false
	}
	if len(f.OrganisationIDs) > 0 && (s.OrganisationID == nil || !slices.Contains(f.OrganisationIDs, *s.OrganisationID)) {
		return false
	}
	if f.OwnerUserID != nil && !resource.EqualIDs(s.OwnerUserID, *f.OwnerUserID) {
		return false
	}
	if f.CustomerID != nil && !resource.EqualIDs(targetOf(s).CustomerID, *f.CustomerID) {
		return false
	}
	if len(f.ProductIDs) > 0 && (s.ProductID == nil || !slices.Contains(f.ProductIDs, *s.ProductID)) {
		return false
	}
	if len(f.Environments) > 0 && !slices.Contains(f.Environments, s.Environment) {
		return false
	}
	return true
}

// RestrictFilters narrows the filters so that a list query for records of
// the given kind returns only those records the subject may view. The
// filters passed in are left unmodified.
func (a *Authorizer) RestrictFilters(ctx context.Context, kind resource.Kind, f Filters) (Filters, error) {
	subj, err := SubjectFromContext(ctx)
	if err != nil {
		return Filters{}, err
	}
	family, ok := rbac.FamilyOf(kind)
	if !ok {
		return Filters{}, internal.InvalidOperation("no authorization is defined for resource kind %q", kind)
	}
	if family.Parent != "" {
		family, _ = rbac.FamilyOf(family.Parent)
	}
	restricted, err := a.restrictFilters(ctx, subj, family.View, f)
	if err != nil {
		return Filters{}, err
	}
	if family.Environment {
		restricted.Environments, err = a.restrictEnvironments(ctx, subj, restricted.Environments)
		if err != nil {
			return Filters{}, err
		}
	}
	if family.Kind == resource.CustomerKind {
		restricted, err = a.restrictCustomerFilters(ctx, subj, restricted)
		if err != nil {
			return Filters{}, err
		}
	}
	return restricted, nil
}

// restrictFilters narrows the filters according to the tiers of the
// ladder held by the subject:
//
//   - tenant tier, from the default organisation: the filters are left open
//     across the tenant.
//   - organisation tier: the filters are pinned to the subject's organisation.
//   - ownership tier: the filters are pinned to the subject's own records, or
//     for a customer, to the customer's records.
//
// The subject is denied if it holds none of the tiers, or if the filters
// already constrain the query to records outside of the subject's reach.
func (a *Authorizer) restrictFilters(ctx context.Context, subj *Principal, ladder rbac.Ladder, f Filters) (Filters, error) {
	f = f.Clone()

	if !subj.IsMaster() {
		if f.TenantID != nil && *f.TenantID != subj.TenantID {
			return Filters{}, a.authorizeTenant(subj, *f.TenantID)
		}
		f.TenantID = internal.Ptr(subj.TenantID)
	}

	hasTenant, err := a.holds(ctx, subj, ladder.Tenant)
	if err != nil {
		return Filters{}, err
	}
	if hasTenant {
		tenantWide, err := a.tenantWideForProducts(ctx, subj, f.ProductIDs)
		if err != nil {
			return Filters{}, err
		}
		if tenantWide {
			return f, nil
		}
	}

	hasOrganisation, err := a.holds(ctx, subj, ladder.Organisation)
	if err != nil {
		return Filters{}, err
	}
	if hasOrganisation || hasTenant {
		if len(f.OrganisationIDs) == 0 {
			f.OrganisationIDs = []uuid.UUID{subj.OrganisationID}
			return f, nil
		}
		if !slices.Contains(f.OrganisationIDs, subj.OrganisationID) {
			held := ladder.Organisation
			if !hasOrganisation {
				held = ladder.Tenant
			}
			var alternative string
			if !hasTenant && ladder.Tenant != rbac.NoPermission {
				alternative = ladder.Tenant.Name()
			}
			return Filters{}, &internal.AuthorizationError{
				Code:        internal.CodePermissionRequired,
				Message:     "you cannot list records from other organisations",
				Permission:  held.Name(),
				Alternative: alternative,
				Reason:      "you must be in the same organisation",
			}
		}
		f.OrganisationIDs = []uuid.UUID{subj.OrganisationID}
		return f, nil
	}

	hasOwnership, err := a.holds(ctx, subj, ladder.Ownership)
	if err != nil {
		return Filters{}, err
	}
	if hasOwnership {
		switch subj.UserType {
		case resource.ClientUser:
			if f.OwnerUserID != nil && *f.OwnerUserID != subj.UserID {
				return Filters{}, internal.NotPermitted("you cannot list records owned by other users")
			}
			f.OwnerUserID = internal.Ptr(subj.UserID)
			return f, nil
		case resource.CustomerUser:
			if subj.CustomerID == nil {
				return Filters{}, internal.NotPermitted("you are not associated with a customer")
			}
			if f.CustomerID != nil && *f.CustomerID != *subj.CustomerID {
				return Filters{}, internal.NotPermitted("you cannot list records belonging to other customers")
			}
			f.CustomerID = internal.Ptr(*subj.CustomerID)
			return f, nil
		}
	}

	return Filters{}, &internal.AuthorizationError{
		Code:       internal.CodeAccessNotPermitted,
		Message:    "you don't have permission to list these records",
		Permission: ladder.Ownership.Name(),
	}
}

// tenantWideForProducts reports whether a tenant tier permission held by the
// subject extends across the tenant for every product in a list query. With
// no products named, the tenant visibility predicate is consulted without a
// product.
func (a *Authorizer) tenantWideForProducts(ctx context.Context, subj *Principal, productIDs []uuid.UUID) (bool, error) {
	if len(productIDs) == 0 {
		return a.tenantWide(ctx, subj, nil)
	}
	granted := true
	for _, id := range productIDs {
		if !a.TenantVisibility.GrantsTenantVisibility(subj, &id) {
			granted = false
			break
		}
	}
	if granted {
		return true, nil
	}
	return a.Organisations.IsDefaultOrganisation(ctx, subj.TenantID, subj.OrganisationID)
}

// restrictEnvironments narrows the environments of a list query to those the
// subject may access. With no environments named, the query is pinned to
// every accessible environment.
func (a *Authorizer) restrictEnvironments(ctx context.Context, subj *Principal, envs []resource.Environment) ([]resource.Environment, error) {
	if len(envs) > 0 {
		for _, env := range envs {
			if err := a.authorizeEnvironment(ctx, subj, env); err != nil {
				return nil, err
			}
		}
		return envs, nil
	}
	accessible := []resource.Environment{resource.NoEnvironment}
	for _, env := range []resource.Environment{resource.Development, resource.Staging, resource.Production} {
		ok, err := a.Permissions.HasPermission(ctx, subj, rbac.EnvironmentPermission(env))
		if err != nil {
			return nil, err
		}
		if ok {
			accessible = append(accessible, env)
		}
	}
	return accessible, nil
}

// restrictCustomerFilters applies the customer ownership rule to a list of
// customers: a subject without an elevated customer permission sees only the
// customers it owns.
func (a *Authorizer) restrictCustomerFilters(ctx context.Context, subj *Principal, f Filters) (Filters, error) {
	elevated, err := a.Permissions.HasAnyPermission(ctx, subj, rbac.ElevatedCustomerPermissions...)
	if err != nil {
		return Filters{}, err
	}
	if elevated {
		return f, nil
	}
	switch subj.UserType {
	case resource.ClientUser:
		if f.OwnerUserID != nil && *f.OwnerUserID != subj.UserID {
			return Filters{}, internal.NotPermitted("you cannot list customers owned by other users")
		}
		f.OwnerUserID = internal.Ptr(subj.UserID)
	case resource.CustomerUser:
		if subj.CustomerID == nil {
			return Filters{}, internal.NotPermitted("you are not associated with a customer")
		}
		f.CustomerID = internal.Ptr(*subj.CustomerID)
	default:
		return Filters{}, internal.NotPermitted(fmt.Sprintf("you cannot list customers as a %s user", subj.UserType))
	}
	return f, nil
}

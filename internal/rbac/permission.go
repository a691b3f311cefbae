package rbac

import (
	"fmt"

	"github.com/covercore/covercore/internal/resource"
	"github.com/iancoleman/strcase"
)

// Permission is a capability granted to a principal through its roles.
//
//go:generate stringer -type Permission
type Permission int

// NoPermission marks a ladder tier that is not available for a family.
const NoPermission Permission = 0

const (
	ViewQuotes Permission = iota + 1
	ViewAllQuotes
	ViewAllQuotesFromAllOrganisations
	ManageQuotes
	ManageAllQuotes
	ManageAllQuotesForAllOrganisations

	ViewPolicies
	ViewAllPolicies
	ViewAllPoliciesFromAllOrganisations
	ManagePolicies
	ManageAllPolicies
	ManageAllPoliciesForAllOrganisations

	ViewClaims
	ViewAllClaims
	ViewAllClaimsFromAllOrganisations
	ManageClaims
	ManageAllClaims
	ManageAllClaimsForAllOrganisations

	ViewCustomers
	ViewAllCustomers
	ViewAllCustomersFromAllOrganisations
	ManageCustomers
	ManageAllCustomers
	ManageAllCustomersForAllOrganisations

	ViewMessages
	ViewAllMessages
	ViewAllMessagesFromAllOrganisations
	ManageMessages
	ManageAllMessages
	ManageAllMessagesForAllOrganisations

	ViewAccountingTransactions
	ViewAllAccountingTransactions
	ViewAllAccountingTransactionsFromAllOrganisations
	ManageAccountingTransactions
	ManageAllAccountingTransactions
	ManageAllAccountingTransactionsForAllOrganisations

	ViewProducts
	ManageProducts

	ViewPortals
	ViewAllPortals
	ManagePortals
	ManageAllPortals

	ViewTenants
	ManageTenants

	ViewReports
	ViewAllReports
	ManageReports
	ManageAllReports
	GenerateReports

	ViewOrganisations
	ViewAllOrganisations
	ManageOrganisations
	ManageAllOrganisations

	ViewUsers
	ViewUsersFromOtherOrganisations
	ManageUsers
	ManageUsersForOtherOrganisations
	ManageTenantAdminUsers
	ManageOrganisationAdminUsers

	ViewRoles
	ViewRolesFromAllOrganisations
	ManageRoles
	ManageRolesForAllOrganisations

	AccessDevelopmentData
	AccessStagingData
	AccessProductionData
)

// permissionsByName indexes permissions by their camel case name.
var permissionsByName = func() map[string]Permission {
	m := make(map[string]Permission, AccessProductionData)
	for p := ViewQuotes; p <= AccessProductionData; p++ {
		m[p.String()] = p
	}
	return m
}()

// Name returns the snake case form of the permission, e.g. view_all_quotes,
// which is the form used in config files, the database and on the command
// line. String returns the camel case form.
func (p Permission) Name() string {
	if p == NoPermission {
		return "no_permission"
	}
	return strcase.ToSnake(p.String())
}

// ParsePermission parses either the snake case or the camel case form of a
// permission.
func ParsePermission(s string) (Permission, error) {
	if p, ok := permissionsByName[strcase.ToCamel(s)]; ok {
		return p, nil
	}
	return NoPermission, fmt.Errorf("unknown permission: %q", s)
}

func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.Name()), nil
}

func (p *Permission) UnmarshalText(text []byte) error {
	perm, err := ParsePermission(string(text))
	if err != nil {
		return err
	}
	*p = perm
	return nil
}

// AllPermissions returns every known permission in declaration order.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, AccessProductionData)
	for p := ViewQuotes; p <= AccessProductionData; p++ {
		perms = append(perms, p)
	}
	return perms
}

// EnvironmentPermission returns the permission required to access data in
// the given environment. NoPermission is returned for records that are not
// bound to an environment.
func EnvironmentPermission(env resource.Environment) Permission {
	switch env {
	case resource.Development:
		return AccessDevelopmentData
	case resource.Staging:
		return AccessStagingData
	case resource.Production:
		return AccessProductionData
	default:
		return NoPermission
	}
}

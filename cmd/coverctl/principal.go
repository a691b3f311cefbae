package main

import (
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// principalFlags describe the principal on whose behalf a check is made.
type principalFlags struct {
	tenant       string
	organisation string
	user         string
	userType     string
	customer     string
	permissions  []string
}

func (f *principalFlags) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.tenant, "tenant", "", "Tenant ID of the principal")
	flags.StringVar(&f.organisation, "organisation", "", "Organisation ID of the principal")
	flags.StringVar(&f.user, "user", "", "User ID of the principal")
	flags.StringVar(&f.userType, "user-type", string(resource.ClientUser), "User type of the principal: master, client or customer")
	flags.StringVar(&f.customer, "customer", "", "Customer ID of a customer principal")
	flags.StringSliceVar(&f.permissions, "permission", nil, "Permission granted to the principal, e.g. view_all_quotes. May be repeated.")
}

func (f *principalFlags) principal() (*authz.Principal, error) {
	if f.tenant == "" {
		return nil, &internal.MissingParameterError{Parameter: "tenant"}
	}
	tenantID, err := uuid.Parse(f.tenant)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant: %w", err)
	}
	organisationID, err := parseOptionalID("organisation", f.organisation)
	if err != nil {
		return nil, err
	}
	userID, err := parseOptionalID("user", f.user)
	if err != nil {
		return nil, err
	}
	customerID, err := resource.ParseOptionalID(f.customer)
	if err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}
	userType := resource.UserType(f.userType)
	switch userType {
	case resource.MasterUser, resource.ClientUser, resource.CustomerUser:
	default:
		return nil, fmt.Errorf("invalid user type: %q", f.userType)
	}
	perms := make([]rbac.Permission, len(f.permissions))
	for i, s := range f.permissions {
		if perms[i], err = rbac.ParsePermission(s); err != nil {
			return nil, err
		}
	}
	return authz.NewPrincipal(tenantID, organisationID, userID, userType, customerID, perms...), nil
}

func parseOptionalID(name, s string) (uuid.UUID, error) {
	id, err := resource.ParseOptionalID(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return internal.Deref(id), nil
}

package authz

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/google/uuid"
)

// AuthorizeTenant determines whether the subject may act within the tenant:
// it must belong to the tenant or to the master tenant.
func (a *Authorizer) AuthorizeTenant(ctx context.Context, tenantID uuid.UUID) error {
	subj, err := SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	return a.authorizeTenant(subj, tenantID)
}

func (a *Authorizer) authorizeTenant(subj *Principal, tenantID uuid.UUID) error {
	if subj.SameTenant(tenantID) {
		return nil
	}
	return &internal.AuthorizationError{
		Code:    internal.CodeAccessNotPermitted,
		Message: fmt.Sprintf("you cannot access tenant %s", tenantID),
		Kind:    "tenant",
		ID:      tenantID.String(),
		Reason:  "you must be in the same tenant",
	}
}

// AuthorizeMasterTenant determines whether the subject belongs to the master
// tenant.
func (a *Authorizer) AuthorizeMasterTenant(ctx context.Context) error {
	subj, err := SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	if !subj.IsMaster() {
		return internal.NotPermitted("only users from the master tenant may perform this action")
	}
	return nil
}

package authz

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
)

// checkCustomerOwnership is applied on top of the ladder when viewing a
// customer: unless the subject holds an elevated customer permission it must
// own the customer record.
func (a *Authorizer) checkCustomerOwnership(ctx context.Context, subj *Principal, t target) error {
	elevated, err := a.Permissions.HasAnyPermission(ctx, subj, rbac.ElevatedCustomerPermissions...)
	if err != nil {
		return err
	}
	if elevated || owns(subj, t) {
		return nil
	}
	return &internal.AuthorizationError{
		Code:        internal.CodePermissionRequired,
		Message:     fmt.Sprintf("you cannot view customer %s", t.ID),
		Kind:        t.Kind.String(),
		ID:          t.ID.String(),
		Permission:  rbac.ViewCustomers.Name(),
		Alternative: rbac.ViewAllCustomers.Name(),
		Reason:      "you must own the customer",
	}
}

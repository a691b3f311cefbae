package authz

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
)

// AuthorizeEnvironment determines whether the subject may access data
// belonging to the deployment environment. Data belonging to no environment
// is always accessible.
func (a *Authorizer) AuthorizeEnvironment(ctx context.Context, env resource.Environment) error {
	subj, err := SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	return a.authorizeEnvironment(ctx, subj, env)
}

func (a *Authorizer) authorizeEnvironment(ctx context.Context, subj *Principal, env resource.Environment) error {
	perm := rbac.EnvironmentPermission(env)
	if perm == rbac.NoPermission {
		return nil
	}
	ok, err := a.Permissions.HasPermission(ctx, subj, perm)
	if err != nil {
		return err
	}
	if !ok {
		return &internal.AuthorizationError{
			Code:       internal.CodePermissionRequired,
			Message:    fmt.Sprintf("you cannot access %s data", env),
			Permission: perm.Name(),
			Reason:     fmt.Sprintf("you need the permission %q", perm.Name()),
		}
	}
	return nil
}

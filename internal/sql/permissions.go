package sql

import (
	"context"
	"strings"

	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/rbac"
)

const hasAnyPermissionQuery = `
SELECT EXISTS (
    SELECT 1
    FROM user_roles ur
    JOIN users u USING (user_id)
    JOIN role_permissions rp USING (role_id)
    WHERE ur.user_id = $1
    AND   u.tenant_id = $2
    AND   rp.permission = ANY($3::text[])
)
`

// Permissions checks the permissions granted to a principal through the
// roles assigned to its user account.
type Permissions struct {
	*DB
}

var _ authz.PermissionChecker = (*Permissions)(nil)

func (p *Permissions) HasPermission(ctx context.Context, subj *authz.Principal, perm rbac.Permission) (bool, error) {
	return p.HasAnyPermission(ctx, subj, perm)
}

func (p *Permissions) HasAnyPermission(ctx context.Context, subj *authz.Principal, perms ...rbac.Permission) (bool, error) {
	if len(perms) == 0 {
		return false, nil
	}
	var ok bool
	row := p.QueryRowContext(ctx, hasAnyPermissionQuery, subj.UserID, subj.TenantID, textArray(perms))
	if err := row.Scan(&ok); err != nil {
		return false, Error(err)
	}
	return ok, nil
}

// textArray renders permissions as a postgres array literal. Permission
// names are snake case and need no quoting.
func textArray(perms []rbac.Permission) string {
	names := make([]string, len(perms))
	for i, perm := range perms {
		names[i] = perm.Name()
	}
	return "{" + strings.Join(names, ",") + "}"
}

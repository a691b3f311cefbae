package sql

import (
	"context"

	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

const getRoleQuery = `
SELECT role_id, tenant_id, organisation_id
FROM roles
WHERE tenant_id = $1
AND   role_id = $2
`

// GetRole retrieves the summary of a role. A role without an organisation
// is a tenant-wide role.
func (db *DB) GetRole(ctx context.Context, tenantID, id uuid.UUID) (*resource.Summary, error) {
	var (
		role           resource.Summary
		organisationID uuid.NullUUID
	)
	row := db.QueryRowContext(ctx, getRoleQuery, tenantID, id)
	if err := row.Scan(&role.ID, &role.TenantID, &organisationID); err != nil {
		return nil, Error(err)
	}
	role.Kind = resource.RoleKind
	role.OrganisationID = UUIDPtr(organisationID)
	return &role, nil
}

package sql

import (
	"context"

	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

const getUserQuery = `
SELECT user_id, tenant_id, organisation_id, user_type, customer_id, is_tenant_admin, is_organisation_admin
FROM users
WHERE tenant_id = $1
AND   user_id = $2
`

func (db *DB) GetUser(ctx context.Context, tenantID, id uuid.UUID) (*resource.UserSummary, error) {
	var (
		user                       resource.UserSummary
		userType                   string
		organisationID, customerID uuid.NullUUID
	)
	row := db.QueryRowContext(ctx, getUserQuery, tenantID, id)
	err := row.Scan(
		&user.ID,
		&user.TenantID,
		&organisationID,
		&userType,
		&customerID,
		&user.IsTenantAdmin,
		&user.IsOrganisationAdmin,
	)
	if err != nil {
		return nil, Error(err)
	}
	user.Kind = resource.UserKind
	user.UserType = resource.UserType(userType)
	user.OrganisationID = UUIDPtr(organisationID)
	user.CustomerID = UUIDPtr(customerID)
	return &user, nil
}

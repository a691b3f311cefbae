package sql

import (
	"context"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	getOrganisationQuery = `
SELECT o.organisation_id, o.tenant_id, o.is_default, m.managing_organisation_id
FROM organisations o
LEFT JOIN organisation_management m ON m.managed_organisation_id = o.organisation_id
WHERE o.tenant_id = $1
AND   o.organisation_id = $2
`
	isDefaultOrganisationQuery = `
SELECT EXISTS (
    SELECT 1
    FROM organisations
    WHERE tenant_id = $1
    AND   organisation_id = $2
    AND   is_default
)
`
	defaultOrganisationQuery = `
SELECT organisation_id
FROM organisations
WHERE tenant_id = $1
AND   is_default
`
	// managed organisations are ordered by depth and then id; the cycle
	// clause stops the walk when an organisation recurs along a path
	managedOrganisationsQuery = `
WITH RECURSIVE managed (organisation_id, depth) AS (
    SELECT managed_organisation_id, 1
    FROM organisation_management
    WHERE tenant_id = $1
    AND   managing_organisation_id = $2
    UNION ALL
    SELECT m.managed_organisation_id, managed.depth + 1
    FROM organisation_management m
    JOIN managed ON m.managing_organisation_id = managed.organisation_id
    WHERE m.tenant_id = $1
) CYCLE organisation_id SET is_cycle USING path
SELECT organisation_id
FROM managed
WHERE NOT is_cycle
AND   organisation_id <> $2
GROUP BY organisation_id
ORDER BY min(depth), organisation_id
`
)

// GetOrganisation retrieves an organisation. An organisation belongs to
// itself.
func (db *DB) GetOrganisation(ctx context.Context, tenantID, id uuid.UUID) (*resource.OrganisationSummary, error) {
	var (
		org        resource.OrganisationSummary
		managingID uuid.NullUUID
	)
	row := db.QueryRowContext(ctx, getOrganisationQuery, tenantID, id)
	if err := row.Scan(&org.ID, &org.TenantID, &org.IsDefault, &managingID); err != nil {
		return nil, Error(err)
	}
	org.Kind = resource.OrganisationKind
	org.OrganisationID = internal.Ptr(org.ID)
	org.ManagingOrganisationID = UUIDPtr(managingID)
	return &org, nil
}

func (db *DB) IsDefaultOrganisation(ctx context.Context, tenantID, organisationID uuid.UUID) (bool, error) {
	var isDefault bool
	row := db.QueryRowContext(ctx, isDefaultOrganisationQuery, tenantID, organisationID)
	if err := row.Scan(&isDefault); err != nil {
		return false, Error(err)
	}
	return isDefault, nil
}

func (db *DB) DefaultOrganisationID(ctx context.Context, tenantID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	row := db.QueryRowContext(ctx, defaultOrganisationQuery, tenantID)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, Error(err)
	}
	return id, nil
}

// ManagedOrganisationIDs returns the organisations managed by the
// organisation, directly or through intermediate managing organisations.
// Cycles in the hierarchy are ignored.
func (db *DB) ManagedOrganisationIDs(ctx context.Context, tenantID, organisationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.QueryContext(ctx, managedOrganisationsQuery, tenantID, organisationID)
	if err != nil {
		return nil, Error(err)
	}
	defer rows.Close()

	var managed []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scanning managed organisation")
		}
		managed = append(managed, id)
	}
	if err := rows.Err(); err != nil {
		return nil, Error(err)
	}
	return managed, nil
}

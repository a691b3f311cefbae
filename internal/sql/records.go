package sql

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	getRecordQuery = `
SELECT kind, record_id, tenant_id, organisation_id, owner_user_id, customer_id, product_id, environment, parent_id
FROM records
WHERE tenant_id = $1
AND   record_id = $2
AND   kind = $3
`
	getEmailRelationshipsQuery = `
SELECT relationship_type, from_kind, from_id, to_kind, to_id
FROM email_relationships
WHERE email_id = $1
`
)

type scanner interface {
	Scan(dest ...any) error
}

// GetSummary retrieves the summary of a record of the given kind.
// Organisations, users and roles are held in their own tables.
func (db *DB) GetSummary(ctx context.Context, kind resource.Kind, tenantID, id uuid.UUID) (*resource.Summary, error) {
	switch kind {
	case resource.OrganisationKind:
		org, err := db.GetOrganisation(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		return &org.Summary, nil
	case resource.UserKind:
		user, err := db.GetUser(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		return &user.Summary, nil
	case resource.RoleKind:
		return db.GetRole(ctx, tenantID, id)
	}
	row := db.QueryRowContext(ctx, getRecordQuery, tenantID, id, kind.String())
	summary, err := scanSummary(row)
	if err != nil {
		return nil, Error(err)
	}
	return summary, nil
}

// GetEmail retrieves an email along with its relationships.
func (db *DB) GetEmail(ctx context.Context, tenantID, id uuid.UUID) (*resource.EmailSummary, error) {
	summary, err := db.GetSummary(ctx, resource.EmailKind, tenantID, id)
	if err != nil {
		return nil, err
	}
	email := &resource.EmailSummary{Summary: *summary}

	rows, err := db.QueryContext(ctx, getEmailRelationshipsQuery, id)
	if err != nil {
		return nil, Error(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rel              resource.Relationship
			relType          string
			fromKind, toKind string
		)
		if err := rows.Scan(&relType, &fromKind, &rel.FromID, &toKind, &rel.ToID); err != nil {
			return nil, errors.Wrap(err, "scanning email relationship")
		}
		rel.Type = resource.RelationshipType(relType)
		rel.FromKind = resource.Kind(fromKind)
		rel.ToKind = resource.Kind(toKind)
		email.Relationships = append(email.Relationships, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, Error(err)
	}
	return email, nil
}

func scanSummary(row scanner) (*resource.Summary, error) {
	var (
		summary                             resource.Summary
		kind, env                           string
		organisationID, ownerID, customerID uuid.NullUUID
		productID, parentID                 uuid.NullUUID
	)
	err := row.Scan(
		&kind,
		&summary.ID,
		&summary.TenantID,
		&organisationID,
		&ownerID,
		&customerID,
		&productID,
		&env,
		&parentID,
	)
	if err != nil {
		return nil, err
	}
	if summary.Kind, err = resource.ParseKind(kind); err != nil {
		return nil, err
	}
	if summary.Environment, err = resource.ParseEnvironment(env); err != nil {
		return nil, fmt.Errorf("record %s: %w", summary.ID, err)
	}
	summary.OrganisationID = UUIDPtr(organisationID)
	summary.OwnerUserID = UUIDPtr(ownerID)
	summary.CustomerID = UUIDPtr(customerID)
	summary.ProductID = UUIDPtr(productID)
	summary.ParentID = UUIDPtr(parentID)
	return &summary, nil
}

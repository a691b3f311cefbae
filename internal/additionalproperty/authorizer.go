// Package additionalproperty authorizes access to the additional properties
// attached to entities, by deferring to the authorization of the entity
// itself.
package additionalproperty

import (
	"context"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// EntityType is a type of entity that may carry additional properties.
type EntityType string

const (
	TenantEntity            EntityType = "tenant"
	OrganisationEntity      EntityType = "organisation"
	ProductEntity           EntityType = "product"
	PortalEntity            EntityType = "portal"
	QuoteEntity             EntityType = "quote"
	QuoteVersionEntity      EntityType = "quote_version"
	PolicyEntity            EntityType = "policy"
	PolicyTransactionEntity EntityType = "policy_transaction"
	ClaimEntity             EntityType = "claim"
	ClaimVersionEntity      EntityType = "claim_version"
	CustomerEntity          EntityType = "customer"
	UserEntity              EntityType = "user"
)

// recordKinds maps entity types authorized as records to their kind.
var recordKinds = map[EntityType]resource.Kind{
	TenantEntity:            resource.TenantKind,
	ProductEntity:           resource.ProductKind,
	PortalEntity:            resource.PortalKind,
	QuoteEntity:             resource.QuoteKind,
	QuoteVersionEntity:      resource.QuoteVersionKind,
	PolicyEntity:            resource.PolicyKind,
	PolicyTransactionEntity: resource.PolicyTransactionKind,
	ClaimEntity:             resource.ClaimKind,
	ClaimVersionEntity:      resource.ClaimVersionKind,
	CustomerEntity:          resource.CustomerKind,
}

// Authorizer dispatches the authorization of additional properties to the
// authorizer of the entity they are attached to.
type Authorizer struct {
	Records       authz.Interface
	Organisations authz.EntityAuthorizer
	Users         authz.EntityAuthorizer
}

// AuthorizeView determines whether the subject may view the additional
// properties of the entity.
func (a *Authorizer) AuthorizeView(ctx context.Context, entityType EntityType, id uuid.UUID) error {
	switch entityType {
	case OrganisationEntity:
		return a.Organisations.AuthorizeView(ctx, id)
	case UserEntity:
		return a.Users.AuthorizeView(ctx, id)
	}
	kind, ok := recordKinds[entityType]
	if !ok {
		return internal.InvalidOperation("no authorization is defined for additional properties of entity type %q", entityType)
	}
	_, err := a.Records.Authorize(ctx, rbac.ViewAction, authz.Request{Kind: kind, ID: &id})
	return err
}

// AuthorizeModify determines whether the subject may modify the additional
// properties of the entity.
func (a *Authorizer) AuthorizeModify(ctx context.Context, entityType EntityType, id uuid.UUID) error {
	switch entityType {
	case OrganisationEntity:
		return a.Organisations.AuthorizeModify(ctx, id)
	case UserEntity:
		return a.Users.AuthorizeModify(ctx, id)
	}
	kind, ok := recordKinds[entityType]
	if !ok {
		return internal.InvalidOperation("no authorization is defined for additional properties of entity type %q", entityType)
	}
	_, err := a.Records.Authorize(ctx, rbac.ModifyAction, authz.Request{Kind: kind, ID: &id})
	return err
}

// Package organization authorizes the administration of a tenant's
// organisations.
package organization

import (
	"context"
	"errors"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

var (
	viewLadder   = rbac.Ladder{Organisation: rbac.ViewOrganisations, Tenant: rbac.ViewAllOrganisations}
	modifyLadder = rbac.Ladder{Organisation: rbac.ManageOrganisations, Tenant: rbac.ManageAllOrganisations}
)

// Authorizer authorizes access to organisations. A subject reaches its own
// organisation and the organisations its organisation manages; the tenant
// tier from the default organisation reaches every organisation in the
// tenant.
type Authorizer struct {
	logr.Logger

	*authz.Authorizer
}

var _ authz.EntityAuthorizer = (*Authorizer)(nil)

func NewAuthorizer(logger logr.Logger, authorizer *authz.Authorizer) *Authorizer {
	return &Authorizer{
		Logger:     logger.WithValues("component", "organization"),
		Authorizer: authorizer,
	}
}

func (a *Authorizer) RestrictFilters(ctx context.Context, f authz.Filters) (authz.Filters, error) {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return authz.Filters{}, err
	}
	return a.RestrictFiltersToReach(ctx, subj, viewLadder, f, authz.ReachableOptions{})
}

func (a *Authorizer) AuthorizeViewAny(ctx context.Context) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	ok, err := a.Permissions.HasAnyPermission(ctx, subj, viewLadder.Permissions()...)
	if err != nil {
		return err
	}
	if !ok {
		err := &internal.AuthorizationError{
			Code:       internal.CodePermissionRequired,
			Message:    "you don't have permission to view organisations",
			Permission: rbac.ViewOrganisations.Name(),
		}
		a.Error(err, "unauthorized action", "action", rbac.ViewAnyAction.String(), "subject", subj)
		return err
	}
	return nil
}

func (a *Authorizer) AuthorizeView(ctx context.Context, id uuid.UUID) error {
	return a.authorize(ctx, rbac.ViewAction, viewLadder, id)
}

// AuthorizeCreate determines whether the subject may create an organisation
// managed by the given organisation.
func (a *Authorizer) AuthorizeCreate(ctx context.Context, managingOrganisationID uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:           resource.OrganisationKind,
		ID:             managingOrganisationID,
		TenantID:       subj.TenantID,
		OrganisationID: managingOrganisationID,
		Ladder:         modifyLadder,
	})
	if err != nil {
		a.Error(err, "unauthorized action", "action", rbac.CreateAction.String(), "managing_organisation", managingOrganisationID, "subject", subj)
		return err
	}
	return nil
}

func (a *Authorizer) AuthorizeModify(ctx context.Context, id uuid.UUID) error {
	return a.authorize(ctx, rbac.ModifyAction, modifyLadder, id)
}

// AuthorizeDelete determines whether the subject may delete the
// organisation. Neither the subject's own organisation nor the tenant's
// default organisation may be deleted.
func (a *Authorizer) AuthorizeDelete(ctx context.Context, id uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	if id == subj.OrganisationID {
		return internal.NotPermitted("you cannot delete your own organisation")
	}
	if err := a.authorize(ctx, rbac.DeleteAction, modifyLadder, id); err != nil {
		return err
	}
	isDefault, err := a.Organisations.IsDefaultOrganisation(ctx, subj.TenantID, id)
	if err != nil {
		return err
	}
	if isDefault {
		return internal.InvalidOperation("organisation %s is the default organisation of the tenant and cannot be deleted", id)
	}
	return nil
}

func (a *Authorizer) authorize(ctx context.Context, action rbac.Action, ladder rbac.Ladder, id uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	org, err := a.Records.GetSummary(ctx, resource.OrganisationKind, subj.TenantID, id)
	if err != nil {
		if errors.Is(err, internal.ErrResourceNotFound) {
			return internal.NotFound(resource.OrganisationKind.String(), id)
		}
		return err
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:           resource.OrganisationKind,
		ID:             id,
		TenantID:       org.TenantID,
		OrganisationID: org.ID,
		Ladder:         ladder,
	})
	if err != nil {
		a.Error(err, "unauthorized action", "action", action.String(), "organisation", id, "subject", subj)
		return err
	}
	return nil
}

// Package role authorizes the administration of roles.
package role

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
	viewLadder   = rbac.Ladder{Organisation: rbac.ViewRoles, Tenant: rbac.ViewRolesFromAllOrganisations}
	modifyLadder = rbac.Ladder{Organisation: rbac.ManageRoles, Tenant: rbac.ManageRolesForAllOrganisations}

	// roles of the default organisation are shared with every organisation
	reach = authz.ReachableOptions{IncludeDefault: true}
)

// Authorizer authorizes access to roles.
type Authorizer struct {
	logr.Logger

	*authz.Authorizer
}

var _ authz.EntityAuthorizer = (*Authorizer)(nil)

func NewAuthorizer(logger logr.Logger, authorizer *authz.Authorizer) *Authorizer {
	return &Authorizer{
		Logger:     logger.WithValues("component", "role"),
		Authorizer: authorizer,
	}
}

func (a *Authorizer) RestrictFilters(ctx context.Context, f authz.Filters) (authz.Filters, error) {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return authz.Filters{}, err
	}
	return a.RestrictFiltersToReach(ctx, subj, viewLadder, f, reach)
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
			Message:    "you don't have permission to view roles",
			Permission: rbac.ViewRoles.Name(),
		}
		a.Error(err, "unauthorized action", "action", rbac.ViewAnyAction.String(), "subject", subj)
		return err
	}
	return nil
}

func (a *Authorizer) AuthorizeView(ctx context.Context, id uuid.UUID) error {
	return a.authorize(ctx, rbac.ViewAction, viewLadder, id)
}

// AuthorizeCreate determines whether the subject may create a role in the
// organisation.
func (a *Authorizer) AuthorizeCreate(ctx context.Context, organisationID uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:             resource.RoleKind,
		TenantID:         subj.TenantID,
		OrganisationID:   organisationID,
		Ladder:           modifyLadder,
		ReachableOptions: reach,
	})
	if err != nil {
		a.Error(err, "unauthorized action", "action", rbac.CreateAction.String(), "organisation", organisationID, "subject", subj)
		return err
	}
	return nil
}

func (a *Authorizer) AuthorizeModify(ctx context.Context, id uuid.UUID) error {
	return a.authorize(ctx, rbac.ModifyAction, modifyLadder, id)
}

func (a *Authorizer) AuthorizeDelete(ctx context.Context, id uuid.UUID) error {
	return a.authorize(ctx, rbac.DeleteAction, modifyLadder, id)
}

func (a *Authorizer) authorize(ctx context.Context, action rbac.Action, ladder rbac.Ladder, id uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	role, err := a.Records.GetSummary(ctx, resource.RoleKind, subj.TenantID, id)
	if err != nil {
		if errors.Is(err, internal.ErrResourceNotFound) {
			return internal.NotFound(resource.RoleKind.String(), id)
		}
		return err
	}
	// a role without an organisation belongs to the tenant's default
	// organisation
	organisationID := internal.Deref(role.OrganisationID)
	if role.OrganisationID == nil {
		organisationID, err = a.Organisations.DefaultOrganisationID(ctx, role.TenantID)
		if err != nil {
			return err
		}
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:             resource.RoleKind,
		ID:               id,
		TenantID:         role.TenantID,
		OrganisationID:   organisationID,
		Ladder:           ladder,
		ReachableOptions: reach,
	})
	if err != nil {
		a.Error(err, "unauthorized action", "action", action.String(), "role", id, "subject", subj)
		return err
	}
	return nil
}

// Package user authorizes the administration of user accounts.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

var (
	viewLadder   = rbac.Ladder{Organisation: rbac.ViewUsers, Tenant: rbac.ViewUsersFromOtherOrganisations}
	modifyLadder = rbac.Ladder{Organisation: rbac.ManageUsers, Tenant: rbac.ManageUsersForOtherOrganisations}

	// users of the default organisation are administered alongside those of
	// every other organisation
	reach = authz.ReachableOptions{IncludeDefault: true}
)

// Fetcher retrieves user accounts. Implementations return
// internal.ErrResourceNotFound if the user does not exist for the tenant.
type Fetcher interface {
	GetUser(ctx context.Context, tenantID, id uuid.UUID) (*resource.UserSummary, error)
}

// Authorizer authorizes access to user accounts. Only a subject holding the
// matching admin permission may modify or delete an admin user, and no
// subject may delete itself.
type Authorizer struct {
	logr.Logger

	*authz.Authorizer

	users Fetcher
}

var _ authz.EntityAuthorizer = (*Authorizer)(nil)

func NewAuthorizer(logger logr.Logger, authorizer *authz.Authorizer, users Fetcher) *Authorizer {
	return &Authorizer{
		Logger:     logger.WithValues("component", "user"),
		Authorizer: authorizer,
		users:      users,
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
			Message:    "you don't have permission to view users",
			Permission: rbac.ViewUsers.Name(),
		}
		a.Error(err, "unauthorized action", "action", rbac.ViewAnyAction.String(), "subject", subj)
		return err
	}
	return nil
}

// AuthorizeView determines whether the subject may view the user. A subject
// may always view itself.
func (a *Authorizer) AuthorizeView(ctx context.Context, id uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	if id == subj.UserID {
		return nil
	}
	_, err = a.authorize(ctx, subj, rbac.ViewAction, viewLadder, id)
	return err
}

// AuthorizeCreate determines whether the subject may create a user in the
// organisation.
func (a *Authorizer) AuthorizeCreate(ctx context.Context, organisationID uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:             resource.UserKind,
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
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	target, err := a.authorize(ctx, subj, rbac.ModifyAction, modifyLadder, id)
	if err != nil {
		return err
	}
	return a.authorizeAdmin(ctx, subj, target)
}

func (a *Authorizer) AuthorizeDelete(ctx context.Context, id uuid.UUID) error {
	subj, err := authz.SubjectFromContext(ctx)
	if err != nil {
		return err
	}
	if id == subj.UserID {
		return internal.NotPermitted("you cannot delete yourself")
	}
	target, err := a.authorize(ctx, subj, rbac.DeleteAction, modifyLadder, id)
	if err != nil {
		return err
	}
	return a.authorizeAdmin(ctx, subj, target)
}

func (a *Authorizer) authorize(ctx context.Context, subj *authz.Principal, action rbac.Action, ladder rbac.Ladder, id uuid.UUID) (*resource.UserSummary, error) {
	target, err := a.users.GetUser(ctx, subj.TenantID, id)
	if err != nil {
		if errors.Is(err, internal.ErrResourceNotFound) {
			return nil, internal.NotFound(resource.UserKind.String(), id)
		}
		return nil, err
	}
	// a user without an organisation belongs to the tenant's default
	// organisation
	organisationID := internal.Deref(target.OrganisationID)
	if target.OrganisationID == nil {
		organisationID, err = a.Organisations.DefaultOrganisationID(ctx, target.TenantID)
		if err != nil {
			return nil, err
		}
	}
	err = a.AuthorizeReach(ctx, subj, authz.ReachRequest{
		Kind:             resource.UserKind,
		ID:               id,
		TenantID:         target.TenantID,
		OrganisationID:   organisationID,
		Ladder:           ladder,
		ReachableOptions: reach,
	})
	if err != nil {
		a.Error(err, "unauthorized action", "action", action.String(), "user", id, "subject", subj)
		return nil, err
	}
	return target, nil
}

// authorizeAdmin permits changes to an admin user only to subjects holding
// the matching admin permission. The tenant admin permission also covers
// organisation admins.
func (a *Authorizer) authorizeAdmin(ctx context.Context, subj *authz.Principal, target *resource.UserSummary) error {
	var required []rbac.Permission
	switch {
	case target.IsTenantAdmin:
		required = []rbac.Permission{rbac.ManageTenantAdminUsers}
	case target.IsOrganisationAdmin:
		required = []rbac.Permission{rbac.ManageOrganisationAdminUsers, rbac.ManageTenantAdminUsers}
	default:
		return nil
	}
	ok, err := a.Permissions.HasAnyPermission(ctx, subj, required...)
	if err != nil {
		return err
	}
	if !ok {
		err := &internal.AuthorizationError{
			Code:       internal.CodePermissionRequired,
			Message:    fmt.Sprintf("you cannot change admin user %s", target.ID),
			Kind:       resource.UserKind.String(),
			ID:         target.ID.String(),
			Permission: required[0].Name(),
			Reason:     "only another admin can change an admin user",
		}
		a.Error(err, "unauthorized action", "user", target.ID, "subject", subj)
		return err
	}
	return nil
}

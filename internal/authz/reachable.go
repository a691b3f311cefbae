package authz

import (
	"context"
	"fmt"
	"slices"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ReachableOptions configures ReachableOrganisations.
type ReachableOptions struct {
	// IncludeDefault includes the tenant's default organisation.
	IncludeDefault bool
}

// ReachableOrganisations returns the IDs of the organisations the subject may
// act upon: its own organisation, the organisations its organisation
// manages, and optionally the tenant's default organisation.
func ReachableOrganisations(ctx context.Context, orgs OrganisationQuerier, subj *Principal, opts ReachableOptions) ([]uuid.UUID, error) {
	var (
		managed   []uuid.UUID
		defaultID uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		managed, err = orgs.ManagedOrganisationIDs(gctx, subj.TenantID, subj.OrganisationID)
		return err
	})
	if opts.IncludeDefault {
		g.Go(func() (err error) {
			defaultID, err = orgs.DefaultOrganisationID(gctx, subj.TenantID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	reachable := append([]uuid.UUID{subj.OrganisationID}, managed...)
	if opts.IncludeDefault {
		reachable = append(reachable, defaultID)
	}
	return internal.Dedupe(reachable), nil
}

// Reaches reports whether an organisation is among those reachable.
func Reaches(reachable []uuid.UUID, organisationID *uuid.UUID) bool {
	return organisationID != nil && slices.Contains(reachable, *organisationID)
}

// ReachRequest describes an administrative entity whose access is decided by
// organisation reachability rather than by ownership.
type ReachRequest struct {
	Kind           resource.Kind
	ID             uuid.UUID
	TenantID       uuid.UUID
	OrganisationID uuid.UUID
	Ladder         rbac.Ladder
	ReachableOptions
}

// AuthorizeReach determines whether the subject may act upon an entity
// belonging to an organisation. A tenant tier permission held from the
// default organisation reaches every organisation in the tenant; otherwise
// the organisation or tenant tier reaches only the subject's reachable
// organisations.
func (a *Authorizer) AuthorizeReach(ctx context.Context, subj *Principal, req ReachRequest) error {
	hasTenant, err := a.holds(ctx, subj, req.Ladder.Tenant)
	if err != nil {
		return err
	}
	if hasTenant {
		tenantWide, err := a.tenantWide(ctx, subj, nil)
		if err != nil {
			return err
		}
		if tenantWide {
			return a.authorizeTenant(subj, req.TenantID)
		}
	}
	hasOrganisation, err := a.holds(ctx, subj, req.Ladder.Organisation)
	if err != nil {
		return err
	}
	if !hasOrganisation && !hasTenant {
		return &internal.AuthorizationError{
			Code:       internal.CodeAccessNotPermitted,
			Message:    fmt.Sprintf("you don't have permission to access %s %s", req.Kind, req.ID),
			Kind:       req.Kind.String(),
			ID:         req.ID.String(),
			Permission: req.Ladder.Organisation.Name(),
		}
	}
	if err := a.authorizeTenant(subj, req.TenantID); err != nil {
		return err
	}
	reachable, err := ReachableOrganisations(ctx, a.Organisations, subj, req.ReachableOptions)
	if err != nil {
		return err
	}
	if slices.Contains(reachable, req.OrganisationID) {
		return nil
	}
	held := req.Ladder.Organisation
	if !hasOrganisation {
		held = req.Ladder.Tenant
	}
	var alternative string
	if !hasTenant && req.Ladder.Tenant != rbac.NoPermission {
		alternative = req.Ladder.Tenant.Name()
	}
	return &internal.AuthorizationError{
		Code:        internal.CodePermissionRequired,
		Message:     fmt.Sprintf("you cannot access %s %s", req.Kind, req.ID),
		Kind:        req.Kind.String(),
		ID:          req.ID.String(),
		Permission:  held.Name(),
		Alternative: alternative,
		Reason:      "it belongs to an organisation you do not manage",
	}
}

// RestrictFiltersToReach narrows a list query for administrative entities
// to the organisations the subject reaches.
func (a *Authorizer) RestrictFiltersToReach(ctx context.Context, subj *Principal, ladder rbac.Ladder, f Filters, opts ReachableOptions) (Filters, error) {
	f = f.Clone()
	if !subj.IsMaster() {
		if f.TenantID != nil && *f.TenantID != subj.TenantID {
			return Filters{}, a.authorizeTenant(subj, *f.TenantID)
		}
		f.TenantID = internal.Ptr(subj.TenantID)
	}
	hasTenant, err := a.holds(ctx, subj, ladder.Tenant)
	if err != nil {
		return Filters{}, err
	}
	if hasTenant {
		tenantWide, err := a.tenantWide(ctx, subj, nil)
		if err != nil {
			return Filters{}, err
		}
		if tenantWide {
			return f, nil
		}
	}
	hasOrganisation, err := a.holds(ctx, subj, ladder.Organisation)
	if err != nil {
		return Filters{}, err
	}
	if !hasOrganisation && !hasTenant {
		return Filters{}, &internal.AuthorizationError{
			Code:       internal.CodeAccessNotPermitted,
			Message:    "you don't have permission to list these records",
			Permission: ladder.Organisation.Name(),
		}
	}
	reachable, err := ReachableOrganisations(ctx, a.Organisations, subj, opts)
	if err != nil {
		return Filters{}, err
	}
	if len(f.OrganisationIDs) == 0 {
		f.OrganisationIDs = reachable
		return f, nil
	}
	f.OrganisationIDs = internal.Intersect(f.OrganisationIDs, reachable)
	if len(f.OrganisationIDs) == 0 {
		return Filters{}, &internal.AuthorizationError{
			Code:       internal.CodePermissionRequired,
			Message:    "you cannot list records from organisations you do not manage",
			Permission: ladder.Organisation.Name(),
		}
	}
	return f, nil
}

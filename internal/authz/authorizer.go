package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Authorizer decides whether subjects (the principals requesting access) may
// carry out actions on records.
type Authorizer struct {
	logr.Logger

	Permissions      PermissionChecker
	Records          RecordFetcher
	Organisations    OrganisationQuerier
	TenantVisibility TenantVisibility

	parentResolvers map[resource.Kind]ParentResolver
	metrics         *metrics
}

// Interface is the authorizer as consumed by dispatchers such as the
// additional property authorizer, permitting it to be swapped out in tests.
type Interface interface {
	Authorize(ctx context.Context, action rbac.Action, req Request, opts ...CanAccessOption) (*Principal, error)
	CanAccess(ctx context.Context, action rbac.Action, req Request) bool
}

type Options struct {
	logr.Logger

	Permissions   PermissionChecker
	Records       RecordFetcher
	Organisations OrganisationQuerier
	// TenantVisibility defaults to granting no additional visibility.
	TenantVisibility TenantVisibility
	// Registerer registers decision metrics; nil disables registration.
	Registerer prometheus.Registerer
}

func NewAuthorizer(opts Options) *Authorizer {
	a := &Authorizer{
		Logger:           opts.Logger,
		Permissions:      opts.Permissions,
		Records:          opts.Records,
		Organisations:    opts.Organisations,
		TenantVisibility: opts.TenantVisibility,
		parentResolvers:  make(map[resource.Kind]ParentResolver),
		metrics:          newMetrics(opts.Registerer),
	}
	if a.Permissions == nil {
		a.Permissions = GrantedPermissions{}
	}
	if a.TenantVisibility == nil {
		a.TenantVisibility = NoTenantVisibility{}
	}
	return a
}

// Request for authorization.
type Request struct {
	// Kind of resource to which access is being requested.
	Kind resource.Kind
	// ID of the record to which access is being requested. If nil then
	// access is being requested to the kind of resource generally, and only
	// a blanket permission check is carried out.
	ID *uuid.UUID
	// TenantID is the tenant of the record. If nil then it defaults to the
	// subject's tenant.
	TenantID *uuid.UUID
}

func (r Request) tenant(subj *Principal) uuid.UUID {
	if r.TenantID != nil {
		return *r.TenantID
	}
	return subj.TenantID
}

// ParentResolver resolves the ID of the parent of a derived record, e.g. the
// quote of a quote version.
type ParentResolver func(ctx context.Context, tenantID, id uuid.UUID) (uuid.UUID, error)

// RegisterParentResolver registers with the authorizer a means of resolving the
// parent of a resource. Derived kinds without a registered resolver use the
// parent ID of the record summary.
func (a *Authorizer) RegisterParentResolver(kind resource.Kind, resolver ParentResolver) {
	if a.parentResolvers == nil {
		a.parentResolvers = make(map[resource.Kind]ParentResolver)
	}
	a.parentResolvers[kind] = resolver
}

// Options for configuring the individual calls of Authorize.

type CanAccessOption func(*canAccessConfig)

// WithoutErrorLogging disables logging an unauthorized error. This can be
// useful if just checking if a user can do something.
func WithoutErrorLogging() CanAccessOption {
	return func(cfg *canAccessConfig) {
		cfg.disableLogs = true
	}
}

type canAccessConfig struct {
	disableLogs bool
}

// Authorize determines whether the subject can carry out an action on a
// record. The subject is expected to be contained within the context. A nil
// error means the subject is authorized.
func (a *Authorizer) Authorize(ctx context.Context, action rbac.Action, req Request, opts ...CanAccessOption) (*Principal, error) {
	var cfg canAccessConfig
	for _, fn := range opts {
		fn(&cfg)
	}
	subj, err := SubjectFromContext(ctx)
	if err != nil {
		return nil, err
	}
	err = a.authorize(ctx, subj, action, req)
	a.record(subj, action, req, err, cfg)
	if err != nil {
		return nil, err
	}
	return subj, nil
}

func (a *Authorizer) authorize(ctx context.Context, subj *Principal, action rbac.Action, req Request) error {
	family, ok := rbac.FamilyOf(req.Kind)
	if !ok {
		return internal.InvalidOperation("no authorization is defined for resource kind %q", req.Kind)
	}
	ladder, err := ladderFor(family, action)
	if err != nil {
		return err
	}
	tenantID := req.tenant(subj)
	if req.ID == nil {
		if err := a.authorizeTenant(subj, tenantID); err != nil {
			return err
		}
		return a.authorizeAny(ctx, subj, req.Kind, ladder)
	}
	id := *req.ID

	if family.Parent != "" {
		parentID, err := a.resolveParent(ctx, family.Kind, tenantID, id)
		if err != nil {
			return err
		}
		return a.authorize(ctx, subj, action, Request{Kind: family.Parent, ID: &parentID, TenantID: &tenantID})
	}

	var summary *resource.Summary
	switch family.Kind {
	case resource.EmailKind:
		email, err := a.Records.GetEmail(ctx, tenantID, id)
		if err != nil {
			return notFound(err, family.Kind, id)
		}
		t, err := a.emailTarget(ctx, email)
		if err != nil {
			return err
		}
		if err := a.checkLadder(ctx, subj, ladder, t); err != nil {
			return err
		}
		summary = &email.Summary
	default:
		summary, err = a.Records.GetSummary(ctx, family.Kind, tenantID, id)
		if err != nil {
			return notFound(err, family.Kind, id)
		}
		if err := a.checkLadder(ctx, subj, ladder, targetOf(summary)); err != nil {
			return err
		}
		if family.Kind == resource.CustomerKind && (action == rbac.ViewAction) {
			if err := a.checkCustomerOwnership(ctx, subj, targetOf(summary)); err != nil {
				return err
			}
		}
	}
	if family.Environment {
		if err := a.authorizeEnvironment(ctx, subj, summary.Environment); err != nil {
			return err
		}
	}
	return nil
}

// authorizeAny carries out the blanket check: the subject must hold at least
// one tier of the ladder.
func (a *Authorizer) authorizeAny(ctx context.Context, subj *Principal, kind resource.Kind, ladder rbac.Ladder) error {
	ok, err := a.Permissions.HasAnyPermission(ctx, subj, ladder.Permissions()...)
	if err != nil {
		return err
	}
	if !ok {
		return &internal.AuthorizationError{
			Code:       internal.CodePermissionRequired,
			Message:    fmt.Sprintf("you don't have permission to access %s records", kind),
			Kind:       kind.String(),
			Permission: ladder.Ownership.Name(),
		}
	}
	return nil
}

func (a *Authorizer) resolveParent(ctx context.Context, kind resource.Kind, tenantID, id uuid.UUID) (uuid.UUID, error) {
	if resolver, ok := a.parentResolvers[kind]; ok {
		parentID, err := resolver(ctx, tenantID, id)
		if err != nil {
			return uuid.Nil, notFound(err, kind, id)
		}
		return parentID, nil
	}
	summary, err := a.Records.GetSummary(ctx, kind, tenantID, id)
	if err != nil {
		return uuid.Nil, notFound(err, kind, id)
	}
	if summary.ParentID == nil {
		return uuid.Nil, internal.InvalidOperation("%s %s has no parent record", kind, id)
	}
	return *summary.ParentID, nil
}

func ladderFor(family rbac.Family, action rbac.Action) (rbac.Ladder, error) {
	switch action {
	case rbac.ViewAction, rbac.ViewAnyAction:
		return family.View, nil
	case rbac.ModifyAction, rbac.CreateAction, rbac.DeleteAction:
		return family.Modify, nil
	default:
		return rbac.Ladder{}, internal.InvalidOperation("no authorization is defined for action %q on %s", action, family.Kind)
	}
}

// notFound converts a not found error from a collaborator into an
// authorization error identifying the record. Other errors pass through
// unchanged.
func notFound(err error, kind resource.Kind, id uuid.UUID) error {
	if errors.Is(err, internal.ErrResourceNotFound) {
		return internal.NotFound(kind.String(), id)
	}
	return err
}

// record logs and counts the decision.
func (a *Authorizer) record(subj *Principal, action rbac.Action, req Request, err error, cfg canAccessConfig) {
	decision := ulid.Make()
	a.metrics.observe(req.Kind, action, err)
	if err != nil {
		if !cfg.disableLogs {
			a.Error(err, "authorization failure",
				"decision", decision,
				"resource", req.Kind,
				"id", req.ID,
				"action", action.String(),
				"subject", subj,
			)
		}
		return
	}
	a.V(9).Info("authorized",
		"decision", decision,
		"resource", req.Kind,
		"id", req.ID,
		"action", action.String(),
		"subject", subj,
	)
}

// AuthorizeView determines whether the subject may view the record.
func (a *Authorizer) AuthorizeView(ctx context.Context, kind resource.Kind, id uuid.UUID, opts ...CanAccessOption) error {
	_, err := a.Authorize(ctx, rbac.ViewAction, Request{Kind: kind, ID: &id}, opts...)
	return err
}

// AuthorizeModify determines whether the subject may modify the record.
func (a *Authorizer) AuthorizeModify(ctx context.Context, kind resource.Kind, id uuid.UUID, opts ...CanAccessOption) error {
	_, err := a.Authorize(ctx, rbac.ModifyAction, Request{Kind: kind, ID: &id}, opts...)
	return err
}

// AuthorizeViewAny determines whether the subject holds any permission to
// view records of the given kind.
func (a *Authorizer) AuthorizeViewAny(ctx context.Context, kind resource.Kind, opts ...CanAccessOption) error {
	_, err := a.Authorize(ctx, rbac.ViewAnyAction, Request{Kind: kind}, opts...)
	return err
}

// CanAccess is a helper to boil down an access request to a true/false
// decision, with any error encountered interpreted as false.
func (a *Authorizer) CanAccess(ctx context.Context, action rbac.Action, req Request) bool {
	_, err := a.Authorize(ctx, action, req, WithoutErrorLogging())
	return err == nil
}

// CanView reports whether the subject may view the record.
func (a *Authorizer) CanView(ctx context.Context, kind resource.Kind, id uuid.UUID) bool {
	return a.CanAccess(ctx, rbac.ViewAction, Request{Kind: kind, ID: &id})
}

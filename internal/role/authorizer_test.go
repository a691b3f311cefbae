package role

import (
	"bytes"
	"context"
	"testing"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/inmem"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tenantID   = uuid.New()
	defaultOrg = uuid.New()
	orgA       = uuid.New()
	orgB       = uuid.New()
	orgC       = uuid.New()

	defaultRole = uuid.New()
	roleA       = uuid.New()
	roleC       = uuid.New()
	tenantRole  = uuid.New()
)

func newTestAuthorizer(t *testing.T) *Authorizer {
	return newTestAuthorizerWithLogger(t, logr.Discard())
}

func newTestAuthorizerWithLogger(t *testing.T, logger logr.Logger) *Authorizer {
	t.Helper()

	store := inmem.NewStore()
	store.AddOrganisation(&resource.OrganisationSummary{Summary: resource.Summary{ID: defaultOrg, TenantID: tenantID}, IsDefault: true})
	store.AddOrganisation(&resource.OrganisationSummary{Summary: resource.Summary{ID: orgA, TenantID: tenantID}, ManagingOrganisationID: &defaultOrg})
	store.AddOrganisation(&resource.OrganisationSummary{Summary: resource.Summary{ID: orgB, TenantID: tenantID}, ManagingOrganisationID: &orgA})
	store.AddOrganisation(&resource.OrganisationSummary{Summary: resource.Summary{ID: orgC, TenantID: tenantID}})
	for id, org := range map[uuid.UUID]*uuid.UUID{
		defaultRole: &defaultOrg,
		roleA:       &orgA,
		roleC:       &orgC,
		tenantRole:  nil,
	} {
		store.AddRecord(&resource.Summary{Kind: resource.RoleKind, ID: id, TenantID: tenantID, OrganisationID: org})
	}
	return NewAuthorizer(logger, authz.NewAuthorizer(authz.Options{
		Logger:        logr.Discard(),
		Records:       store,
		Organisations: store,
	}))
}

func subjectIn(organisationID uuid.UUID, perms ...rbac.Permission) context.Context {
	subj := authz.NewPrincipal(tenantID, organisationID, uuid.New(), resource.ClientUser, nil, perms...)
	return authz.AddSubjectToContext(context.Background(), subj)
}

func TestAuthorizer_View(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		id      uuid.UUID
		wantErr error
	}{
		{"own organisation", subjectIn(orgA, rbac.ViewRoles), roleA, nil},
		{"default organisation", subjectIn(orgA, rbac.ViewRoles), defaultRole, nil},
		{"no organisation", subjectIn(orgA, rbac.ViewRoles), tenantRole, nil},
		{"unreachable organisation", subjectIn(orgA, rbac.ViewRoles), roleC, internal.ErrAccessNotPermitted},
		{"tenant tier from default organisation", subjectIn(defaultOrg, rbac.ViewRolesFromAllOrganisations), roleC, nil},
		{"no permission", subjectIn(orgA), roleA, internal.ErrAccessNotPermitted},
		{"not found", subjectIn(orgA, rbac.ViewRoles), uuid.New(), internal.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestAuthorizer(t).AuthorizeView(tt.ctx, tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizer_Manage(t *testing.T) {
	authorizer := newTestAuthorizer(t)
	ctx := subjectIn(orgA, rbac.ManageRoles)

	assert.NoError(t, authorizer.AuthorizeCreate(ctx, orgB))
	assert.ErrorIs(t, authorizer.AuthorizeCreate(ctx, orgC), internal.ErrAccessNotPermitted)
	assert.NoError(t, authorizer.AuthorizeModify(ctx, roleA))
	assert.NoError(t, authorizer.AuthorizeDelete(ctx, roleA))
	assert.ErrorIs(t, authorizer.AuthorizeDelete(ctx, roleC), internal.ErrAccessNotPermitted)

	// view permissions do not permit changes
	assert.ErrorIs(t, authorizer.AuthorizeModify(subjectIn(orgA, rbac.ViewRoles, rbac.ViewRolesFromAllOrganisations), roleA), internal.ErrAccessNotPermitted)
}

func TestAuthorizer_ViewAny(t *testing.T) {
	authorizer := newTestAuthorizer(t)

	assert.NoError(t, authorizer.AuthorizeViewAny(subjectIn(orgA, rbac.ViewRoles)))
	assert.ErrorIs(t, authorizer.AuthorizeViewAny(subjectIn(orgA, rbac.ManageRoles)), internal.ErrAccessNotPermitted)
}

func TestAuthorizer_LogsDenials(t *testing.T) {
	var got bytes.Buffer
	authorizer := newTestAuthorizerWithLogger(t, logr.NewTestLogger(&got))

	require.Error(t, authorizer.AuthorizeViewAny(subjectIn(orgA)))
	assert.Contains(t, got.String(), `msg="unauthorized action"`)
	assert.Contains(t, got.String(), "action=view_any")

	got.Reset()
	require.Error(t, authorizer.AuthorizeCreate(subjectIn(orgA, rbac.ManageRoles), orgC))
	assert.Contains(t, got.String(), `msg="unauthorized action"`)
	assert.Contains(t, got.String(), "action=create")
	assert.Contains(t, got.String(), "organisation="+orgC.String())

	got.Reset()
	require.NoError(t, authorizer.AuthorizeCreate(subjectIn(orgA, rbac.ManageRoles), orgB))
	assert.Empty(t, got.String())
}

func TestAuthorizer_RestrictFilters(t *testing.T) {
	got, err := newTestAuthorizer(t).RestrictFilters(subjectIn(orgA, rbac.ViewRoles), authz.Filters{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{orgA, orgB, defaultOrg}, got.OrganisationIDs)
}

package app

import (
	"context"
	"testing"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tenantID  = uuid.MustParse("6d7e3f0a-0000-4000-8000-000000000001")
	orgA      = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000a")
	orgB      = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000b")
	userID    = uuid.MustParse("1b1b1b1b-0000-4000-8000-000000000001")
	quoteID   = uuid.MustParse("4e4e4e4e-0000-4000-8000-000000000001")
	versionID = uuid.MustParse("4e4e4e4e-0000-4000-8000-000000000002")
	emailID   = uuid.MustParse("5f5f5f5f-0000-4000-8000-000000000001")
	roleID    = uuid.MustParse("7a7a7a7a-0000-4000-8000-000000000001")
)

func TestConfig_Valid(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"fixtures", Config{Fixtures: "testdata/fixtures.yaml"}, false},
		{"database", Config{Database: "postgres:///covercore"}, false},
		{"database permissions", Config{Database: "postgres:///covercore", DatabasePermissions: true}, false},
		{"neither", Config{}, true},
		{"both", Config{Database: "postgres:///covercore", Fixtures: "testdata/fixtures.yaml"}, true},
		{"database permissions without database", Config{Fixtures: "testdata/fixtures.yaml", DatabasePermissions: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Valid()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()

	app, err := New(context.Background(), logr.Discard(), Config{
		Fixtures:     "testdata/fixtures.yaml",
		CarveOutFile: "testdata/carve_outs.yaml",
	}, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestApplication(t *testing.T) {
	app := newTestApp(t)

	subj := authz.NewPrincipal(tenantID, orgA, userID, resource.ClientUser, nil,
		rbac.ViewAllQuotes,
		rbac.ViewAllMessages,
		rbac.AccessProductionData,
		rbac.ViewOrganisations,
		rbac.ViewRoles,
	)
	ctx := authz.AddSubjectToContext(context.Background(), subj)

	t.Run("view quote", func(t *testing.T) {
		assert.NoError(t, app.AuthorizeView(ctx, resource.QuoteKind, quoteID))
	})

	t.Run("view quote version through its quote", func(t *testing.T) {
		assert.NoError(t, app.AuthorizeView(ctx, resource.QuoteVersionKind, versionID))
	})

	t.Run("view email through its quote", func(t *testing.T) {
		assert.NoError(t, app.AuthorizeView(ctx, resource.EmailKind, emailID))
	})

	t.Run("modify quote without permission", func(t *testing.T) {
		err := app.AuthorizeModify(ctx, resource.QuoteKind, quoteID)
		assert.ErrorIs(t, err, internal.ErrAccessNotPermitted)
	})

	t.Run("view managed organisation", func(t *testing.T) {
		orgs, err := app.EntityAuthorizer(resource.OrganisationKind)
		require.NoError(t, err)
		assert.NoError(t, orgs.AuthorizeView(ctx, orgB))
	})

	t.Run("view role of default organisation", func(t *testing.T) {
		roles, err := app.EntityAuthorizer(resource.RoleKind)
		require.NoError(t, err)
		assert.NoError(t, roles.AuthorizeView(ctx, roleID))
	})

	t.Run("view self", func(t *testing.T) {
		users, err := app.EntityAuthorizer(resource.UserKind)
		require.NoError(t, err)
		assert.NoError(t, users.AuthorizeView(ctx, userID))
	})

	t.Run("additional properties of quote", func(t *testing.T) {
		assert.NoError(t, app.AdditionalProperties.AuthorizeView(ctx, "quote", quoteID))
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := app.EntityAuthorizer(resource.QuoteKind)
		assert.ErrorIs(t, err, internal.ErrInvalidOperation)
	})
}

func TestApplication_MissingFixtures(t *testing.T) {
	_, err := New(context.Background(), logr.Discard(), Config{Fixtures: "testdata/missing.yaml"}, nil)
	assert.Error(t, err)
}

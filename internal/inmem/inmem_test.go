package inmem

import (
	"context"
	"strings"
	"testing"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tenantID   = uuid.MustParse("6d7e3f0a-0000-4000-8000-000000000001")
	defaultOrg = uuid.MustParse("0a0a0a0a-0000-4000-8000-000000000001")
	orgA       = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000a")
	orgB       = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000b")
	userID     = uuid.MustParse("1b1b1b1b-0000-4000-8000-000000000001")
	quoteID    = uuid.MustParse("4e4e4e4e-0000-4000-8000-000000000001")
	versionID  = uuid.MustParse("4e4e4e4e-0000-4000-8000-000000000002")
	emailID    = uuid.MustParse("5f5f5f5f-0000-4000-8000-000000000001")
)

func TestLoadFixturesFile(t *testing.T) {
	ctx := context.Background()
	store, err := LoadFixturesFile("testdata/fixtures.yaml")
	require.NoError(t, err)

	t.Run("records", func(t *testing.T) {
		quote, err := store.GetSummary(ctx, resource.QuoteKind, tenantID, quoteID)
		require.NoError(t, err)
		assert.Equal(t, &orgA, quote.OrganisationID)
		assert.Equal(t, &userID, quote.OwnerUserID)
		assert.Equal(t, resource.Production, quote.Environment)

		version, err := store.GetSummary(ctx, resource.QuoteVersionKind, tenantID, versionID)
		require.NoError(t, err)
		assert.Equal(t, &quoteID, version.ParentID)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := store.GetSummary(ctx, resource.PolicyKind, tenantID, quoteID)
		assert.ErrorIs(t, err, internal.ErrResourceNotFound)
	})

	t.Run("wrong tenant", func(t *testing.T) {
		_, err := store.GetSummary(ctx, resource.QuoteKind, uuid.New(), quoteID)
		assert.ErrorIs(t, err, internal.ErrResourceNotFound)
	})

	t.Run("emails", func(t *testing.T) {
		email, err := store.GetEmail(ctx, tenantID, emailID)
		require.NoError(t, err)
		related, ok := email.Related(resource.QuoteKind)
		require.True(t, ok)
		assert.Equal(t, quoteID, related)

		summary, err := store.GetSummary(ctx, resource.EmailKind, tenantID, emailID)
		require.NoError(t, err)
		assert.Equal(t, resource.EmailKind, summary.Kind)
	})

	t.Run("users", func(t *testing.T) {
		user, err := store.GetUser(ctx, tenantID, userID)
		require.NoError(t, err)
		assert.Equal(t, resource.ClientUser, user.UserType)
		assert.True(t, user.IsOrganisationAdmin)
		assert.False(t, user.IsTenantAdmin)
	})

	t.Run("organisations", func(t *testing.T) {
		isDefault, err := store.IsDefaultOrganisation(ctx, tenantID, defaultOrg)
		require.NoError(t, err)
		assert.True(t, isDefault)

		isDefault, err = store.IsDefaultOrganisation(ctx, tenantID, orgA)
		require.NoError(t, err)
		assert.False(t, isDefault)

		got, err := store.DefaultOrganisationID(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, defaultOrg, got)

		org, err := store.GetSummary(ctx, resource.OrganisationKind, tenantID, orgA)
		require.NoError(t, err)
		assert.Equal(t, &orgA, org.OrganisationID)
	})

	t.Run("managed organisations", func(t *testing.T) {
		managed, err := store.ManagedOrganisationIDs(ctx, tenantID, defaultOrg)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{orgA, orgB}, managed)

		managed, err = store.ManagedOrganisationIDs(ctx, tenantID, orgB)
		require.NoError(t, err)
		assert.Empty(t, managed)
	})
}

func TestManagedOrganisationIDs_Cycle(t *testing.T) {
	var (
		store = NewStore()
		ctx   = context.Background()
		orgX  = uuid.MustParse("0a0a0a0a-0000-4000-8000-0000000000f1")
		orgY  = uuid.MustParse("0a0a0a0a-0000-4000-8000-0000000000f2")
	)
	store.AddOrganisation(&resource.OrganisationSummary{
		Summary:                resource.Summary{ID: orgX, TenantID: tenantID},
		ManagingOrganisationID: &orgY,
	})
	store.AddOrganisation(&resource.OrganisationSummary{
		Summary:                resource.Summary{ID: orgY, TenantID: tenantID},
		ManagingOrganisationID: &orgX,
	})

	managed, err := store.ManagedOrganisationIDs(ctx, tenantID, orgX)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{orgY}, managed)
}

func TestLoadFixtures_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "widgets: []\n"},
		{"unknown kind", "records:\n  - kind: widget\n    id: 4e4e4e4e-0000-4000-8000-000000000001\n"},
		{"invalid environment", "records:\n  - kind: quote\n    environment: moon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixtures(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultOrganisationID_NotFound(t *testing.T) {
	_, err := NewStore().DefaultOrganisationID(context.Background(), tenantID)
	assert.ErrorIs(t, err, internal.ErrResourceNotFound)
}

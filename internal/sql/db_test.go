package sql

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tenantID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	orgID    = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	childID  = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
	userID   = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	recordID = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return NewFromDB(logr.Discard(), conn), mock
}

func TestDB_GetSummary(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM records").
		WithArgs(tenantID.String(), recordID.String(), "quote").
		WillReturnRows(sqlmock.NewRows([]string{"kind", "record_id", "tenant_id", "organisation_id", "owner_user_id", "customer_id", "product_id", "environment", "parent_id"}).
			AddRow("quote", recordID.String(), tenantID.String(), orgID.String(), userID.String(), nil, nil, "production", nil))

	got, err := db.GetSummary(context.Background(), resource.QuoteKind, tenantID, recordID)
	require.NoError(t, err)

	assert.Equal(t, &resource.Summary{
		Kind:           resource.QuoteKind,
		ID:             recordID,
		TenantID:       tenantID,
		OrganisationID: &orgID,
		OwnerUserID:    &userID,
		Environment:    resource.Production,
	}, got)
}

func TestDB_GetSummary_NotFound(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM records").WillReturnError(sql.ErrNoRows)

	_, err := db.GetSummary(context.Background(), resource.ClaimKind, tenantID, recordID)
	assert.ErrorIs(t, err, internal.ErrResourceNotFound)
}

func TestDB_GetSummary_Organisation(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM organisations o").
		WithArgs(tenantID.String(), childID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"organisation_id", "tenant_id", "is_default", "managing_organisation_id"}).
			AddRow(childID.String(), tenantID.String(), false, orgID.String()))

	got, err := db.GetSummary(context.Background(), resource.OrganisationKind, tenantID, childID)
	require.NoError(t, err)

	assert.Equal(t, resource.OrganisationKind, got.Kind)
	assert.Equal(t, &childID, got.OrganisationID)
}

func TestDB_GetSummary_Role(t *testing.T) {
	db, mock := newTestDB(t)
	roleID := uuid.MustParse("00000000-0000-0000-0000-0000000000e1")

	mock.ExpectQuery("FROM roles").
		WithArgs(tenantID.String(), roleID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "tenant_id", "organisation_id"}).
			AddRow(roleID.String(), tenantID.String(), nil))

	got, err := db.GetSummary(context.Background(), resource.RoleKind, tenantID, roleID)
	require.NoError(t, err)

	assert.Equal(t, &resource.Summary{
		Kind:     resource.RoleKind,
		ID:       roleID,
		TenantID: tenantID,
	}, got)
}

func TestDB_GetEmail(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM records").
		WithArgs(tenantID.String(), recordID.String(), "email").
		WillReturnRows(sqlmock.NewRows([]string{"kind", "record_id", "tenant_id", "organisation_id", "owner_user_id", "customer_id", "product_id", "environment", "parent_id"}).
			AddRow("email", recordID.String(), tenantID.String(), nil, nil, nil, nil, "none", nil))
	mock.ExpectQuery("FROM email_relationships").
		WithArgs(recordID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"relationship_type", "from_kind", "from_id", "to_kind", "to_id"}).
			AddRow("user_message", "user", userID.String(), "email", recordID.String()))

	got, err := db.GetEmail(context.Background(), tenantID, recordID)
	require.NoError(t, err)

	related, ok := got.Related(resource.UserKind)
	require.True(t, ok)
	assert.Equal(t, userID, related)
}

func TestDB_GetUser(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("FROM users").
		WithArgs(tenantID.String(), userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "tenant_id", "organisation_id", "user_type", "customer_id", "is_tenant_admin", "is_organisation_admin"}).
			AddRow(userID.String(), tenantID.String(), nil, "client", nil, false, true))

	got, err := db.GetUser(context.Background(), tenantID, userID)
	require.NoError(t, err)

	assert.Equal(t, resource.ClientUser, got.UserType)
	assert.Nil(t, got.OrganisationID)
	assert.True(t, got.IsOrganisationAdmin)
}

func TestDB_Organisations(t *testing.T) {
	db, mock := newTestDB(t)
	ctx := context.Background()

	mock.ExpectQuery("AND   is_default").
		WithArgs(tenantID.String(), orgID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("WHERE tenant_id = \\$1\\s+AND   is_default").
		WithArgs(tenantID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"organisation_id"}).AddRow(orgID.String()))
	// the walk must terminate on a cycle in the hierarchy
	mock.ExpectQuery(`WITH RECURSIVE managed(?s).*CYCLE organisation_id SET is_cycle USING path.*WHERE NOT is_cycle`).
		WithArgs(tenantID.String(), orgID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"organisation_id"}).AddRow(childID.String()))

	isDefault, err := db.IsDefaultOrganisation(ctx, tenantID, orgID)
	require.NoError(t, err)
	assert.True(t, isDefault)

	defaultID, err := db.DefaultOrganisationID(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, orgID, defaultID)

	managed, err := db.ManagedOrganisationIDs(ctx, tenantID, orgID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{childID}, managed)
}

func TestPermissions(t *testing.T) {
	db, mock := newTestDB(t)
	perms := &Permissions{DB: db}
	subj := authz.NewPrincipal(tenantID, orgID, userID, resource.ClientUser, nil)

	mock.ExpectQuery("FROM user_roles").
		WithArgs(userID.String(), tenantID.String(), "{view_quotes,view_all_quotes}").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := perms.HasAnyPermission(context.Background(), subj, rbac.ViewQuotes, rbac.ViewAllQuotes)
	require.NoError(t, err)
	assert.True(t, ok)

	// no query is issued without permissions
	ok, err = perms.HasAnyPermission(context.Background(), subj)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, internal.ErrResourceNotFound},
		{"wrapped no rows", errors.Wrap(sql.ErrNoRows, "fetching"), internal.ErrResourceNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, internal.ErrResourceAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Error(tt.err), tt.want)
		})
	}

	var fkErr *internal.ForeignKeyError
	require.ErrorAs(t, Error(&pgconn.PgError{Code: "23503", Detail: "key is not present"}), &fkErr)
	assert.Equal(t, "key is not present", fkErr.Detail)

	other := errors.New("connection refused")
	assert.Equal(t, other, Error(other))
}

package authz

import (
	"context"
	"testing"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

var (
	testTenantID     = uuid.MustParse("6d7e3f0a-0000-4000-8000-000000000001")
	otherTenantID    = uuid.MustParse("6d7e3f0a-0000-4000-8000-000000000002")
	defaultOrgID     = uuid.MustParse("0a0a0a0a-0000-4000-8000-000000000001")
	orgA             = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000a")
	orgB             = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000b")
	userU            = uuid.MustParse("1b1b1b1b-0000-4000-8000-000000000001")
	userV            = uuid.MustParse("1b1b1b1b-0000-4000-8000-000000000002")
	customerC        = uuid.MustParse("2c2c2c2c-0000-4000-8000-000000000001")
	customerD        = uuid.MustParse("2c2c2c2c-0000-4000-8000-000000000002")
	rideProductID    = uuid.MustParse("3d3d3d3d-0000-4000-8000-000000000001")
	anotherProductID = uuid.MustParse("3d3d3d3d-0000-4000-8000-000000000002")
)

type fakeStore struct {
	records  map[uuid.UUID]*resource.Summary
	emails   map[uuid.UUID]*resource.EmailSummary
	defaults map[uuid.UUID]uuid.UUID
	managed  map[uuid.UUID][]uuid.UUID
	// err is returned by every call if set.
	err error
	// fetches counts record fetches.
	fetches int
}

func newFakeStore(records ...*resource.Summary) *fakeStore {
	s := &fakeStore{
		records:  make(map[uuid.UUID]*resource.Summary),
		emails:   make(map[uuid.UUID]*resource.EmailSummary),
		defaults: map[uuid.UUID]uuid.UUID{testTenantID: defaultOrgID},
		managed:  make(map[uuid.UUID][]uuid.UUID),
	}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (f *fakeStore) GetSummary(_ context.Context, kind resource.Kind, tenantID, id uuid.UUID) (*resource.Summary, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[id]
	if !ok || r.Kind != kind || r.TenantID != tenantID {
		return nil, internal.ErrResourceNotFound
	}
	return r, nil
}

func (f *fakeStore) GetEmail(_ context.Context, tenantID, id uuid.UUID) (*resource.EmailSummary, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.emails[id]
	if !ok || e.TenantID != tenantID {
		return nil, internal.ErrResourceNotFound
	}
	return e, nil
}

func (f *fakeStore) IsDefaultOrganisation(_ context.Context, tenantID, organisationID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.defaults[tenantID] == organisationID, nil
}

func (f *fakeStore) DefaultOrganisationID(_ context.Context, tenantID uuid.UUID) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id, ok := f.defaults[tenantID]
	if !ok {
		return uuid.Nil, internal.ErrResourceNotFound
	}
	return id, nil
}

func (f *fakeStore) ManagedOrganisationIDs(_ context.Context, _, organisationID uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.managed[organisationID], nil
}

// productVisibility grants tenant visibility to subjects of an organisation
// for a product.
type productVisibility struct {
	organisationID uuid.UUID
	productID      uuid.UUID
}

func (v productVisibility) GrantsTenantVisibility(subj *Principal, productID *uuid.UUID) bool {
	return subj.OrganisationID == v.organisationID && productID != nil && *productID == v.productID
}

func newTestAuthorizer(t *testing.T, store *fakeStore, opts ...func(*Options)) *Authorizer {
	t.Helper()

	o := Options{
		Logger:        logr.Discard(),
		Records:       store,
		Organisations: store,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return NewAuthorizer(o)
}

func clientIn(organisationID uuid.UUID, perms ...rbac.Permission) *Principal {
	return NewPrincipal(testTenantID, organisationID, userU, resource.ClientUser, nil, perms...)
}

func customerOf(customerID uuid.UUID, perms ...rbac.Permission) *Principal {
	return NewPrincipal(testTenantID, orgA, userU, resource.CustomerUser, &customerID, perms...)
}

func withSubject(subj *Principal) context.Context {
	return AddSubjectToContext(context.Background(), subj)
}

func quote(organisationID *uuid.UUID, owner *uuid.UUID, env resource.Environment) *resource.Summary {
	return &resource.Summary{
		Kind:           resource.QuoteKind,
		ID:             uuid.New(),
		TenantID:       testTenantID,
		OrganisationID: organisationID,
		OwnerUserID:    owner,
		Environment:    env,
	}
}

/*
Package inmem implements the read models consulted by the authorizers in
memory using purely Go constructs. In theory, they can be swapped out for
read models implemented using other tech, e.g. databases.
*/
package inmem

import (
	"bytes"
	"context"
	"slices"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
)

// Store is an in-memory store of record summaries, organisations and users.
// It is safe for concurrent use.
type Store struct {
	records       *internal.SafeMap[uuid.UUID, *resource.Summary]
	emails        *internal.SafeMap[uuid.UUID, *resource.EmailSummary]
	organisations *internal.SafeMap[uuid.UUID, *resource.OrganisationSummary]
	users         *internal.SafeMap[uuid.UUID, *resource.UserSummary]
}

func NewStore() *Store {
	return &Store{
		records:       internal.NewSafeMap[uuid.UUID, *resource.Summary](),
		emails:        internal.NewSafeMap[uuid.UUID, *resource.EmailSummary](),
		organisations: internal.NewSafeMap[uuid.UUID, *resource.OrganisationSummary](),
		users:         internal.NewSafeMap[uuid.UUID, *resource.UserSummary](),
	}
}

// AddRecord adds a record summary. Organisations, users and emails should be
// added with their dedicated methods.
func (s *Store) AddRecord(r *resource.Summary) {
	s.records.Set(r.ID, r)
}

func (s *Store) AddEmail(e *resource.EmailSummary) {
	e.Kind = resource.EmailKind
	s.emails.Set(e.ID, e)
}

// AddOrganisation adds an organisation. An organisation belongs to itself.
func (s *Store) AddOrganisation(o *resource.OrganisationSummary) {
	o.Kind = resource.OrganisationKind
	o.OrganisationID = &o.ID
	s.organisations.Set(o.ID, o)
}

func (s *Store) AddUser(u *resource.UserSummary) {
	u.Kind = resource.UserKind
	s.users.Set(u.ID, u)
}

// GetSummary retrieves the summary of a record of the given kind.
func (s *Store) GetSummary(_ context.Context, kind resource.Kind, tenantID, id uuid.UUID) (*resource.Summary, error) {
	var summary *resource.Summary
	switch kind {
	case resource.OrganisationKind:
		if o, ok := s.organisations.Get(id); ok {
			summary = &o.Summary
		}
	case resource.UserKind:
		if u, ok := s.users.Get(id); ok {
			summary = &u.Summary
		}
	case resource.EmailKind:
		if e, ok := s.emails.Get(id); ok {
			summary = &e.Summary
		}
	default:
		if r, ok := s.records.Get(id); ok && r.Kind == kind {
			summary = r
		}
	}
	if summary == nil || summary.TenantID != tenantID {
		return nil, internal.ErrResourceNotFound
	}
	return summary, nil
}

func (s *Store) GetEmail(_ context.Context, tenantID, id uuid.UUID) (*resource.EmailSummary, error) {
	e, ok := s.emails.Get(id)
	if !ok || e.TenantID != tenantID {
		return nil, internal.ErrResourceNotFound
	}
	return e, nil
}

func (s *Store) GetUser(_ context.Context, tenantID, id uuid.UUID) (*resource.UserSummary, error) {
	u, ok := s.users.Get(id)
	if !ok || u.TenantID != tenantID {
		return nil, internal.ErrResourceNotFound
	}
	return u, nil
}

func (s *Store) IsDefaultOrganisation(_ context.Context, tenantID, organisationID uuid.UUID) (bool, error) {
	o, ok := s.organisations.Get(organisationID)
	if !ok || o.TenantID != tenantID {
		return false, nil
	}
	return o.IsDefault, nil
}

func (s *Store) DefaultOrganisationID(_ context.Context, tenantID uuid.UUID) (uuid.UUID, error) {
	for _, o := range s.organisations.Values() {
		if o.TenantID == tenantID && o.IsDefault {
			return o.ID, nil
		}
	}
	return uuid.Nil, internal.ErrResourceNotFound
}

// ManagedOrganisationIDs returns the organisations managed by the
// organisation, directly or through intermediate managing organisations,
// ordered by depth and then id. Cycles in the hierarchy are ignored.
func (s *Store) ManagedOrganisationIDs(_ context.Context, tenantID, organisationID uuid.UUID) ([]uuid.UUID, error) {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, o := range s.organisations.Values() {
		if o.TenantID == tenantID && o.ManagingOrganisationID != nil {
			children[*o.ManagingOrganisationID] = append(children[*o.ManagingOrganisationID], o.ID)
		}
	}
	var (
		managed []uuid.UUID
		level   = []uuid.UUID{organisationID}
		seen    = map[uuid.UUID]bool{organisationID: true}
	)
	for len(level) > 0 {
		var next []uuid.UUID
		for _, parent := range level {
			for _, id := range children[parent] {
				if seen[id] {
					continue
				}
				seen[id] = true
				next = append(next, id)
			}
		}
		slices.SortFunc(next, compareIDs)
		managed = append(managed, next...)
		level = next
	}
	return managed, nil
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

package inmem

import (
	"fmt"
	"io"
	"os"

	"github.com/covercore/covercore/internal/resource"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

type (
	// Fixtures is the YAML representation of the contents of a store.
	Fixtures struct {
		Organisations []OrganisationFixture `yaml:"organisations"`
		Users         []UserFixture         `yaml:"users"`
		Records       []RecordFixture       `yaml:"records"`
		Emails        []EmailFixture        `yaml:"emails"`
	}

	OrganisationFixture struct {
		ID        uuid.UUID  `yaml:"id"`
		Tenant    uuid.UUID  `yaml:"tenant"`
		ManagedBy *uuid.UUID `yaml:"managed_by"`
		IsDefault bool       `yaml:"default"`
	}

	UserFixture struct {
		ID                  uuid.UUID         `yaml:"id"`
		Tenant              uuid.UUID         `yaml:"tenant"`
		Organisation        *uuid.UUID        `yaml:"organisation"`
		Type                resource.UserType `yaml:"type"`
		Customer            *uuid.UUID        `yaml:"customer"`
		IsTenantAdmin       bool              `yaml:"tenant_admin"`
		IsOrganisationAdmin bool              `yaml:"organisation_admin"`
	}

	RecordFixture struct {
		Kind         resource.Kind        `yaml:"kind"`
		ID           uuid.UUID            `yaml:"id"`
		Tenant       uuid.UUID            `yaml:"tenant"`
		Organisation *uuid.UUID           `yaml:"organisation"`
		Owner        *uuid.UUID           `yaml:"owner"`
		Customer     *uuid.UUID           `yaml:"customer"`
		Product      *uuid.UUID           `yaml:"product"`
		Environment  resource.Environment `yaml:"environment"`
		Parent       *uuid.UUID           `yaml:"parent"`
	}

	EmailFixture struct {
		RecordFixture `yaml:",inline"`
		Relationships []RelationshipFixture `yaml:"relationships"`
	}

	RelationshipFixture struct {
		Type     resource.RelationshipType `yaml:"type"`
		FromKind resource.Kind             `yaml:"from_kind"`
		FromID   uuid.UUID                 `yaml:"from_id"`
		ToKind   resource.Kind             `yaml:"to_kind"`
		ToID     uuid.UUID                 `yaml:"to_id"`
	}
)

// LoadFixturesFile populates a new store from a YAML fixtures file.
func LoadFixturesFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFixtures(f)
}

// LoadFixtures populates a new store from YAML fixtures.
func LoadFixtures(r io.Reader) (*Store, error) {
	var fixtures Fixtures
	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	store := NewStore()
	for _, o := range fixtures.Organisations {
		store.AddOrganisation(&resource.OrganisationSummary{
			Summary:                resource.Summary{ID: o.ID, TenantID: o.Tenant},
			ManagingOrganisationID: o.ManagedBy,
			IsDefault:              o.IsDefault,
		})
	}
	for _, u := range fixtures.Users {
		store.AddUser(&resource.UserSummary{
			Summary: resource.Summary{
				ID:             u.ID,
				TenantID:       u.Tenant,
				OrganisationID: u.Organisation,
				CustomerID:     u.Customer,
			},
			UserType:            u.Type,
			IsTenantAdmin:       u.IsTenantAdmin,
			IsOrganisationAdmin: u.IsOrganisationAdmin,
		})
	}
	for _, r := range fixtures.Records {
		if _, err := resource.ParseKind(string(r.Kind)); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		store.AddRecord(r.summary())
	}
	for _, e := range fixtures.Emails {
		email := &resource.EmailSummary{Summary: *e.summary()}
		for _, rel := range e.Relationships {
			email.Relationships = append(email.Relationships, resource.Relationship(rel))
		}
		store.AddEmail(email)
	}
	return store, nil
}

func (r RecordFixture) summary() *resource.Summary {
	return &resource.Summary{
		Kind:           r.Kind,
		ID:             r.ID,
		TenantID:       r.Tenant,
		OrganisationID: r.Organisation,
		OwnerUserID:    r.Owner,
		CustomerID:     r.Customer,
		ProductID:      r.Product,
		Environment:    r.Environment,
		ParentID:       r.Parent,
	}
}

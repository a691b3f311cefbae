// Package resource contains code common to all resources (quotes, policies,
// claims, organisations, users, etc)
package resource

import (
	"github.com/google/uuid"
)

type (
	// Summary is the minimal projection of a record needed to make an
	// authorization decision. It is fetched fresh for every check.
	Summary struct {
		Kind           Kind
		ID             uuid.UUID
		TenantID       uuid.UUID
		OrganisationID *uuid.UUID
		OwnerUserID    *uuid.UUID
		CustomerID     *uuid.UUID
		ProductID      *uuid.UUID
		Environment    Environment
		// ParentID identifies the owning record of a derived record, e.g.
		// the quote of a quote version.
		ParentID *uuid.UUID
	}

	// Relationship links an email to another entity.
	Relationship struct {
		Type     RelationshipType
		FromKind Kind
		FromID   uuid.UUID
		ToKind   Kind
		ToID     uuid.UUID
	}

	RelationshipType string

	// EmailSummary is the projection of an email, which also carries its
	// relationships to senders, recipients and the records it concerns.
	EmailSummary struct {
		Summary
		Relationships []Relationship
	}

	// UserSummary is the projection of a user account.
	UserSummary struct {
		Summary
		UserType            UserType
		IsTenantAdmin       bool
		IsOrganisationAdmin bool
	}

	// OrganisationSummary is the projection of an organisation.
	OrganisationSummary struct {
		Summary
		ManagingOrganisationID *uuid.UUID
		IsDefault              bool
	}

	// UserType classifies a user account.
	UserType string
)

const (
	MasterUser   UserType = "master"
	ClientUser   UserType = "client"
	CustomerUser UserType = "customer"
)

const (
	CustomerMessageRelationship  RelationshipType = "customer_message"
	UserMessageRelationship      RelationshipType = "user_message"
	QuoteMessageRelationship     RelationshipType = "quote_message"
	PolicyMessageRelationship    RelationshipType = "policy_message"
	ClaimMessageRelationship     RelationshipType = "claim_message"
	MessageSenderRelationship    RelationshipType = "message_sender"
	MessageRecipientRelationship RelationshipType = "message_recipient"
)

// Related returns the first entity of the given kind that the email is
// linked to, in either direction.
func (e *EmailSummary) Related(kind Kind) (uuid.UUID, bool) {
	for _, r := range e.Relationships {
		if r.FromKind == kind && r.ToKind == EmailKind {
			return r.FromID, true
		}
		if r.ToKind == kind && r.FromKind == EmailKind {
			return r.ToID, true
		}
	}
	return uuid.Nil, false
}

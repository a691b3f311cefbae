package authz

import (
	"context"

	"github.com/google/uuid"
)

// EntityAuthorizer authorizes the lifecycle of one type of administrative
// entity (organisations, roles and users). Each method returns nil if the
// subject in the context is authorized.
type EntityAuthorizer interface {
	// RestrictFilters narrows a list query to the entities the subject may
	// view.
	RestrictFilters(ctx context.Context, f Filters) (Filters, error)
	// AuthorizeViewAny determines whether the subject may view any entity of
	// the type.
	AuthorizeViewAny(ctx context.Context) error
	AuthorizeView(ctx context.Context, id uuid.UUID) error
	// AuthorizeCreate determines whether the subject may create an entity
	// within the organisation.
	AuthorizeCreate(ctx context.Context, organisationID uuid.UUID) error
	AuthorizeModify(ctx context.Context, id uuid.UUID) error
	AuthorizeDelete(ctx context.Context, id uuid.UUID) error
}

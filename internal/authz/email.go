package authz

import (
	"context"

	"github.com/covercore/covercore/internal/resource"
)

// emailRecordKinds are the kinds of record an email may concern, in the order
// in which they are consulted.
var emailRecordKinds = []resource.Kind{
	resource.QuoteKind,
	resource.PolicyKind,
	resource.ClaimKind,
}

// emailTarget derives the ownership of an email. Fields set directly on the
// email take precedence; any missing are taken from the customer and user it
// is linked to, and then from the quote, policy or claim it concerns.
func (a *Authorizer) emailTarget(ctx context.Context, email *resource.EmailSummary) (target, error) {
	t := targetOf(&email.Summary)
	if t.CustomerID == nil {
		if id, ok := email.Related(resource.CustomerKind); ok {
			t.CustomerID = &id
		}
	}
	if t.OwnerUserID == nil {
		if id, ok := email.Related(resource.UserKind); ok {
			t.OwnerUserID = &id
		}
	}
	if t.CustomerID != nil && t.OwnerUserID != nil && t.OrganisationID != nil {
		return t, nil
	}
	for _, kind := range emailRecordKinds {
		id, ok := email.Related(kind)
		if !ok {
			continue
		}
		related, err := a.Records.GetSummary(ctx, kind, email.TenantID, id)
		if err != nil {
			return target{}, notFound(err, kind, id)
		}
		if t.CustomerID == nil {
			t.CustomerID = related.CustomerID
		}
		if t.OwnerUserID == nil {
			t.OwnerUserID = related.OwnerUserID
		}
		if t.OrganisationID == nil {
			t.OrganisationID = related.OrganisationID
		}
		if t.ProductID == nil {
			t.ProductID = related.ProductID
		}
		break
	}
	return t, nil
}

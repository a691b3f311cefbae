package resource

import (
	"fmt"
	"slices"
)

// Kind identifies a family of resource, e.g. quote, policy, claim.
type Kind string

const (
	QuoteKind             Kind = "quote"
	QuoteVersionKind      Kind = "quote_version"
	PolicyKind            Kind = "policy"
	PolicyTransactionKind Kind = "policy_transaction"
	ClaimKind             Kind = "claim"
	ClaimVersionKind      Kind = "claim_version"
	CustomerKind          Kind = "customer"
	ProductKind           Kind = "product"
	PortalKind            Kind = "portal"
	TenantKind            Kind = "tenant"
	OrganisationKind      Kind = "organisation"
	UserKind              Kind = "user"
	RoleKind              Kind = "role"
	ReportKind            Kind = "report"
	InvoiceKind           Kind = "invoice"
	CreditNoteKind        Kind = "credit_note"
	BillKind              Kind = "bill"
	PaymentKind           Kind = "payment"
	EmailKind             Kind = "email"
)

// Kinds lists every known resource kind.
var Kinds = []Kind{
	QuoteKind,
	QuoteVersionKind,
	PolicyKind,
	PolicyTransactionKind,
	ClaimKind,
	ClaimVersionKind,
	CustomerKind,
	ProductKind,
	PortalKind,
	TenantKind,
	OrganisationKind,
	UserKind,
	RoleKind,
	ReportKind,
	InvoiceKind,
	CreditNoteKind,
	BillKind,
	PaymentKind,
	EmailKind,
}

func (k Kind) String() string { return string(k) }

// ParseKind parses a kind from its string form, rejecting unknown kinds.
func ParseKind(s string) (Kind, error) {
	if k := Kind(s); slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown resource kind: %q", s)
}

package rbac

import (
	"github.com/covercore/covercore/internal/resource"
)

type (
	// Ladder is the three tiers of permission for one action on one family of
	// resource, from weakest to strongest:
	//
	//   - Ownership permits access to records the subject owns, or, for a
	//     customer, records belonging to that customer.
	//   - Organisation permits access to any record in the subject's
	//     organisation.
	//   - Tenant permits access to any record in the subject's tenant.
	//
	// A tier set to NoPermission is not available for the family.
	Ladder struct {
		Ownership    Permission
		Organisation Permission
		Tenant       Permission
	}

	// Family binds a resource kind to its ladders.
	Family struct {
		Kind   resource.Kind
		View   Ladder
		Modify Ladder
		// Environment is true if records of the family belong to a
		// deployment environment and are subject to the environment gate.
		Environment bool
		// Parent is set for derived kinds, which are authorized by resolving
		// and authorizing their parent record instead.
		Parent resource.Kind
	}
)

// Permissions returns the tiers that are available, strongest first.
func (l Ladder) Permissions() []Permission {
	var perms []Permission
	for _, p := range []Permission{l.Tenant, l.Organisation, l.Ownership} {
		if p != NoPermission {
			perms = append(perms, p)
		}
	}
	return perms
}

// Strongest returns the strongest available tier.
func (l Ladder) Strongest() Permission {
	if perms := l.Permissions(); len(perms) > 0 {
		return perms[0]
	}
	return NoPermission
}

var (
	quoteView      = Ladder{ViewQuotes, ViewAllQuotes, ViewAllQuotesFromAllOrganisations}
	quoteModify    = Ladder{ManageQuotes, ManageAllQuotes, ManageAllQuotesForAllOrganisations}
	policyView     = Ladder{ViewPolicies, ViewAllPolicies, ViewAllPoliciesFromAllOrganisations}
	policyModify   = Ladder{ManagePolicies, ManageAllPolicies, ManageAllPoliciesForAllOrganisations}
	claimView      = Ladder{ViewClaims, ViewAllClaims, ViewAllClaimsFromAllOrganisations}
	claimModify    = Ladder{ManageClaims, ManageAllClaims, ManageAllClaimsForAllOrganisations}
	customerView   = Ladder{ViewCustomers, ViewAllCustomers, ViewAllCustomersFromAllOrganisations}
	customerModify = Ladder{ManageCustomers, ManageAllCustomers, ManageAllCustomersForAllOrganisations}
	messageView    = Ladder{ViewMessages, ViewAllMessages, ViewAllMessagesFromAllOrganisations}
	messageModify  = Ladder{ManageMessages, ManageAllMessages, ManageAllMessagesForAllOrganisations}
	accountingView = Ladder{
		ViewAccountingTransactions,
		ViewAllAccountingTransactions,
		ViewAllAccountingTransactionsFromAllOrganisations,
	}
	accountingModify = Ladder{
		ManageAccountingTransactions,
		ManageAllAccountingTransactions,
		ManageAllAccountingTransactionsForAllOrganisations,
	}
)

// families is the table of every resource family and its ladders.
var families = map[resource.Kind]Family{
	resource.QuoteKind: {
		View: quoteView, Modify: quoteModify, Environment: true,
	},
	resource.QuoteVersionKind: {
		View: quoteView, Modify: quoteModify, Environment: true, Parent: resource.QuoteKind,
	},
	resource.PolicyKind: {
		View: policyView, Modify: policyModify, Environment: true,
	},
	resource.PolicyTransactionKind: {
		View: policyView, Modify: policyModify, Environment: true, Parent: resource.PolicyKind,
	},
	resource.ClaimKind: {
		View: claimView, Modify: claimModify, Environment: true,
	},
	resource.ClaimVersionKind: {
		View: claimView, Modify: claimModify, Environment: true, Parent: resource.ClaimKind,
	},
	resource.CustomerKind: {
		View: customerView, Modify: customerModify, Environment: true,
	},
	resource.EmailKind: {
		View: messageView, Modify: messageModify, Environment: true,
	},
	resource.InvoiceKind: {
		View: accountingView, Modify: accountingModify, Environment: true,
	},
	resource.CreditNoteKind: {
		View: accountingView, Modify: accountingModify, Environment: true,
	},
	resource.BillKind: {
		View: accountingView, Modify: accountingModify, Environment: true,
	},
	resource.PaymentKind: {
		View: accountingView, Modify: accountingModify, Environment: true,
	},
	resource.ProductKind: {
		View:   Ladder{Organisation: ViewProducts},
		Modify: Ladder{Organisation: ManageProducts},
	},
	resource.PortalKind: {
		View:   Ladder{Organisation: ViewPortals, Tenant: ViewAllPortals},
		Modify: Ladder{Organisation: ManagePortals, Tenant: ManageAllPortals},
	},
	resource.TenantKind: {
		View:   Ladder{Tenant: ViewTenants},
		Modify: Ladder{Tenant: ManageTenants},
	},
	resource.ReportKind: {
		View:   Ladder{Organisation: ViewReports, Tenant: ViewAllReports},
		Modify: Ladder{Organisation: ManageReports, Tenant: ManageAllReports},
	},
	resource.OrganisationKind: {
		View:   Ladder{Organisation: ViewOrganisations, Tenant: ViewAllOrganisations},
		Modify: Ladder{Organisation: ManageOrganisations, Tenant: ManageAllOrganisations},
	},
	resource.UserKind: {
		View:   Ladder{Organisation: ViewUsers, Tenant: ViewUsersFromOtherOrganisations},
		Modify: Ladder{Organisation: ManageUsers, Tenant: ManageUsersForOtherOrganisations},
	},
	resource.RoleKind: {
		View:   Ladder{Organisation: ViewRoles, Tenant: ViewRolesFromAllOrganisations},
		Modify: Ladder{Organisation: ManageRoles, Tenant: ManageRolesForAllOrganisations},
	},
}

func init() {
	for kind, f := range families {
		f.Kind = kind
		families[kind] = f
	}
}

// FamilyOf returns the family of the given kind.
func FamilyOf(kind resource.Kind) (Family, bool) {
	f, ok := families[kind]
	return f, ok
}

// ElevatedCustomerPermissions are the permissions that permit a subject to
// view a customer it does not own.
var ElevatedCustomerPermissions = []Permission{
	ViewAllCustomers,
	ViewAllCustomersFromAllOrganisations,
	ManageAllCustomers,
	ManageAllCustomersForAllOrganisations,
}

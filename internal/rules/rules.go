// Package rules implements the cross-field pass: business invariants
// evaluated over the whole record that the structural schema cannot
// express. Rules are independent predicates; they run in any order
// and none depends on another's outcome.
package rules

import (
	"github.com/facturio/billpipe/internal/catalog"
	"github.com/facturio/billpipe/internal/model"
)

// Rule inspects a structurally valid record and reports zero or more
// issues using the same shape as the structural pass, so both lists
// merge uniformly.
type Rule struct {
	Name  string
	Check func(*model.InvoiceRecord) model.IssueList
}

// All is the active rule set. Adding a rule means appending here;
// nothing else changes.
var All = []Rule{
	{Name: "deferred-payment-due-date", Check: deferredPaymentDueDate},
	{Name: "note-related-documents", Check: noteRelatedDocuments},
	{Name: "customer-company-or-names", Check: customerCompanyOrNames},
}

// Evaluate runs every rule and concatenates their issues. It assumes
// the structural pass already succeeded.
func Evaluate(rec *model.InvoiceRecord) model.IssueList {
	var issues model.IssueList
	for _, r := range All {
		issues = append(issues, r.Check(rec)...)
	}
	return issues
}

func deferredPaymentDueDate(rec *model.InvoiceRecord) model.IssueList {
	var issues model.IssueList
	if catalog.IsDeferred(rec.PaymentForm) && rec.PaymentDueDate == "" {
		issues.Add("payment_due_date", model.KindRequired,
			"payment due date is required for deferred payment")
	}
	return issues
}

func noteRelatedDocuments(rec *model.InvoiceRecord) model.IssueList {
	var issues model.IssueList
	if catalog.IsNote(rec.Document) && len(rec.RelatedDocuments) == 0 {
		issues.Add("related_documents", model.KindRequired,
			"credit and debit notes must reference a prior document")
	}
	return issues
}

func customerCompanyOrNames(rec *model.InvoiceRecord) model.IssueList {
	var issues model.IssueList
	if rec.Customer.Company == "" && rec.Customer.Names == "" {
		issues.Add("customer", model.KindRequired,
			"customer must have either a company name or personal names")
	}
	return issues
}

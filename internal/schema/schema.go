// Package schema implements the structural validation pass: per-field
// type, shape, range and pattern checks over an InvoiceRecord. It
// never looks across fields; conditional requirements live in the
// rules package so either pass can change without touching the other.
package schema

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/facturio/billpipe/internal/catalog"
	"github.com/facturio/billpipe/internal/decimal"
	"github.com/facturio/billpipe/internal/model"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
)

const (
	maxReferenceCode  = 20
	maxObservation    = 250
	minItemName       = 3
	maxItemName       = 200
	minIdentification = 5
	maxIdentification = 20
)

// Validate runs every structural check and returns the issues found,
// in field order. A nil/empty result means the record is structurally
// sound. Pure: the record is never modified.
func Validate(rec *model.InvoiceRecord) model.IssueList {
	var issues model.IssueList

	if !catalog.IsDocumentType(rec.Document) {
		issues.Add("document", model.KindInvalidEnum, "unknown document type")
	}
	if rec.NumberingRangeID <= 0 {
		issues.Add("numbering_range_id", model.KindNotPositive, "numbering range is required")
	}
	if rec.ReferenceCode == "" {
		issues.Add("reference_code", model.KindRequired, "reference code is required")
	} else if len(rec.ReferenceCode) > maxReferenceCode {
		issues.Add("reference_code", model.KindTooLong,
			fmt.Sprintf("reference code must be at most %d characters", maxReferenceCode))
	}
	if len(rec.Observation) > maxObservation {
		issues.Add("observation", model.KindTooLong,
			fmt.Sprintf("observation must be at most %d characters", maxObservation))
	}
	if !catalog.IsPaymentForm(rec.PaymentForm) {
		issues.Add("payment_form", model.KindInvalidEnum, "unknown payment form")
	}
	if rec.PaymentDueDate != "" && !datePattern.MatchString(rec.PaymentDueDate) {
		issues.Add("payment_due_date", model.KindPattern, "payment due date must be YYYY-MM-DD")
	}
	if !catalog.IsPaymentMethod(rec.PaymentMethodCode) {
		issues.Add("payment_method_code", model.KindInvalidEnum, "unknown payment method code")
	}

	if rec.BillingPeriod != nil {
		validatePeriod(rec.BillingPeriod, &issues)
	}
	validateCustomer(&rec.Customer, &issues)

	if len(rec.Items) == 0 {
		issues.Add("items", model.KindRequired, "at least one item is required")
	}
	for i := range rec.Items {
		validateItem(&rec.Items[i], fmt.Sprintf("items.%d", i), &issues)
	}
	for i, rd := range rec.RelatedDocuments {
		path := fmt.Sprintf("related_documents.%d", i)
		if rd.Number == "" {
			issues.Add(path+".number", model.KindRequired, "related document number is required")
		}
		if rd.IssueDate != "" && !datePattern.MatchString(rd.IssueDate) {
			issues.Add(path+".issue_date", model.KindPattern, "issue date must be YYYY-MM-DD")
		}
	}

	return issues
}

func validatePeriod(p *model.BillingPeriod, issues *model.IssueList) {
	if !datePattern.MatchString(p.StartDate) {
		issues.Add("billing_period.start_date", model.KindPattern, "start date must be YYYY-MM-DD")
	}
	if !timePattern.MatchString(p.StartTime) {
		issues.Add("billing_period.start_time", model.KindPattern, "start time must be HH:MM:SS")
	}
	if !datePattern.MatchString(p.EndDate) {
		issues.Add("billing_period.end_date", model.KindPattern, "end date must be YYYY-MM-DD")
	}
	if !timePattern.MatchString(p.EndTime) {
		issues.Add("billing_period.end_time", model.KindPattern, "end time must be HH:MM:SS")
	}
}

func validateCustomer(c *model.Customer, issues *model.IssueList) {
	if len(c.Identification) < minIdentification {
		issues.Add("customer.identification", model.KindTooShort,
			fmt.Sprintf("identification must be at least %d characters", minIdentification))
	} else if len(c.Identification) > maxIdentification {
		issues.Add("customer.identification", model.KindTooLong,
			fmt.Sprintf("identification must be at most %d characters", maxIdentification))
	}
	if c.DV != "" && len(c.DV) != 1 {
		issues.Add("customer.dv", model.KindPattern, "check digit must be a single character")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			issues.Add("customer.email", model.KindInvalidEmail, "email address is not valid")
		}
	}
	if !catalog.IsLegalOrganization(c.LegalOrganizationID) {
		issues.Add("customer.legal_organization_id", model.KindInvalidEnum, "unknown legal organization")
	}
	if c.TributeID <= 0 {
		issues.Add("customer.tribute_id", model.KindNotPositive, "tribute is required")
	}
	if !catalog.IsIdentificationDocument(c.IdentificationDocumentID) {
		issues.Add("customer.identification_document_id", model.KindInvalidEnum, "unknown identification document")
	}
	if c.MunicipalityID < 0 {
		issues.Add("customer.municipality_id", model.KindNotPositive, "municipality must be a positive id")
	}
}

func validateItem(item *model.LineItem, path string, issues *model.IssueList) {
	if item.CodeReference == "" {
		issues.Add(path+".code_reference", model.KindRequired, "code reference is required")
	}
	if len(item.Name) < minItemName {
		issues.Add(path+".name", model.KindTooShort,
			fmt.Sprintf("name must be at least %d characters", minItemName))
	} else if len(item.Name) > maxItemName {
		issues.Add(path+".name", model.KindTooLong,
			fmt.Sprintf("name must be at most %d characters", maxItemName))
	}
	if item.Quantity <= 0 {
		issues.Add(path+".quantity", model.KindNotPositive, "quantity must be positive")
	}
	if item.DiscountRate < 0 || item.DiscountRate > 100 {
		issues.Add(path+".discount_rate", model.KindOutOfRange, "discount rate must be between 0 and 100")
	}
	if item.Price <= 0 {
		issues.Add(path+".price", model.KindNotPositive, "price must be positive")
	}
	if !decimal.IsRateString(item.TaxRate) {
		issues.Add(path+".tax_rate", model.KindPattern, "tax rate must be a decimal with up to 2 fraction digits")
	} else if d, err := decimal.ParseRate(item.TaxRate); err == nil && !decimal.InPercentRange(d) {
		issues.Add(path+".tax_rate", model.KindOutOfRange, "tax rate must be between 0 and 100")
	}
	if item.UnitMeasureID <= 0 {
		issues.Add(path+".unit_measure_id", model.KindNotPositive, "unit measure is required")
	}
	if item.StandardCodeID <= 0 {
		issues.Add(path+".standard_code_id", model.KindNotPositive, "standard code is required")
	}
	if item.IsExcluded != 0 && item.IsExcluded != 1 {
		issues.Add(path+".is_excluded", model.KindInvalidEnum, "is_excluded must be 0 or 1")
	}
	if item.TributeID <= 0 {
		issues.Add(path+".tribute_id", model.KindNotPositive, "tribute is required")
	}
	for j, wt := range item.WithholdingTaxes {
		wtPath := fmt.Sprintf("%s.withholding_taxes.%d", path, j)
		if !catalog.IsWithholdingCode(wt.Code) {
			issues.Add(wtPath+".code", model.KindInvalidEnum, "unknown withholding tax code")
		}
		if !decimal.IsRateString(wt.Rate) {
			issues.Add(wtPath+".withholding_tax_rate", model.KindPattern,
				"withholding tax rate must be a decimal with up to 2 fraction digits")
		} else if d, err := decimal.ParseRate(wt.Rate); err == nil && !decimal.InPercentRange(d) {
			issues.Add(wtPath+".withholding_tax_rate", model.KindOutOfRange,
				"withholding tax rate must be between 0 and 100")
		}
	}
}

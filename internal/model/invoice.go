// Package model defines the invoice record that moves through the
// validation pipeline, the issue and field-error shapes every layer
// reports with, and the closed failure taxonomy.
package model

// InvoiceRecord is the candidate built from form state for one
// submission attempt. Rate fields stay strings here; the normalizer
// converts them to exact decimals when building the wire payload.
type InvoiceRecord struct {
	Document          string            `json:"document"`
	NumberingRangeID  int               `json:"numbering_range_id"`
	ReferenceCode     string            `json:"reference_code"`
	Observation       string            `json:"observation,omitempty"`
	PaymentForm       string            `json:"payment_form"`
	PaymentDueDate    string            `json:"payment_due_date,omitempty"`
	PaymentMethodCode string            `json:"payment_method_code"`
	BillingPeriod     *BillingPeriod    `json:"billing_period,omitempty"`
	Customer          Customer          `json:"customer"`
	Items             []LineItem        `json:"items"`
	RelatedDocuments  []RelatedDocument `json:"related_documents,omitempty"`
}

// BillingPeriod bounds the period the invoice covers. Dates are
// YYYY-MM-DD, times HH:MM:SS.
type BillingPeriod struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// Customer identifies the invoice recipient. Either Company or Names
// must be present; that invariant belongs to the rule pass, not to any
// single field.
type Customer struct {
	Identification           string `json:"identification"`
	DV                       string `json:"dv,omitempty"`
	Company                  string `json:"company,omitempty"`
	TradeName                string `json:"trade_name,omitempty"`
	Names                    string `json:"names,omitempty"`
	Address                  string `json:"address,omitempty"`
	Email                    string `json:"email,omitempty"`
	Phone                    string `json:"phone,omitempty"`
	LegalOrganizationID      string `json:"legal_organization_id"`
	TributeID                int    `json:"tribute_id"`
	IdentificationDocumentID string `json:"identification_document_id"`
	MunicipalityID           int    `json:"municipality_id,omitempty"`
}

// LineItem is one billed position. IsExcluded carries the service's
// 0/1 encoding for VAT-excluded goods.
type LineItem struct {
	CodeReference    string           `json:"code_reference"`
	Name             string           `json:"name"`
	Quantity         int              `json:"quantity"`
	DiscountRate     float64          `json:"discount_rate"`
	Price            float64          `json:"price"`
	TaxRate          string           `json:"tax_rate"`
	UnitMeasureID    int              `json:"unit_measure_id"`
	StandardCodeID   int              `json:"standard_code_id"`
	IsExcluded       int              `json:"is_excluded"`
	TributeID        int              `json:"tribute_id"`
	WithholdingTaxes []WithholdingTax `json:"withholding_taxes"`
}

// WithholdingTax applies one retention code to a line item.
type WithholdingTax struct {
	Code string `json:"code"`
	Rate string `json:"withholding_tax_rate"`
}

// RelatedDocument references a prior invoice; credit and debit notes
// must carry at least one.
type RelatedDocument struct {
	Code      string `json:"code"`
	IssueDate string `json:"issue_date"`
	Number    string `json:"number"`
}

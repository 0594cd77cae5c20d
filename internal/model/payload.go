package model

import "encoding/json"

// TransmissionPayload is the wire-ready shape sent to the remote
// invoice service. It matches InvoiceRecord except that the rate
// fields are numeric: json.Number keeps the exact decimal rendering
// produced by the normalizer, so the wire sees a bare number with no
// binary-float rounding.
type TransmissionPayload struct {
	Document          string            `json:"document"`
	NumberingRangeID  int               `json:"numbering_range_id"`
	ReferenceCode     string            `json:"reference_code"`
	Observation       string            `json:"observation,omitempty"`
	PaymentForm       string            `json:"payment_form"`
	PaymentDueDate    string            `json:"payment_due_date,omitempty"`
	PaymentMethodCode string            `json:"payment_method_code"`
	BillingPeriod     *BillingPeriod    `json:"billing_period,omitempty"`
	Customer          Customer          `json:"customer"`
	Items             []PayloadItem     `json:"items"`
	RelatedDocuments  []RelatedDocument `json:"related_documents,omitempty"`
}

// PayloadItem is LineItem with its tax rate parsed into a number.
type PayloadItem struct {
	CodeReference    string               `json:"code_reference"`
	Name             string               `json:"name"`
	Quantity         int                  `json:"quantity"`
	DiscountRate     float64              `json:"discount_rate"`
	Price            float64              `json:"price"`
	TaxRate          json.Number          `json:"tax_rate"`
	UnitMeasureID    int                  `json:"unit_measure_id"`
	StandardCodeID   int                  `json:"standard_code_id"`
	IsExcluded       int                  `json:"is_excluded"`
	TributeID        int                  `json:"tribute_id"`
	WithholdingTaxes []PayloadWithholding `json:"withholding_taxes"`
}

// PayloadWithholding is WithholdingTax with a numeric rate.
type PayloadWithholding struct {
	Code string      `json:"code"`
	Rate json.Number `json:"withholding_tax_rate"`
}

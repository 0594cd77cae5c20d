package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/schema"
)

func validRecord() *model.InvoiceRecord {
	return &model.InvoiceRecord{
		Document:          "01",
		NumberingRangeID:  8,
		ReferenceCode:     "INV-0001",
		Observation:       "monthly service invoice",
		PaymentForm:       "1",
		PaymentMethodCode: "10",
		BillingPeriod: &model.BillingPeriod{
			StartDate: "2026-08-01",
			StartTime: "00:00:00",
			EndDate:   "2026-08-31",
			EndTime:   "23:59:59",
		},
		Customer: model.Customer{
			Identification:           "123456789",
			DV:                       "3",
			Company:                  "Acme S.A.S.",
			Email:                    "billing@acme.example",
			LegalOrganizationID:      "1",
			TributeID:                21,
			IdentificationDocumentID: "6",
			MunicipalityID:           980,
		},
		Items: []model.LineItem{
			{
				CodeReference:  "SKU-100",
				Name:           "Consulting hours",
				Quantity:       10,
				DiscountRate:   0,
				Price:          150000,
				TaxRate:        "19.00",
				UnitMeasureID:  70,
				StandardCodeID: 1,
				IsExcluded:     0,
				TributeID:      1,
				WithholdingTaxes: []model.WithholdingTax{
					{Code: "06", Rate: "2.50"},
				},
			},
		},
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	issues := schema.Validate(validRecord())
	assert.Empty(t, issues)
}

func TestValidate_MissingItems(t *testing.T) {
	rec := validRecord()
	rec.Items = nil

	issues := schema.Validate(rec)
	require.True(t, issues.HasPath("items"))

	for _, issue := range issues {
		if issue.Path == "items" {
			assert.Equal(t, model.KindRequired, issue.Kind)
		}
	}
}

func TestValidate_TopLevelFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.InvoiceRecord)
		path   string
		kind   model.IssueKind
	}{
		{
			name:   "unknown document type",
			mutate: func(r *model.InvoiceRecord) { r.Document = "77" },
			path:   "document",
			kind:   model.KindInvalidEnum,
		},
		{
			name:   "numbering range missing",
			mutate: func(r *model.InvoiceRecord) { r.NumberingRangeID = 0 },
			path:   "numbering_range_id",
			kind:   model.KindNotPositive,
		},
		{
			name:   "reference code empty",
			mutate: func(r *model.InvoiceRecord) { r.ReferenceCode = "" },
			path:   "reference_code",
			kind:   model.KindRequired,
		},
		{
			name:   "reference code too long",
			mutate: func(r *model.InvoiceRecord) { r.ReferenceCode = "ABCDEFGHIJKLMNOPQRSTU" },
			path:   "reference_code",
			kind:   model.KindTooLong,
		},
		{
			name: "observation too long",
			mutate: func(r *model.InvoiceRecord) {
				long := make([]byte, 251)
				for i := range long {
					long[i] = 'x'
				}
				r.Observation = string(long)
			},
			path: "observation",
			kind: model.KindTooLong,
		},
		{
			name:   "unknown payment form",
			mutate: func(r *model.InvoiceRecord) { r.PaymentForm = "9" },
			path:   "payment_form",
			kind:   model.KindInvalidEnum,
		},
		{
			name:   "malformed payment due date",
			mutate: func(r *model.InvoiceRecord) { r.PaymentDueDate = "31/08/2026" },
			path:   "payment_due_date",
			kind:   model.KindPattern,
		},
		{
			name:   "unknown payment method",
			mutate: func(r *model.InvoiceRecord) { r.PaymentMethodCode = "99" },
			path:   "payment_method_code",
			kind:   model.KindInvalidEnum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			issues := schema.Validate(rec)
			require.True(t, issues.HasPath(tt.path), "expected issue on %s, got %v", tt.path, issues)
			for _, issue := range issues {
				if issue.Path == tt.path {
					assert.Equal(t, tt.kind, issue.Kind)
				}
			}
		})
	}
}

func TestValidate_BillingPeriod(t *testing.T) {
	rec := validRecord()
	rec.BillingPeriod.StartDate = "01-08-2026"
	rec.BillingPeriod.EndTime = "23:59"

	issues := schema.Validate(rec)
	assert.True(t, issues.HasPath("billing_period.start_date"))
	assert.True(t, issues.HasPath("billing_period.end_time"))
	assert.False(t, issues.HasPath("billing_period.end_date"))
}

func TestValidate_BillingPeriodOptional(t *testing.T) {
	rec := validRecord()
	rec.BillingPeriod = nil

	assert.Empty(t, schema.Validate(rec))
}

func TestValidate_Customer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Customer)
		path   string
		kind   model.IssueKind
	}{
		{
			name:   "identification too short",
			mutate: func(c *model.Customer) { c.Identification = "1234" },
			path:   "customer.identification",
			kind:   model.KindTooShort,
		},
		{
			name:   "identification too long",
			mutate: func(c *model.Customer) { c.Identification = "123456789012345678901" },
			path:   "customer.identification",
			kind:   model.KindTooLong,
		},
		{
			name:   "multi-char check digit",
			mutate: func(c *model.Customer) { c.DV = "34" },
			path:   "customer.dv",
			kind:   model.KindPattern,
		},
		{
			name:   "malformed email",
			mutate: func(c *model.Customer) { c.Email = "not-an-email" },
			path:   "customer.email",
			kind:   model.KindInvalidEmail,
		},
		{
			name:   "unknown legal organization",
			mutate: func(c *model.Customer) { c.LegalOrganizationID = "5" },
			path:   "customer.legal_organization_id",
			kind:   model.KindInvalidEnum,
		},
		{
			name:   "tribute missing",
			mutate: func(c *model.Customer) { c.TributeID = 0 },
			path:   "customer.tribute_id",
			kind:   model.KindNotPositive,
		},
		{
			name:   "unknown identification document",
			mutate: func(c *model.Customer) { c.IdentificationDocumentID = "42" },
			path:   "customer.identification_document_id",
			kind:   model.KindInvalidEnum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec.Customer)

			issues := schema.Validate(rec)
			require.True(t, issues.HasPath(tt.path), "expected issue on %s, got %v", tt.path, issues)
		})
	}
}

func TestValidate_CustomerOptionalFieldsAbsent(t *testing.T) {
	rec := validRecord()
	rec.Customer.DV = ""
	rec.Customer.Email = ""
	rec.Customer.MunicipalityID = 0

	assert.Empty(t, schema.Validate(rec))
}

func TestValidate_Items(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.LineItem)
		path   string
	}{
		{"code reference empty", func(i *model.LineItem) { i.CodeReference = "" }, "items.0.code_reference"},
		{"name too short", func(i *model.LineItem) { i.Name = "ab" }, "items.0.name"},
		{"quantity zero", func(i *model.LineItem) { i.Quantity = 0 }, "items.0.quantity"},
		{"discount over 100", func(i *model.LineItem) { i.DiscountRate = 101 }, "items.0.discount_rate"},
		{"discount negative", func(i *model.LineItem) { i.DiscountRate = -1 }, "items.0.discount_rate"},
		{"price zero", func(i *model.LineItem) { i.Price = 0 }, "items.0.price"},
		{"tax rate comma", func(i *model.LineItem) { i.TaxRate = "19,00" }, "items.0.tax_rate"},
		{"tax rate three decimals", func(i *model.LineItem) { i.TaxRate = "19.000" }, "items.0.tax_rate"},
		{"tax rate over 100", func(i *model.LineItem) { i.TaxRate = "100.01" }, "items.0.tax_rate"},
		{"unit measure missing", func(i *model.LineItem) { i.UnitMeasureID = 0 }, "items.0.unit_measure_id"},
		{"standard code missing", func(i *model.LineItem) { i.StandardCodeID = 0 }, "items.0.standard_code_id"},
		{"is_excluded out of domain", func(i *model.LineItem) { i.IsExcluded = 2 }, "items.0.is_excluded"},
		{"tribute missing", func(i *model.LineItem) { i.TributeID = 0 }, "items.0.tribute_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec.Items[0])

			issues := schema.Validate(rec)
			require.True(t, issues.HasPath(tt.path), "expected issue on %s, got %v", tt.path, issues)
		})
	}
}

func TestValidate_WithholdingTaxes(t *testing.T) {
	rec := validRecord()
	rec.Items[0].WithholdingTaxes = []model.WithholdingTax{
		{Code: "06", Rate: "2.50"},
		{Code: "xx", Rate: "bad"},
	}

	issues := schema.Validate(rec)
	assert.True(t, issues.HasPath("items.0.withholding_taxes.1.code"))
	assert.True(t, issues.HasPath("items.0.withholding_taxes.1.withholding_tax_rate"))
	assert.False(t, issues.HasPath("items.0.withholding_taxes.0.code"))
}

func TestValidate_EmptyWithholdingTaxesAllowed(t *testing.T) {
	rec := validRecord()
	rec.Items[0].WithholdingTaxes = nil

	assert.Empty(t, schema.Validate(rec))
}

func TestValidate_RelatedDocuments(t *testing.T) {
	rec := validRecord()
	rec.RelatedDocuments = []model.RelatedDocument{
		{Code: "1", IssueDate: "2026-07-01", Number: "SETP990000100"},
		{Code: "1", IssueDate: "July 1st", Number: ""},
	}

	issues := schema.Validate(rec)
	assert.True(t, issues.HasPath("related_documents.1.number"))
	assert.True(t, issues.HasPath("related_documents.1.issue_date"))
	assert.False(t, issues.HasPath("related_documents.0.number"))
}

func TestValidate_DoesNotEvaluateCrossFieldRules(t *testing.T) {
	// Deferred payment without a due date is a rule concern, not a
	// structural one.
	rec := validRecord()
	rec.PaymentForm = "2"
	rec.PaymentDueDate = ""

	issues := schema.Validate(rec)
	assert.False(t, issues.HasPath("payment_due_date"))
}

func TestValidate_Pure(t *testing.T) {
	rec := validRecord()
	before := *rec

	_ = schema.Validate(rec)

	assert.Equal(t, before.Document, rec.Document)
	assert.Equal(t, before.Customer, rec.Customer)
	assert.Equal(t, before.Items[0], rec.Items[0])
}

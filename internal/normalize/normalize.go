// Package normalize converts a validated InvoiceRecord into the wire
// payload. Rate fields that traveled as strings in form state are
// parsed into exact decimals and rendered as bare JSON numbers; every
// other field is copied unchanged.
package normalize

import (
	"github.com/facturio/billpipe/internal/decimal"
	"github.com/facturio/billpipe/internal/model"
)

// Payload builds the transmission payload for rec. Pure and total: it
// operates only on already-validated records, never fails, and never
// mutates its input. Calling it twice on equal records yields equal
// payloads.
func Payload(rec *model.InvoiceRecord) *model.TransmissionPayload {
	p := &model.TransmissionPayload{
		Document:          rec.Document,
		NumberingRangeID:  rec.NumberingRangeID,
		ReferenceCode:     rec.ReferenceCode,
		Observation:       rec.Observation,
		PaymentForm:       rec.PaymentForm,
		PaymentDueDate:    rec.PaymentDueDate,
		PaymentMethodCode: rec.PaymentMethodCode,
		Customer:          rec.Customer,
	}
	if rec.BillingPeriod != nil {
		period := *rec.BillingPeriod
		p.BillingPeriod = &period
	}
	if len(rec.RelatedDocuments) > 0 {
		p.RelatedDocuments = append([]model.RelatedDocument(nil), rec.RelatedDocuments...)
	}
	p.Items = make([]model.PayloadItem, len(rec.Items))
	for i, item := range rec.Items {
		p.Items[i] = normalizeItem(item)
	}
	return p
}

func normalizeItem(item model.LineItem) model.PayloadItem {
	out := model.PayloadItem{
		CodeReference:    item.CodeReference,
		Name:             item.Name,
		Quantity:         item.Quantity,
		DiscountRate:     item.DiscountRate,
		Price:            item.Price,
		TaxRate:          decimal.RateNumber(item.TaxRate),
		UnitMeasureID:    item.UnitMeasureID,
		StandardCodeID:   item.StandardCodeID,
		IsExcluded:       item.IsExcluded,
		TributeID:        item.TributeID,
		WithholdingTaxes: make([]model.PayloadWithholding, len(item.WithholdingTaxes)),
	}
	for j, wt := range item.WithholdingTaxes {
		out.WithholdingTaxes[j] = model.PayloadWithholding{
			Code: wt.Code,
			Rate: decimal.RateNumber(wt.Rate),
		}
	}
	return out
}

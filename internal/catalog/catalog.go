// Package catalog holds the closed code sets the validation passes
// check membership against. Server-owned catalogs (numbering ranges,
// tributes, municipalities, measurement units, standard codes) are
// only checked for syntactic shape; existence is enforced by the
// remote service.
package catalog

import "strconv"

// Document type codes.
const (
	DocumentSalesInvoice = "01"
	DocumentCreditNote   = "91"
	DocumentDebitNote    = "92"
)

// Payment form codes.
const (
	PaymentFormImmediate = "1"
	PaymentFormDeferred  = "2"
)

// Withholding tax codes.
const (
	WithholdingReteIVA    = "05"
	WithholdingReteFuente = "06"
	WithholdingReteICA    = "07"
)

// Legal organization codes.
const (
	LegalOrganizationCompany = "1"
	LegalOrganizationPerson  = "2"
)

var documentTypes = map[string]bool{
	DocumentSalesInvoice: true,
	DocumentCreditNote:   true,
	DocumentDebitNote:    true,
}

var paymentForms = map[string]bool{
	PaymentFormImmediate: true,
	PaymentFormDeferred:  true,
}

var paymentMethods = map[string]bool{
	"10": true, // cash
	"20": true, // cheque
	"42": true, // bank deposit
	"47": true, // wire transfer
	"48": true, // credit card
	"49": true, // debit card
}

var withholdingCodes = map[string]bool{
	WithholdingReteIVA:    true,
	WithholdingReteFuente: true,
	WithholdingReteICA:    true,
}

var legalOrganizations = map[string]bool{
	LegalOrganizationCompany: true,
	LegalOrganizationPerson:  true,
}

var identificationDocuments = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true,
	"6": true, "7": true, "8": true, "9": true, "10": true,
}

// IsDocumentType reports membership in the document-type catalog.
func IsDocumentType(code string) bool { return documentTypes[code] }

// IsNote reports whether the document type is a credit or debit note,
// which must reference a prior document.
func IsNote(code string) bool {
	return code == DocumentCreditNote || code == DocumentDebitNote
}

// IsPaymentForm reports membership in the payment-form catalog.
func IsPaymentForm(code string) bool { return paymentForms[code] }

// IsDeferred reports whether the payment form denotes deferred payment.
func IsDeferred(code string) bool { return code == PaymentFormDeferred }

// IsPaymentMethod reports membership in the payment-method catalog.
func IsPaymentMethod(code string) bool { return paymentMethods[code] }

// IsWithholdingCode reports membership in the withholding-tax catalog.
func IsWithholdingCode(code string) bool { return withholdingCodes[code] }

// IsLegalOrganization reports membership in the legal-organization
// catalog.
func IsLegalOrganization(code string) bool { return legalOrganizations[code] }

// IsIdentificationDocument reports membership in the identification
// document catalog.
func IsIdentificationDocument(code string) bool {
	return identificationDocuments[code]
}

// IsCatalogID reports whether id is syntactically a catalog reference,
// meaning a positive integer. The catalog itself lives server-side.
func IsCatalogID(id int) bool { return id > 0 }

// IsCatalogCode reports whether code is syntactically a catalog code:
// a non-empty string of digits.
func IsCatalogCode(code string) bool {
	if code == "" {
		return false
	}
	_, err := strconv.Atoi(code)
	return err == nil
}

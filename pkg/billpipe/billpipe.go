// Package billpipe provides the public API for validating and
// submitting electronic invoice records.
//
// Example usage:
//
//	client := billpipe.NewClient("https://api.example.com", token)
//	p := billpipe.NewPipeline(client)
//	result := p.Submit(ctx, record)
//	if result.State == billpipe.StateSucceeded {
//	    fmt.Println(string(result.Bill))
//	}
package billpipe

import (
	"github.com/facturio/billpipe/internal/billing"
	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/pipeline"
)

// Re-export record types for public API
type (
	InvoiceRecord   = model.InvoiceRecord
	BillingPeriod   = model.BillingPeriod
	Customer        = model.Customer
	LineItem        = model.LineItem
	WithholdingTax  = model.WithholdingTax
	RelatedDocument = model.RelatedDocument
)

// Re-export validation and failure shapes
type (
	Issue         = model.Issue
	IssueList     = model.IssueList
	IssueKind     = model.IssueKind
	FieldErrorMap = model.FieldErrorMap
	Failure       = model.Failure
	FailureKind   = model.FailureKind
)

// Re-export pipeline types
type (
	Pipeline = pipeline.Pipeline
	Result   = pipeline.Result
	State    = pipeline.State
)

// Re-export the service client
type (
	Client      = billing.Client
	ListOptions = billing.ListOptions
	BillList    = billing.BillList
)

// Re-export failure kinds
const (
	StructuralViolation     = model.StructuralViolation
	RuleViolation           = model.RuleViolation
	RemoteValidationFailure = model.RemoteValidationFailure
	TransportFailure        = model.TransportFailure
)

// Re-export submission states
const (
	StateIdle             = pipeline.StateIdle
	StateValidating       = pipeline.StateValidating
	StateValidationFailed = pipeline.StateValidationFailed
	StateSubmitting       = pipeline.StateSubmitting
	StateSucceeded        = pipeline.StateSucceeded
	StateRemoteRejected   = pipeline.StateRemoteRejected
	StateFatal            = pipeline.StateFatal
)

// Sentinel field-error paths
const (
	PathGeneral = model.PathGeneral
	PathForm    = model.PathForm
)

// NewPipeline creates a submission pipeline transmitting through
// client.
func NewPipeline(client pipeline.Transmitter) *Pipeline {
	return pipeline.New(client)
}

// NewClient creates a client for the remote invoice service.
func NewClient(baseURL, token string, opts ...billing.Option) *Client {
	return billing.NewClient(baseURL, token, opts...)
}

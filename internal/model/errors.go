package model

import "fmt"

// FailureKind tags the closed set of ways a submission attempt can
// fail. The translator matches on it exhaustively instead of
// inspecting runtime types.
type FailureKind string

const (
	// StructuralViolation: a field failed type/shape/range checks.
	StructuralViolation FailureKind = "structural_violation"
	// RuleViolation: a cross-field business invariant was broken.
	RuleViolation FailureKind = "rule_violation"
	// RemoteValidationFailure: the authoritative service rejected the
	// record and reported per-field errors.
	RemoteValidationFailure FailureKind = "remote_validation_failure"
	// TransportFailure: the network call or response decoding failed.
	TransportFailure FailureKind = "transport_failure"
)

// Failure is the tagged error variant produced by the pipeline. Fields
// is populated for the three field-addressable kinds; TransportFailure
// carries only the generic message. The wrapped cause, when present,
// is for logs and never for user-facing maps.
type Failure struct {
	Kind    FailureKind
	Fields  *FieldErrorMap
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Fields != nil && !f.Fields.Empty() {
		return fmt.Sprintf("%s: %d field(s) rejected", f.Kind, f.Fields.Len())
	}
	if f.Message != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return string(f.Kind)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Fatal reports whether the failure abandons the attempt entirely, as
// opposed to field-level failures the user can correct and resubmit.
func (f *Failure) Fatal() bool {
	return f.Kind == TransportFailure
}

// NewValidationFailure builds a local-validation failure. Kind must be
// StructuralViolation or RuleViolation.
func NewValidationFailure(kind FailureKind, fields *FieldErrorMap) *Failure {
	return &Failure{Kind: kind, Fields: fields}
}

// NewRemoteFailure builds a failure from the remote service's reported
// field errors.
func NewRemoteFailure(fields *FieldErrorMap) *Failure {
	return &Failure{Kind: RemoteValidationFailure, Fields: fields}
}

// NewTransportFailure builds a fatal failure with a user-safe message;
// cause keeps the underlying error reachable for logging.
func NewTransportFailure(message string, cause error) *Failure {
	return &Failure{Kind: TransportFailure, Message: message, Cause: cause}
}

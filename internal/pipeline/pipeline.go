// Package pipeline runs one submission attempt end to end: structural
// pass, rule pass, normalization, transmission, error translation.
// Local failures halt before any network call; the remote verdict is
// final for the attempt and never re-enters local validation.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/facturio/billpipe/internal/billing"
	"github.com/facturio/billpipe/internal/logger"
	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/normalize"
	"github.com/facturio/billpipe/internal/rules"
	"github.com/facturio/billpipe/internal/schema"
	"github.com/facturio/billpipe/internal/translate"
)

// State names a position in the submission machine. ValidationFailed,
// Succeeded, RemoteRejected and Fatal are terminal; a new attempt is a
// fresh Submit call, never a re-entry.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateValidationFailed State = "validation_failed"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateRemoteRejected   State = "remote_rejected"
	StateFatal            State = "fatal"
)

// Terminal reports whether s ends the attempt.
func (s State) Terminal() bool {
	switch s {
	case StateValidationFailed, StateSucceeded, StateRemoteRejected, StateFatal:
		return true
	}
	return false
}

// Transmitter is the remote service dependency of the pipeline.
type Transmitter interface {
	Validate(ctx context.Context, payload *model.TransmissionPayload) (json.RawMessage, error)
}

// Pipeline validates and submits invoice records. Safe for concurrent
// use: each Submit owns its record and result exclusively.
type Pipeline struct {
	client  Transmitter
	log     zerolog.Logger
	attempt atomic.Uint64
}

// New creates a pipeline transmitting through client.
func New(client Transmitter) *Pipeline {
	return &Pipeline{
		client: client,
		log:    logger.WithComponent("pipeline"),
	}
}

// Result is the terminal outcome of one attempt. FieldErrors is
// populated for ValidationFailed, RemoteRejected and Fatal; Bill only
// for Succeeded. Attempt is an opaque identity the caller can compare
// to discard stale results when a newer attempt has started.
type Result struct {
	State       State
	Bill        json.RawMessage
	FieldErrors *model.FieldErrorMap
	Failure     *model.Failure
	Message     string
	Attempt     uint64
}

// ValidateLocal runs only the two local passes. It returns nil when
// the record is valid; otherwise a StructuralViolation or
// RuleViolation failure carrying the translated field errors. The
// rule pass runs only after a clean structural pass.
func (p *Pipeline) ValidateLocal(rec *model.InvoiceRecord) *model.Failure {
	if issues := schema.Validate(rec); len(issues) > 0 {
		return model.NewValidationFailure(model.StructuralViolation, translate.FromIssues(issues))
	}
	if issues := rules.Evaluate(rec); len(issues) > 0 {
		return model.NewValidationFailure(model.RuleViolation, translate.FromIssues(issues))
	}
	return nil
}

// Submit runs the full attempt. The returned result is always in a
// terminal state.
func (p *Pipeline) Submit(ctx context.Context, rec *model.InvoiceRecord) *Result {
	attempt := p.attempt.Add(1)
	log := p.log.With().Uint64("attempt", attempt).Logger()

	log.Debug().Msg("validating record")
	if failure := p.ValidateLocal(rec); failure != nil {
		log.Info().Str("kind", string(failure.Kind)).
			Int("fields", failure.Fields.Len()).Msg("local validation failed")
		return &Result{
			State:       StateValidationFailed,
			FieldErrors: failure.Fields,
			Failure:     failure,
			Attempt:     attempt,
		}
	}

	payload := normalize.Payload(rec)

	log.Debug().Msg("submitting to invoice service")
	bill, err := p.client.Validate(ctx, payload)
	if err != nil {
		return p.failedSubmission(log, err, attempt)
	}

	log.Info().Msg("invoice accepted")
	return &Result{State: StateSucceeded, Bill: bill, Attempt: attempt}
}

func (p *Pipeline) failedSubmission(log zerolog.Logger, err error, attempt uint64) *Result {
	var rejection *billing.RejectionError
	if errors.As(err, &rejection) {
		var fields *model.FieldErrorMap
		switch {
		case len(rejection.Errors) > 0:
			fields = translate.FromRemoteErrors(rejection.Errors)
		case rejection.Message != "":
			fields = model.NewFieldErrorMap()
			fields.Add(model.PathGeneral, rejection.Message)
		default:
			fields = translate.FromUnknown(rejection)
		}
		log.Info().Int("status", rejection.Status).
			Int("fields", fields.Len()).Msg("invoice rejected by service")
		return &Result{
			State:       StateRemoteRejected,
			FieldErrors: fields,
			Failure:     model.NewRemoteFailure(fields),
			Attempt:     attempt,
		}
	}

	// Network error or unparsable body: fatal, generic message only.
	log.Warn().Err(err).Msg("transmission failed")
	return &Result{
		State:       StateFatal,
		FieldErrors: translate.FromUnknown(err),
		Failure:     model.NewTransportFailure(translate.GenericMessage, err),
		Message:     translate.GenericMessage,
		Attempt:     attempt,
	}
}

// Package translate unifies the three failure shapes a submission can
// produce (local validation issues, the remote service's structured
// error array, and unexpected errors) into one FieldErrorMap, so the
// consumer has exactly one code path for displaying errors.
package translate

import (
	"strings"

	"github.com/facturio/billpipe/internal/model"
)

// GenericMessage is the only text ever shown for failures that carry
// no structured error set. Raw internal error text never reaches the
// map.
const GenericMessage = "An unexpected error occurred. Please try again."

// dataPrefix is stripped from remote JSON pointers before the rest is
// converted to a dotted path.
const dataPrefix = "/data/"

// RemoteError is one entry of the remote service's errors array,
// decoded defensively at the boundary: every field may be absent.
type RemoteError struct {
	Code   string       `json:"code,omitempty"`
	Detail string       `json:"detail"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorSource locates the rejected field via a JSON-pointer-like
// string, e.g. "/data/customer/email".
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// FromIssues groups local validation issues by field path, keeping the
// first-seen order of paths and appending messages in production
// order.
func FromIssues(issues model.IssueList) *model.FieldErrorMap {
	m := model.NewFieldErrorMap()
	for _, issue := range issues {
		m.Add(issue.Path, issue.Message)
	}
	return m
}

// FromRemoteErrors converts the service's error array. Pointers lose
// the /data/ prefix and remaining slashes become dots; an absent or
// unparsable pointer lands on the general path.
func FromRemoteErrors(errs []RemoteError) *model.FieldErrorMap {
	m := model.NewFieldErrorMap()
	for _, e := range errs {
		m.Add(pointerToPath(e.Source), e.Detail)
	}
	return m
}

// FromUnknown collapses any error without a structured error set into
// a single user-safe message under the general path.
func FromUnknown(err error) *model.FieldErrorMap {
	m := model.NewFieldErrorMap()
	m.Add(model.PathGeneral, GenericMessage)
	_ = err // logged by the caller, never surfaced
	return m
}

func pointerToPath(src *ErrorSource) string {
	if src == nil || src.Pointer == "" {
		return model.PathGeneral
	}
	p := strings.TrimPrefix(src.Pointer, dataPrefix)
	p = strings.Trim(p, "/")
	if p == "" {
		return model.PathGeneral
	}
	return strings.ReplaceAll(p, "/", ".")
}

package server

import (
	"encoding/json"

	"github.com/facturio/billpipe/internal/model"
)

// ValidationResponse is the response for the validate endpoint.
type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Kind   string               `json:"kind,omitempty"`
	Errors *model.FieldErrorMap `json:"errors,omitempty"`
}

// SubmitResponse is the response for the submit endpoint.
type SubmitResponse struct {
	State   string               `json:"state"`
	Bill    json.RawMessage      `json:"bill,omitempty"`
	Errors  *model.FieldErrorMap `json:"errors,omitempty"`
	Message string               `json:"message,omitempty"`
}

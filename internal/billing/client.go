// Package billing talks to the remote invoice service. The service is
// authoritative: this client transmits payloads and decodes the closed
// set of response shapes, it never re-validates and never retries.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/facturio/billpipe/internal/logger"
	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/translate"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Client is the remote invoice service client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures the client.
type Option func(*clientConfig)

type clientConfig struct {
	timeout time.Duration
	http    *http.Client
}

// WithTimeout sets the HTTP timeout used when no custom client is
// supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.http = c
	}
}

// NewClient creates a client for the service at baseURL. Requests
// carry the bearer token; acquiring and renewing it is the caller's
// concern.
func NewClient(baseURL, token string, opts ...Option) *Client {
	cfg := &clientConfig{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	httpClient := cfg.http
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    httpClient,
		log:     logger.WithComponent("billing-client"),
	}
}

// RejectionError carries the service's structured rejection of an
// otherwise well-formed record: the errors array when the service
// reported per-field detail, or the bare message fallback.
type RejectionError struct {
	Status  int
	Errors  []translate.RemoteError
	Message string
}

func (e *RejectionError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("service rejected the invoice with %d error(s)", len(e.Errors))
	}
	if e.Message != "" {
		return fmt.Sprintf("service rejected the invoice: %s", e.Message)
	}
	return "service rejected the invoice"
}

// validateResponse is the decoded service response for a validation
// call. Exactly one branch is populated.
type validateResponse struct {
	Data    json.RawMessage         `json:"data"`
	Errors  []translate.RemoteError `json:"errors"`
	Message string                  `json:"message"`
}

// Validate submits the payload to POST /v1/bills/validate. On success
// it returns the server's canonical invoice result. A structured
// rejection comes back as *RejectionError; anything else (network
// error, non-JSON body) is a plain transport error.
func (c *Client) Validate(ctx context.Context, payload *model.TransmissionPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/bills/validate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending invoice: %w", err)
	}
	defer resp.Body.Close()

	var decoded validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Warn().Int("status", resp.StatusCode).Err(err).Msg("response body is not valid JSON")
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Info().Int("status", resp.StatusCode).Int("errors", len(decoded.Errors)).
			Msg("invoice rejected by service")
		return nil, &RejectionError{
			Status:  resp.StatusCode,
			Errors:  decoded.Errors,
			Message: decoded.Message,
		}
	}

	c.log.Debug().Int("status", resp.StatusCode).Msg("invoice accepted by service")
	return decoded.Data, nil
}

// Bill is one entry of the service's invoice listing.
type Bill struct {
	ID             int    `json:"id"`
	Number         string `json:"number"`
	Status         int    `json:"status"`
	CreatedAt      string `json:"created_at"`
	Names          string `json:"names"`
	Identification string `json:"identification"`
	Document       struct {
		Name string `json:"name"`
	} `json:"document"`
	Total string `json:"total"`
}

// Pagination is the service's listing page descriptor.
type Pagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// BillList is one page of invoices.
type BillList struct {
	Bills      []Bill
	Pagination Pagination
}

// ListOptions narrows and pages a listing request. Filters become
// filter[key]=value query parameters; empty values are skipped.
type ListOptions struct {
	Filters map[string]string
	Page    int
}

type listResponse struct {
	Data struct {
		Data       []Bill     `json:"data"`
		Pagination Pagination `json:"pagination"`
	} `json:"data"`
}

// List fetches one page of invoices from GET /v1/bills.
func (c *Client) List(ctx context.Context, opts ListOptions) (*BillList, error) {
	query := url.Values{}
	for key, value := range opts.Filters {
		if value != "" {
			query.Set(fmt.Sprintf("filter[%s]", key), value)
		}
	}
	if opts.Page > 0 {
		query.Set("page", fmt.Sprintf("%d", opts.Page))
	}

	endpoint := c.baseURL + "/v1/bills"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var decoded listResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}
	return &BillList{Bills: decoded.Data.Data, Pagination: decoded.Data.Pagination}, nil
}

// Get fetches one invoice by number from GET /v1/bills/show/{number}
// and returns the raw service document.
func (c *Client) Get(ctx context.Context, number string) (json.RawMessage, error) {
	var decoded struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/v1/bills/show/"+url.PathEscape(number), &decoded); err != nil {
		return nil, err
	}
	return decoded.Data, nil
}

// MeasurementUnit is one entry of the measurement-unit catalog.
type MeasurementUnit struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// MeasurementUnits fetches the unit catalog from
// GET /v1/measurement-units. The catalog is read-only reference data;
// the pipeline never checks membership against it.
func (c *Client) MeasurementUnits(ctx context.Context) ([]MeasurementUnit, error) {
	var decoded struct {
		Data []MeasurementUnit `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/v1/measurement-units", &decoded); err != nil {
		return nil, err
	}
	return decoded.Data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Message != "" {
			return &RejectionError{Status: resp.StatusCode, Message: failure.Message}
		}
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
}

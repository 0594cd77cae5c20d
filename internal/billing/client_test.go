package billing_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/billpipe/internal/billing"
	"github.com/facturio/billpipe/internal/model"
)

func payload() *model.TransmissionPayload {
	return &model.TransmissionPayload{
		Document:          "01",
		NumberingRangeID:  8,
		ReferenceCode:     "INV-0001",
		PaymentForm:       "1",
		PaymentMethodCode: "10",
		Customer:          model.Customer{Identification: "123456789"},
		Items: []model.PayloadItem{
			{CodeReference: "SKU-1", Name: "Widget", Quantity: 1, Price: 100, TaxRate: json.Number("19")},
		},
	}
}

func TestValidate_Success(t *testing.T) {
	var got struct {
		path, auth, contentType string
		body                    map[string]interface{}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"bill":{"number":"SETP990000001","status":1}}}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	bill, err := client.Validate(context.Background(), payload())
	require.NoError(t, err)

	assert.Equal(t, "/v1/bills/validate", got.path)
	assert.Equal(t, "Bearer test-token", got.auth)
	assert.Equal(t, "application/json", got.contentType)

	// Rate fields cross the wire as bare numbers.
	items := got.body["items"].([]interface{})
	item := items[0].(map[string]interface{})
	assert.IsType(t, float64(0), item["tax_rate"])

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(bill, &result))
	assert.Contains(t, result, "bill")
}

func TestValidate_RejectionWithErrorsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"errors": [
				{"code":"invalid","detail":"Invalid email","source":{"pointer":"/data/customer/email"}},
				{"code":"exhausted","detail":"Numbering range exhausted"}
			]
		}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	_, err := client.Validate(context.Background(), payload())
	require.Error(t, err)

	var rejection *billing.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, http.StatusUnprocessableEntity, rejection.Status)
	require.Len(t, rejection.Errors, 2)
	assert.Equal(t, "Invalid email", rejection.Errors[0].Detail)
	assert.Equal(t, "/data/customer/email", rejection.Errors[0].Source.Pointer)
	assert.Nil(t, rejection.Errors[1].Source)
}

func TestValidate_RejectionWithMessageOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	_, err := client.Validate(context.Background(), payload())

	var rejection *billing.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Empty(t, rejection.Errors)
	assert.Equal(t, "Unauthenticated.", rejection.Message)
}

func TestValidate_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>502 Bad Gateway</html>`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	_, err := client.Validate(context.Background(), payload())
	require.Error(t, err)

	// Not a structured rejection: the caller treats this as fatal.
	var rejection *billing.RejectionError
	assert.False(t, errors.As(err, &rejection))
}

func TestValidate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := billing.NewClient(srv.URL, "test-token")
	_, err := client.Validate(context.Background(), payload())
	require.Error(t, err)

	var rejection *billing.RejectionError
	assert.False(t, errors.As(err, &rejection))
}

func TestList_QueryParameters(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/bills", r.URL.Path)
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"data": {
				"data": [
					{"id":1,"number":"SETP990000001","status":1,"names":"Acme S.A.S.","identification":"123456789","total":"119000.00","created_at":"2026-08-01 10:00:00"}
				],
				"pagination": {"total":14,"per_page":10,"current_page":2,"last_page":2,"from":11,"to":14}
			}
		}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	list, err := client.List(context.Background(), billing.ListOptions{
		Filters: map[string]string{"status": "1", "identification": "123456789", "empty": ""},
		Page:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, query["filter[status]"])
	assert.Equal(t, []string{"123456789"}, query["filter[identification]"])
	assert.NotContains(t, query, "filter[empty]")
	assert.Equal(t, []string{"2"}, query["page"])

	require.Len(t, list.Bills, 1)
	assert.Equal(t, "SETP990000001", list.Bills[0].Number)
	assert.Equal(t, "119000.00", list.Bills[0].Total)
	assert.Equal(t, 2, list.Pagination.CurrentPage)
	assert.Equal(t, 14, list.Pagination.Total)
}

func TestGet_PathAndDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/bills/show/SETP990000001", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"bill":{"number":"SETP990000001","qr":"https://example.com/qr"}}}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	bill, err := client.Get(context.Background(), "SETP990000001")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(bill, &decoded))
	assert.Contains(t, decoded, "bill")
}

func TestGet_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Factura no encontrada"}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	_, err := client.Get(context.Background(), "MISSING")
	require.Error(t, err)

	var rejection *billing.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "Factura no encontrada", rejection.Message)
}

func TestMeasurementUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/measurement-units", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":70,"code":"94","name":"unidad"},{"id":414,"code":"HUR","name":"hora"}]}`))
	}))
	defer srv.Close()

	client := billing.NewClient(srv.URL, "test-token")
	units, err := client.MeasurementUnits(context.Background())
	require.NoError(t, err)

	require.Len(t, units, 2)
	assert.Equal(t, 70, units[0].ID)
	assert.Equal(t, "hora", units[1].Name)
}

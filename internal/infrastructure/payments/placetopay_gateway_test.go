package payments

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/config"
	"placetopay_checkout/internal/infrastructure/logging"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestPlacetoPay(t *testing.T, handler http.HandlerFunc) *PlacetoPayGateway {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return newLoggedPlacetoPay(t, handler, logger)
}

func newLoggedPlacetoPay(t *testing.T, handler http.HandlerFunc, logger *logrus.Logger) *PlacetoPayGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewPlacetoPayGateway(config.GatewayConfig{
		Login:   "login",
		TranKey: "secret",
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Shop": "demo"},
		Timeout: 5 * time.Second,
	}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g
}

func sampleRequest() entities.PaymentRequest {
	return entities.PaymentRequest{
		Reference:   "ORD-1",
		Description: "Order ORD-1",
		Locale:      "es_CO",
		Buyer:       entities.Person{Name: "Ana", Surname: "Diaz"},
		Shipping:    entities.Person{Name: "Ana", Surname: "Diaz"},
		Amount: entities.Amount{
			Total:    decimal.RequireFromString("119.00"),
			Currency: "COP",
			Details:  []entities.AmountDetail{{Kind: entities.AmountDetailSubtotal, Amount: "100.00"}},
		},
		Items: []entities.LineItem{{SKU: "S1", Name: "Shirt", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100"), TaxAmount: decimal.RequireFromString("19")}},
	}
}

func TestDigestTranKey(t *testing.T) {
	nonce := []byte("nonce")
	got := DigestTranKey(nonce, "2024-01-02T03:04:05Z", "secret")
	again := DigestTranKey(nonce, "2024-01-02T03:04:05Z", "secret")
	if got != again {
		t.Fatalf("expected deterministic digest")
	}
	if got == DigestTranKey(nonce, "2024-01-02T03:04:06Z", "secret") {
		t.Fatalf("expected seed to change digest")
	}
	if _, err := base64.StdEncoding.DecodeString(got); err != nil {
		t.Fatalf("expected base64 digest, got %q", got)
	}
}

func TestPlacetoPayGateway_Request(t *testing.T) {
	t.Run("sends authenticated session and decodes response", func(t *testing.T) {
		g := newTestPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/session" {
				t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("X-Shop") != "demo" {
				t.Fatalf("expected configured header")
			}
			var body map[string]any
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}

			auth := body["auth"].(map[string]any)
			nonce, err := base64.StdEncoding.DecodeString(auth["nonce"].(string))
			if err != nil {
				t.Fatalf("nonce is not base64: %v", err)
			}
			if auth["seed"] != "2024-01-02T03:04:05Z" {
				t.Fatalf("unexpected seed %v", auth["seed"])
			}
			if auth["tranKey"] != DigestTranKey(nonce, "2024-01-02T03:04:05Z", "secret") {
				t.Fatalf("tranKey does not match nonce and seed")
			}

			payment := body["payment"].(map[string]any)
			amount := payment["amount"].(map[string]any)
			if _, ok := amount["taxes"]; ok {
				t.Fatalf("taxes must be omitted when not computed")
			}
			if amount["total"] != float64(119) {
				t.Fatalf("unexpected total %v", amount["total"])
			}

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":{"status":"OK","reason":"PC","message":"La petición se ha procesado correctamente","date":"2024-01-02T03:04:05-05:00"},"requestId":123,"processUrl":"https://checkout.test/spa/session/123/abc"}`))
		})

		resp, err := g.Request(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.RequestID != "123" || resp.ProcessURL != "https://checkout.test/spa/session/123/abc" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if !resp.IsSuccessful() {
			t.Fatalf("expected successful response")
		}
	})

	t.Run("empty tax list is sent", func(t *testing.T) {
		g := newTestPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Payment struct {
					Amount struct {
						Taxes *[]entities.TaxBucket `json:"taxes"`
					} `json:"amount"`
				} `json:"payment"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Payment.Amount.Taxes == nil || len(*body.Payment.Amount.Taxes) != 0 {
				t.Fatalf("expected empty taxes list")
			}
			_, _ = w.Write([]byte(`{"status":{"status":"OK"},"requestId":"1","processUrl":"u"}`))
		})

		req := sampleRequest()
		req.Amount.Taxes = []entities.TaxBucket{}
		if _, err := g.Request(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejection body on 401 is returned as response", func(t *testing.T) {
		g := newTestPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":{"status":"FAILED","reason":401,"message":"Autenticación fallida 101","date":"2024-01-02T03:04:05-05:00"}}`))
		})

		resp, err := g.Request(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.IsSuccessful() || resp.Status.Message != "Autenticación fallida 101" {
			t.Fatalf("expected failed status, got %+v", resp.Status)
		}
	})

	t.Run("undecodable body is an error", func(t *testing.T) {
		g := newTestPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		})

		_, err := g.Request(context.Background(), sampleRequest())
		if !errors.Is(err, ErrPlacetoPayUnexpectedResponse) {
			t.Fatalf("expected ErrPlacetoPayUnexpectedResponse, got %v", err)
		}
	})
}

func TestPlacetoPayGateway_Query(t *testing.T) {
	g := newTestPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session/123" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"requestId": 123,
			"status": {"status": "APPROVED", "reason": "00", "message": "La petición ha sido aprobada exitosamente", "date": "2024-01-02T03:10:00-05:00"},
			"payment": [{
				"status": {"status": "APPROVED", "reason": "00", "message": "Aprobada", "date": "2024-01-02T03:09:00-05:00"},
				"internalReference": 1447466623,
				"paymentMethod": "visa",
				"paymentMethodName": "Visa",
				"issuerName": "BANCO DE PRUEBAS",
				"amount": {"from": {"currency": "COP", "total": 119}, "to": {"currency": "COP", "total": 119}, "factor": 1},
				"authorization": "000000",
				"reference": "ORD-1",
				"franchise": "CR_VS",
				"refunded": false,
				"processorFields": [
					{"value": "411111", "keyword": "bin", "displayOn": "none"},
					{"value": "1111", "keyword": "lastDigits", "displayOn": "none"},
					{"value": {"installments": 3}, "keyword": "credit", "displayOn": "none"}
				]
			}]
		}`))
	})

	resp, err := g.Query(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status.Status != entities.GatewayStatusApproved {
		t.Fatalf("unexpected status %+v", resp.Status)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(resp.Transactions))
	}
	tx := resp.Transactions[0]
	if tx.InternalReference != "1447466623" || tx.Amount != "119" || tx.Authorization != "000000" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	fields := tx.ProcessorFieldsMap()
	if fields["bin"] != "411111" || fields["lastDigits"] != "1111" {
		t.Fatalf("unexpected processor fields %+v", fields)
	}
	if _, ok := fields["credit"].(map[string]any); !ok {
		t.Fatalf("expected nested processor value to decode as map, got %T", fields["credit"])
	}
}

func TestPlacetoPayGateway_LogsCorrelationID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	g := newLoggedPlacetoPay(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"requestId": 123, "status": {"status": "PENDING", "reason": "PT", "message": "Pendiente", "date": "2024-01-02T03:10:00-05:00"}}`))
	}, logger)

	ctx := logging.WithCorrelationID(context.Background(), "corr-1")
	if _, err := g.Query(ctx, "123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Request(ctx, sampleRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) == 0 {
		t.Fatalf("expected gateway log entries")
	}
	for _, e := range entries {
		if e.Data[logging.FieldCorrelationID] != "corr-1" {
			t.Fatalf("expected correlation_id corr-1 on %q, got %v", e.Message, e.Data[logging.FieldCorrelationID])
		}
		if e.Data[logging.FieldComponent] != "placetopay" {
			t.Fatalf("expected component placetopay, got %v", e.Data[logging.FieldComponent])
		}
	}
}

func TestNewPlacetoPayGateway_RequiresCredentials(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewPlacetoPayGateway(config.GatewayConfig{BaseURL: "https://checkout.test/"}, logger)
	if !errors.Is(err, config.ErrMissingGatewayCredentials) {
		t.Fatalf("expected ErrMissingGatewayCredentials, got %v", err)
	}
}

package payments

import (
	"context"
	"strings"
	"testing"

	"placetopay_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestMockGateway_RequestThenQuery(t *testing.T) {
	logger, _ := test.NewNullLogger()
	g := NewMockGateway("http://localhost:8080/", logger)

	resp, err := g.Request(context.Background(), entities.PaymentRequest{
		Reference: "ORD-1",
		Amount:    entities.Amount{Total: decimal.RequireFromString("50.25")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccessful() || !strings.HasPrefix(resp.ProcessURL, "http://localhost:8080/mock/session/") {
		t.Fatalf("unexpected response %+v", resp)
	}

	q, err := g.Query(context.Background(), resp.RequestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status.Status != entities.GatewayStatusApproved || len(q.Transactions) != 1 {
		t.Fatalf("expected approved session with one transaction, got %+v", q)
	}
	if q.Transactions[0].Amount != "50.25" {
		t.Fatalf("unexpected amount %s", q.Transactions[0].Amount)
	}
}

func TestMockGateway_UnknownSession(t *testing.T) {
	logger, _ := test.NewNullLogger()
	g := NewMockGateway("http://localhost:8080", logger)

	q, err := g.Query(context.Background(), "404")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.IsSuccessful() {
		t.Fatalf("expected failed status for unknown session")
	}
}

func TestMockGateway_ReturnURL(t *testing.T) {
	logger, _ := test.NewNullLogger()
	g := NewMockGateway("http://localhost:8080", logger)

	resp, _ := g.Request(context.Background(), entities.PaymentRequest{
		Reference: "ORD-1",
		ReturnURL: "http://localhost:8080/v1/checkout/response?reference=ORD-1",
	})

	got, ok := g.ReturnURL(resp.RequestID)
	if !ok || got != "http://localhost:8080/v1/checkout/response?reference=ORD-1" {
		t.Fatalf("unexpected return url %q", got)
	}
	if _, ok := g.ReturnURL("missing"); ok {
		t.Fatalf("expected unknown session to have no return url")
	}
}

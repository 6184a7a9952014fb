package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb throttled")
	err := NewDomainError("PAYMENT_PERSISTENCE_FAILURE", "try again later", cause, http.StatusServiceUnavailable)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	body := err.ToHTTPError()
	if body.Code != "PAYMENT_PERSISTENCE_FAILURE" || body.Message != "try again later" {
		t.Fatalf("unexpected body %+v", body)
	}

	simple := NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	if simple.Error() != "ORDER_NOT_FOUND: Order not found" {
		t.Fatalf("unexpected message %q", simple.Error())
	}
}

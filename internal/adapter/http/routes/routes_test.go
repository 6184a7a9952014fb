package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/config"
	"placetopay_checkout/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestPingRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	addPingRoutes(r.Group("/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMockGatewayRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	mock := payments.NewMockGateway("http://localhost:8080", logger)
	resp, _ := mock.Request(context.Background(), entities.PaymentRequest{
		Reference: "ORD-1",
		ReturnURL: "http://localhost:8080/v1/checkout/response?reference=ORD-1",
	})

	r := gin.New()
	addMockGatewayRoutes(r, mock)

	t.Run("redirects to return url", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mock/session/"+resp.RequestID, nil))
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "http://localhost:8080/v1/checkout/response?reference=ORD-1" {
			t.Fatalf("unexpected location %q", loc)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mock/session/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestNewPaymentGateway(t *testing.T) {
	logger, _ := test.NewNullLogger()

	t.Run("mock mode", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		gw, mock := newPaymentGateway(config.GatewayConfig{ReturnURLBase: "http://localhost:8080"}, logger)
		if gw == nil || mock == nil {
			t.Fatalf("expected mock gateway")
		}
	})

	t.Run("placetopay without credentials", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("PLACETOPAY_MOCK", "")
		gw, mock := newPaymentGateway(config.GatewayConfig{Provider: config.ProviderPlacetoPay}, logger)
		if gw != nil || mock != nil {
			t.Fatalf("expected no gateway without credentials")
		}
	})

	t.Run("placetopay", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("PLACETOPAY_MOCK", "")
		gw, _ := newPaymentGateway(config.GatewayConfig{
			Provider: config.ProviderPlacetoPay,
			Login:    "login",
			TranKey:  "secret",
			BaseURL:  "https://checkout-test.placetopay.com",
		}, logger)
		if _, ok := gw.(*payments.PlacetoPayGateway); !ok {
			t.Fatalf("expected PlacetoPay gateway, got %T", gw)
		}
	})

	t.Run("mercadopago without token", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("PLACETOPAY_MOCK", "")
		gw, _ := newPaymentGateway(config.GatewayConfig{Provider: config.ProviderMercadoPago}, logger)
		if gw != nil {
			t.Fatalf("expected no gateway without access token")
		}
	})
}

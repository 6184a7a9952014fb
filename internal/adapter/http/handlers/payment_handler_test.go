package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"placetopay_checkout/internal/adapter/http/handlers/mocks"
	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*mocks.MockIGatewayOrchestrator, *gin.Engine) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		uc := mocks.NewMockIGatewayOrchestrator(ctrl)
		logger, _ := test.NewNullLogger()
		h := NewPaymentHandler(uc, logger)

		r := gin.New()
		r.GET("/v1/payments/:reference", h.GetPayment)
		return uc, r
	}

	t.Run("success", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetPayment(gomock.Any(), "ORD-1").Return(entities.Payment{
			ID:             "pay-1",
			OrderReference: "ORD-1",
			Method:         "placetopay",
			AdditionalInformation: entities.AdditionalInformation{
				entities.InfoRequestID: "123",
				entities.InfoStatus:    entities.GatewayStatusPending,
			},
			Version: 2,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/ORD-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "pay-1" || body["lifecycle"] != "PENDING" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetPayment(gomock.Any(), "ORD-2").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/ORD-2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

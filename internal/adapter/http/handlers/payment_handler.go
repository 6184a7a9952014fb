package handlers

import (
	"net/http"

	response "placetopay_checkout/internal/adapter/http/dto/response"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentHandler exposes the stored payment state of an order.

type PaymentHandler struct {
	usecase usecase.IGatewayOrchestrator
	log     *logrus.Entry
}

func NewPaymentHandler(uc usecase.IGatewayOrchestrator, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{usecase: uc, log: logging.Component(logger, "payment-handler")}
}

// GetPayment returns the payment of the order in path with its additional
// information.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	reference := c.Param("reference")
	log := h.log.WithField(logging.FieldOrderReference, reference)

	payment, err := h.usecase.GetPayment(c.Request.Context(), reference)
	if err != nil {
		log.WithError(err).Warn("[payment][handler] get failed")
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.WithField("payment_id", payment.ID).Debug("[payment][handler] get success")

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

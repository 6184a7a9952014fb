package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "placetopay_checkout/internal/adapter/http/dto/request"
	response "placetopay_checkout/internal/adapter/http/dto/response"
	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase"
	"placetopay_checkout/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidRedirectPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// CheckoutHandler handles the redirect checkout endpoints.

type CheckoutHandler struct {
	usecase usecase.IGatewayOrchestrator
	log     *logrus.Entry
}

func NewCheckoutHandler(uc usecase.IGatewayOrchestrator, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, log: logging.Component(logger, "checkout-handler")}
}

// InitiateRedirect opens a gateway session for the order in path and returns
// the URL the buyer must be sent to.
//
// The body is optional; when present it may override the buyer's IP address
// and user agent.
func (h *CheckoutHandler) InitiateRedirect(c *gin.Context) {
	reference := c.Param("reference")
	log := h.log.WithField(logging.FieldOrderReference, reference)
	log.Info("[checkout][handler] redirect start")

	var payload request.CheckoutRedirectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.WithError(err).Warn("[checkout][handler] invalid payload")
			c.JSON(errInvalidRedirectPayload.HTTPStatus, errInvalidRedirectPayload.ToHTTPError())
			return
		}
	}

	client := entities.ClientInfo{
		IPAddress: payload.ResolveIPAddress(c.ClientIP()),
		UserAgent: payload.ResolveUserAgent(c.Request.UserAgent()),
	}

	processURL, err := h.usecase.InitiateRedirect(c.Request.Context(), reference, client)
	if err != nil {
		log.WithError(err).Warn("[checkout][handler] redirect failed")
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("[checkout][handler] redirect success")

	c.JSON(http.StatusOK, response.RedirectResponse{Reference: reference, ProcessURL: processURL})
}

// HandleReturn is hit when the buyer comes back from the gateway. It resolves
// the payment and reports the resulting state.
func (h *CheckoutHandler) HandleReturn(c *gin.Context) {
	reference := strings.TrimSpace(c.Query("reference"))
	log := h.log.WithField(logging.FieldOrderReference, reference)
	log.Info("[checkout][handler] return start")

	result, err := h.usecase.ResolvePayment(c.Request.Context(), reference)
	if err != nil {
		log.WithError(err).Warn("[checkout][handler] return failed")
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.WithField("lifecycle", result.Lifecycle).Info("[checkout][handler] return success")

	c.JSON(http.StatusOK, response.FromResolveResult(reference, result))
}

// LookupTransaction returns the raw gateway view of a session.
func (h *CheckoutHandler) LookupTransaction(c *gin.Context) {
	requestID := c.Param("request_id")
	log := h.log.WithField(logging.FieldRequestID, requestID)

	resp, err := h.usecase.LookupTransaction(c.Request.Context(), requestID)
	if err != nil {
		log.WithError(err).Warn("[checkout][handler] lookup failed")
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromGatewayResponse(resp))
}

// mapCheckoutError translates usecase errors. UnexpectedError must be checked
// first: it may wrap any of the other classes.
func mapCheckoutError(err error) *pkg.AppError {
	var (
		unexpected   *usecase.UnexpectedError
		rejection    *usecase.GatewayRejectionError
		precondition *usecase.PreconditionError
		persistence  *usecase.PersistenceError
	)
	switch {
	case errors.As(err, &unexpected):
		return pkg.NewDomainError("CHECKOUT_UNAVAILABLE", unexpected.Error(), err, http.StatusInternalServerError)
	case errors.As(err, &rejection):
		return pkg.NewDomainError("GATEWAY_REJECTED", rejection.Message, err, http.StatusConflict)
	case errors.As(err, &precondition):
		return pkg.NewDomainError("MISSING_PAYMENT_INFORMATION", precondition.Error(), err, http.StatusUnprocessableEntity)
	case errors.As(err, &persistence):
		return pkg.NewDomainError(persistence.Code, usecase.MessagePersistenceFailure, err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrInvalidOrderReference), errors.Is(err, usecase.ErrInvalidRequestID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrResolveInProgress):
		return pkg.NewDomainErrorSimple("RESOLVE_IN_PROGRESS", "Payment is already being resolved", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

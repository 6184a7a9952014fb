package routes

import (
	"net/http"

	"placetopay_checkout/internal/adapter/http/handlers"
	"placetopay_checkout/internal/infrastructure/payments"
	"placetopay_checkout/pkg"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout = "/checkout"
	PathPayments = "/payments"
)

func addCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, paymentHandler *handlers.PaymentHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("/:reference/redirect", checkoutHandler.InitiateRedirect)
		// Return URL sent to the gateway.
		checkout.GET("/response", checkoutHandler.HandleReturn)
		checkout.GET("/transactions/:request_id", checkoutHandler.LookupTransaction)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:reference", paymentHandler.GetPayment)
	}
}

// addMockGatewayRoutes serves the mock checkout page: it sends the buyer
// straight back to the session's return URL.
func addMockGatewayRoutes(router *gin.Engine, mock *payments.MockGateway) {
	router.GET("/mock/session/:request_id", func(c *gin.Context) {
		returnURL, ok := mock.ReturnURL(c.Param("request_id"))
		if !ok {
			appErr := pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Session not found", http.StatusNotFound)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Redirect(http.StatusFound, returnURL)
	})
}

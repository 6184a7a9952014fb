package interfaces

import (
	"context"

	"placetopay_checkout/internal/domain/entities"
)

// IPaymentGateway abstracts redirect payment providers (e.g. PlacetoPay).
//
// Request opens a redirect session and returns the process URL the buyer is sent
// to; Query reads the current session state including its transactions.
// Network timeouts are the implementation's concern.
type IPaymentGateway interface {
	Request(ctx context.Context, req entities.PaymentRequest) (entities.GatewayResponse, error)
	Query(ctx context.Context, requestID string) (entities.GatewayResponse, error)
}

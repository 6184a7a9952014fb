package interfaces

import (
	"context"
	"time"

	"placetopay_checkout/internal/domain/entities"
)

// PaymentStatusChanged is emitted after a resolve applied side effects to an order.
type PaymentStatusChanged struct {
	OrderReference string                    `json:"order_reference"`
	PaymentID      string                    `json:"payment_id"`
	RequestID      string                    `json:"request_id"`
	Status         entities.GatewayStatus    `json:"status"`
	Lifecycle      entities.LifecycleState   `json:"lifecycle"`
	Effects        entities.OrderSideEffects `json:"effects"`
	CorrelationID  string                    `json:"correlation_id"`
	OccurredAt     time.Time                 `json:"occurred_at"`
}

// IPaymentEventPublisher notifies other services about payment status changes.
type IPaymentEventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt PaymentStatusChanged) error
}

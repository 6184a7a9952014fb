package interfaces

import (
	"context"

	"placetopay_checkout/internal/domain/entities"
)

// IOrderRepository abstracts the host order store.

type IOrderRepository interface {
	GetByReference(ctx context.Context, reference string) (entities.Order, error)
	UpdateStatus(ctx context.Context, reference string, state entities.OrderState, status string) (entities.Order, error)
}

package interfaces

import (
	"context"
	"errors"

	"placetopay_checkout/internal/domain/entities"
)

// ErrPaymentVersionConflict is returned by Save when the stored version moved
// since the payment was read.
var ErrPaymentVersionConflict = errors.New("payment version conflict")

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Save is a compare-and-swap on Payment.Version: it only succeeds when the stored
// version equals p.Version and returns the payment with the bumped version.
type IPaymentRepository interface {
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByOrderReference(ctx context.Context, reference string) (entities.Payment, error)
	Save(ctx context.Context, p entities.Payment) (entities.Payment, error)
}

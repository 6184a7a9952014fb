package entities

import "fmt"

type SideEffectKind string

const (
	EffectNone    SideEffectKind = "none"
	EffectCapture SideEffectKind = "capture"
	EffectCancel  SideEffectKind = "cancel"
	EffectHold    SideEffectKind = "hold"
)

// OrderSideEffects describes what must happen to an order after a gateway status
// is known. It is a description only; applying it is up to the caller.
type OrderSideEffects struct {
	Kind    SideEffectKind `json:"kind"`
	State   OrderState     `json:"state,omitempty"`
	Status  string         `json:"status,omitempty"`
	Comment string         `json:"comment,omitempty"`
}

func (e OrderSideEffects) HasEffect() bool {
	return e.Kind != EffectNone
}

// ApplyStatusTransition maps the order's current state and the gateway status to
// the side effects to apply. Transitions that were already applied, or that would
// undo a settled order, produce EffectNone.
func ApplyStatusTransition(order Order, status GatewayStatus) OrderSideEffects {
	none := OrderSideEffects{Kind: EffectNone}

	switch CategoryOf(status.Status) {
	case StatusCategoryApproved:
		if order.State == OrderStateProcessing || order.State == OrderStateComplete {
			return none
		}
		return OrderSideEffects{
			Kind:    EffectCapture,
			State:   OrderStateProcessing,
			Status:  string(OrderStateProcessing),
			Comment: comment("approved", status),
		}
	case StatusCategoryRejected, StatusCategoryErrored:
		switch order.State {
		case OrderStateCanceled, OrderStateProcessing, OrderStateComplete:
			return none
		}
		return OrderSideEffects{
			Kind:    EffectCancel,
			State:   OrderStateCanceled,
			Status:  string(OrderStateCanceled),
			Comment: comment("rejected", status),
		}
	case StatusCategoryPending:
		switch order.State {
		case OrderStatePendingPayment, OrderStateCanceled, OrderStateProcessing, OrderStateComplete:
			return none
		}
		return OrderSideEffects{
			Kind:    EffectHold,
			State:   OrderStatePendingPayment,
			Status:  string(OrderStatePendingPayment),
			Comment: comment("pending", status),
		}
	}
	return none
}

func comment(label string, status GatewayStatus) string {
	if status.Message == "" {
		return fmt.Sprintf("payment %s", label)
	}
	return fmt.Sprintf("payment %s: %s", label, status.Message)
}

package entities

import "strings"

// LifecycleState is the checkout lifecycle of an order's payment.
//
//	UNINITIATED -> REDIRECT_REQUESTED -> PENDING -> APPROVED | REJECTED | ERRORED
//	APPROVED -> REFUNDED
//
// REDIRECT_REQUESTED only exists while the gateway request is in flight. A
// freshly opened session (status OK) is PENDING until the gateway reports the
// buyer's outcome.

type LifecycleState string

const (
	LifecycleUninitiated       LifecycleState = "UNINITIATED"
	LifecycleRedirectRequested LifecycleState = "REDIRECT_REQUESTED"
	LifecyclePending           LifecycleState = "PENDING"
	LifecycleApproved          LifecycleState = "APPROVED"
	LifecycleRejected          LifecycleState = "REJECTED"
	LifecycleErrored           LifecycleState = "ERRORED"
	LifecycleRefunded          LifecycleState = "REFUNDED"
)

func (s LifecycleState) IsTerminal() bool {
	switch s {
	case LifecycleApproved, LifecycleRejected, LifecycleErrored, LifecycleRefunded:
		return true
	}
	return false
}

// LifecycleOf derives the lifecycle state from persisted additional information.
func LifecycleOf(info AdditionalInformation) LifecycleState {
	if info.RequestID() == "" {
		return LifecycleUninitiated
	}
	switch CategoryOf(info.String(InfoStatus)) {
	case StatusCategoryApproved:
		return LifecycleApproved
	case StatusCategoryRejected:
		return LifecycleRejected
	case StatusCategoryErrored:
		return LifecycleErrored
	case StatusCategoryRefunded:
		return LifecycleRefunded
	}
	return LifecyclePending
}

// StatusCategory groups gateway statuses by their effect on the order.
type StatusCategory int

const (
	StatusCategoryUnknown StatusCategory = iota
	StatusCategoryPending
	StatusCategoryApproved
	StatusCategoryRejected
	StatusCategoryErrored
	StatusCategoryRefunded
)

func CategoryOf(status string) StatusCategory {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case GatewayStatusApproved:
		return StatusCategoryApproved
	case GatewayStatusRejected, GatewayStatusPartialExpired:
		return StatusCategoryRejected
	case GatewayStatusFailed, GatewayStatusError:
		return StatusCategoryErrored
	case GatewayStatusRefunded:
		return StatusCategoryRefunded
	// OK only acknowledges that a session was created.
	case GatewayStatusOK, GatewayStatusPending, GatewayStatusPendingValidation, GatewayStatusApprovedPartial:
		return StatusCategoryPending
	}
	return StatusCategoryUnknown
}

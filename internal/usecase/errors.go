package usecase

import (
	"errors"
	"fmt"
)

// Messages shown to the buyer. Internal fault detail never goes here.
const (
	MessageCheckoutUnavailable = "Something went wrong with your request. Please try again later."
	MessagePersistenceFailure  = "We could not save your payment information. Please try again later."
)

// PersistenceErrorCode identifies store failures while saving gateway state.
const PersistenceErrorCode = "PAYMENT_PERSISTENCE_FAILURE"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidOrderReference = errors.New("invalid order reference")
	ErrInvalidRequestID      = errors.New("invalid request id")
	ErrMissingRequestID      = errors.New("missing request_id in payment additional information")
	ErrResolveInProgress     = errors.New("payment resolution already in progress")
	ErrGatewayNotConfigured  = errors.New("payment gateway not configured")
	ErrPaymentNotFound       = errors.New("payment not found")
)

// GatewayRejectionError is returned when the gateway explicitly refuses a
// request. Its message is the gateway's own, human-readable text.
type GatewayRejectionError struct {
	Status  string
	Reason  string
	Message string
}

func (e *GatewayRejectionError) Error() string {
	return e.Message
}

// PreconditionError means required prior state is missing; no gateway call was made.
type PreconditionError struct {
	OrderReference string
	Err            error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("No additional information for order: %s", e.OrderReference)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// PersistenceError wraps a store failure while saving additional information.
type PersistenceError struct {
	Code  string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// UnexpectedError hides any other fault behind a fixed message. Cause is kept for
// logging and errors.Is checks only.
type UnexpectedError struct {
	Cause error
}

func (e *UnexpectedError) Error() string {
	return MessageCheckoutUnavailable
}

func (e *UnexpectedError) Unwrap() error { return e.Cause }

package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxSaveAttempts = 3
	paymentMethodCode      = "placetopay"
)

// IGatewayOrchestrator drives the redirect checkout.
//
// Flow:
//   - InitiateRedirect: build request, open gateway session, persist initial state.
//   - ResolvePayment: poll the gateway, reconcile, apply order side effects.
//   - LookupTransaction: raw gateway query for diagnostics.

type IGatewayOrchestrator interface {
	InitiateRedirect(ctx context.Context, reference string, client entities.ClientInfo) (string, error)
	ResolvePayment(ctx context.Context, reference string) (ResolveResult, error)
	LookupTransaction(ctx context.Context, requestID string) (entities.GatewayResponse, error)
	GetPayment(ctx context.Context, reference string) (entities.Payment, error)
}

// ResolveResult is the outcome of a poll.
type ResolveResult struct {
	Response  entities.GatewayResponse
	Payment   entities.Payment
	Lifecycle entities.LifecycleState
	Effects   entities.OrderSideEffects
}

type GatewayOrchestrator struct {
	orders      interfaces.IOrderRepository
	payments    interfaces.IPaymentRepository
	gateway     interfaces.IPaymentGateway
	builder     *PaymentRequestBuilder
	reconciler  *StatusReconciler
	publisher   interfaces.IPaymentEventPublisher
	locker      interfaces.ILocker
	logger      *logrus.Logger
	environment string

	newID           func() string
	now             func() time.Time
	maxSaveAttempts int
}

var _ IGatewayOrchestrator = (*GatewayOrchestrator)(nil)

type OrchestratorOption func(*GatewayOrchestrator)

// WithEventPublisher notifies status changes after a resolve.
func WithEventPublisher(p interfaces.IPaymentEventPublisher) OrchestratorOption {
	return func(o *GatewayOrchestrator) { o.publisher = p }
}

// WithLocker serializes concurrent resolves of the same order.
func WithLocker(l interfaces.ILocker) OrchestratorOption {
	return func(o *GatewayOrchestrator) { o.locker = l }
}

func NewGatewayOrchestrator(
	orders interfaces.IOrderRepository,
	payments interfaces.IPaymentRepository,
	gateway interfaces.IPaymentGateway,
	builder *PaymentRequestBuilder,
	logger *logrus.Logger,
	environment string,
	opts ...OrchestratorOption,
) *GatewayOrchestrator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	o := &GatewayOrchestrator{
		orders:          orders,
		payments:        payments,
		gateway:         gateway,
		builder:         builder,
		reconciler:      NewStatusReconciler(),
		logger:          logger,
		environment:     environment,
		newID:           uuid.NewString,
		now:             time.Now,
		maxSaveAttempts: defaultMaxSaveAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// callLogger creates the per-call logger. The correlation id is generated once,
// attached to every line logged during the call and carried in the returned
// context so gateway clients log under the same id.
func (o *GatewayOrchestrator) callLogger(ctx context.Context, reference string) (context.Context, *logrus.Entry) {
	id := o.newID()
	return logging.WithCorrelationID(ctx, id), o.logger.WithFields(logrus.Fields{
		logging.FieldCorrelationID:  id,
		logging.FieldOrderReference: reference,
	})
}

func (o *GatewayOrchestrator) InitiateRedirect(ctx context.Context, reference string, client entities.ClientInfo) (string, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", ErrInvalidOrderReference
	}
	ctx, log := o.callLogger(ctx, reference)
	log.Info("[checkout][usecase] initialize redirection to checkout")

	if o.gateway == nil {
		return "", o.unexpected(log, reference, ErrGatewayNotConfigured)
	}

	order, err := o.orders.GetByReference(ctx, reference)
	if err != nil {
		return "", o.unexpected(log, reference, err)
	}
	if order.Reference == "" {
		log.Info("[checkout][usecase] order not found")
		return "", ErrOrderNotFound
	}

	payment, err := o.loadOrCreatePayment(ctx, order)
	if err != nil {
		return "", o.unexpected(log, reference, err)
	}

	req, err := o.builder.Build(log, order, client)
	if err != nil {
		return "", o.unexpected(log, reference, err)
	}

	resp, err := o.gateway.Request(ctx, req)
	if err != nil {
		return "", o.unexpected(log, reference, err)
	}
	log.WithField("data", resp).Info("[checkout][usecase] response of checkout")

	if !resp.IsSuccessful() {
		log.WithFields(logrus.Fields{
			"status":         resp.Status.Status,
			"status_reason":  resp.Status.Reason,
			"status_message": resp.Status.Message,
		}).Warnf("[checkout][usecase] payment error [%s] %s - %s %s", reference, resp.Status.Message, resp.Status.Reason, resp.Status.Status)
		return "", &GatewayRejectionError{
			Status:  resp.Status.Status,
			Reason:  resp.Status.Reason,
			Message: resp.Status.Message,
		}
	}

	log = log.WithField(logging.FieldRequestID, resp.RequestID)
	_, err = o.importWithRetry(ctx, log, payment, func(entities.AdditionalInformation) map[string]any {
		return map[string]any{
			entities.InfoRequestID:     resp.RequestID,
			entities.InfoProcessURL:    resp.ProcessURL,
			entities.InfoStatus:        resp.Status.Status,
			entities.InfoStatusReason:  resp.Status.Reason,
			entities.InfoStatusMessage: resp.Status.Message,
			entities.InfoStatusDate:    resp.Status.Date,
			entities.InfoEnvironment:   o.environment,
			entities.InfoTransactions:  map[string]entities.TransactionRecord{},
		}
	})
	if err != nil {
		return "", o.unexpected(log, reference, err)
	}

	log.Info("[checkout][usecase] redirect session created")
	return resp.ProcessURL, nil
}

func (o *GatewayOrchestrator) ResolvePayment(ctx context.Context, reference string) (ResolveResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ResolveResult{}, ErrInvalidOrderReference
	}
	ctx, log := o.callLogger(ctx, reference)

	if o.gateway == nil {
		return ResolveResult{}, o.unexpected(log, reference, ErrGatewayNotConfigured)
	}

	order, err := o.orders.GetByReference(ctx, reference)
	if err != nil {
		return ResolveResult{}, o.unexpected(log, reference, err)
	}
	if order.Reference == "" {
		log.Info("[checkout][usecase] order not found")
		return ResolveResult{}, ErrOrderNotFound
	}

	payment, err := o.payments.GetByOrderReference(ctx, reference)
	if err != nil {
		return ResolveResult{}, o.unexpected(log, reference, err)
	}
	requestID := payment.AdditionalInformation.RequestID()
	if payment.ID == "" || requestID == "" {
		log.Debugf("[checkout][usecase] no additional information for order: %s", reference)
		return ResolveResult{}, &PreconditionError{OrderReference: reference, Err: ErrMissingRequestID}
	}
	log = log.WithField(logging.FieldRequestID, requestID)

	if o.locker != nil {
		release, err := o.locker.Acquire(ctx, "resolve:"+reference)
		switch {
		case errors.Is(err, interfaces.ErrLockNotAcquired):
			log.Info("[checkout][usecase] resolve already in progress")
			return ResolveResult{}, ErrResolveInProgress
		case err != nil:
			log.WithError(err).Warn("[checkout][usecase] resolve lock unavailable; continuing without lock")
		default:
			defer release()
		}
	}

	resp, err := o.gateway.Query(ctx, requestID)
	if err != nil {
		return ResolveResult{}, o.unexpected(log, reference, err)
	}

	result := ResolveResult{
		Response:  resp,
		Payment:   payment,
		Lifecycle: entities.LifecycleOf(payment.AdditionalInformation),
		Effects:   entities.OrderSideEffects{Kind: entities.EffectNone},
	}

	if !resp.IsSuccessful() {
		log.Infof("[checkout][usecase] the payment: %s was %s %s %s", resp.RequestID, resp.Status.Status, resp.Status.Message, resp.Status.Reason)
		return result, nil
	}
	log.Infof("[checkout][usecase] the payment %s was %s processing to resolve the payment", resp.RequestID, resp.Status.Status)

	saved, err := o.importWithRetry(ctx, log, payment, func(current entities.AdditionalInformation) map[string]any {
		return o.reconciler.Reconcile(current, resp.Status, resp.Transactions)
	})
	if err != nil {
		var perr *PersistenceError
		if errors.As(err, &perr) {
			return ResolveResult{}, err
		}
		return ResolveResult{}, o.unexpected(log, reference, err)
	}
	result.Payment = saved
	result.Lifecycle = entities.LifecycleOf(saved.AdditionalInformation)

	effects := entities.ApplyStatusTransition(order, resp.Status)
	result.Effects = effects
	if !effects.HasEffect() {
		return result, nil
	}

	if _, err := o.orders.UpdateStatus(ctx, reference, effects.State, effects.Status); err != nil {
		return ResolveResult{}, o.unexpected(log, reference, err)
	}
	log.WithField("effect", effects.Kind).Infof("[checkout][usecase] order moved to %s", effects.State)

	if o.publisher != nil {
		evt := interfaces.PaymentStatusChanged{
			OrderReference: reference,
			PaymentID:      saved.ID,
			RequestID:      requestID,
			Status:         resp.Status,
			Lifecycle:      result.Lifecycle,
			Effects:        effects,
			CorrelationID:  correlationID(log),
			OccurredAt:     o.now().UTC(),
		}
		if err := o.publisher.PublishStatusChanged(ctx, evt); err != nil {
			log.WithError(err).Warn("[checkout][usecase] failed publishing status change")
		}
	}
	return result, nil
}

func (o *GatewayOrchestrator) LookupTransaction(ctx context.Context, requestID string) (entities.GatewayResponse, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.GatewayResponse{}, ErrInvalidRequestID
	}
	ctx, log := o.callLogger(ctx, "")
	log = log.WithField(logging.FieldRequestID, requestID)
	if o.gateway == nil {
		return entities.GatewayResponse{}, o.unexpected(log, "", ErrGatewayNotConfigured)
	}

	resp, err := o.gateway.Query(ctx, requestID)
	if err != nil {
		return entities.GatewayResponse{}, o.unexpected(log, "", err)
	}
	return resp, nil
}

func (o *GatewayOrchestrator) GetPayment(ctx context.Context, reference string) (entities.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return entities.Payment{}, ErrInvalidOrderReference
	}
	p, err := o.payments.GetByOrderReference(ctx, reference)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// ImportToPayment lays data over the payment's additional information (new keys
// win) and saves it. Store failures come back as *PersistenceError.
func (o *GatewayOrchestrator) ImportToPayment(ctx context.Context, log *logrus.Entry, payment entities.Payment, data map[string]any) (entities.Payment, error) {
	actual := payment.AdditionalInformation
	if actual == nil {
		actual = entities.AdditionalInformation{}
	}

	log.WithField("payment_id", payment.ID).Debug("[checkout][usecase] initialize update additional information to payment")
	log.WithField("data", map[string]any(actual)).Debug("[checkout][usecase] current information")
	log.WithField("data", data).Debug("[checkout][usecase] new data to update")

	payment.AdditionalInformation = actual.Merge(data)
	payment.UpdatedAt = o.now().UTC()

	saved, err := o.payments.Save(ctx, payment)
	if err != nil {
		log.WithError(err).Warn("[checkout][usecase] exception to add additional information")
		return payment, &PersistenceError{Code: PersistenceErrorCode, Cause: err}
	}
	log.WithField("version", saved.Version).Info("[checkout][usecase] payment information saved")
	return saved, nil
}

// importWithRetry runs read-merge-write, re-reading the payment when a concurrent
// writer moved its version.
func (o *GatewayOrchestrator) importWithRetry(
	ctx context.Context,
	log *logrus.Entry,
	payment entities.Payment,
	build func(current entities.AdditionalInformation) map[string]any,
) (entities.Payment, error) {
	for attempt := 1; ; attempt++ {
		saved, err := o.ImportToPayment(ctx, log, payment, build(payment.AdditionalInformation))
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, interfaces.ErrPaymentVersionConflict) || attempt >= o.maxSaveAttempts {
			return entities.Payment{}, err
		}

		log.WithField("attempt", attempt).Info("[checkout][usecase] payment changed concurrently; reloading")
		fresh, gerr := o.payments.GetByID(ctx, payment.ID)
		if gerr != nil {
			return entities.Payment{}, &PersistenceError{Code: PersistenceErrorCode, Cause: gerr}
		}
		if fresh.ID == "" {
			return entities.Payment{}, &PersistenceError{Code: PersistenceErrorCode, Cause: ErrPaymentNotFound}
		}
		payment = fresh
	}
}

func (o *GatewayOrchestrator) loadOrCreatePayment(ctx context.Context, order entities.Order) (entities.Payment, error) {
	p, err := o.payments.GetByOrderReference(ctx, order.Reference)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID != "" {
		return p, nil
	}
	return entities.Payment{
		ID:                    o.newID(),
		OrderReference:        order.Reference,
		Method:                paymentMethodCode,
		AdditionalInformation: entities.AdditionalInformation{},
	}, nil
}

// unexpected logs a fault with its origin and hides it behind UnexpectedError.
func (o *GatewayOrchestrator) unexpected(log *logrus.Entry, reference string, err error) error {
	source := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		source = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	log.WithFields(logrus.Fields{
		"error":       err.Error(),
		"source":      source,
		"error_class": fmt.Sprintf("%T", err),
	}).Errorf("[checkout][usecase] payment error [%s] %v on %s - %T", reference, err, source, err)
	log.Errorf("[checkout][usecase] the order %s has a problem to create the payment", reference)
	return &UnexpectedError{Cause: err}
}

func correlationID(log *logrus.Entry) string {
	if v, ok := log.Data[logging.FieldCorrelationID].(string); ok {
		return v
	}
	return ""
}

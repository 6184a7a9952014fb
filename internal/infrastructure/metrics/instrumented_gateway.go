package metrics

import (
	"context"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// GatewayMetrics are the collectors recorded around gateway calls.
type GatewayMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	statuses *prometheus.CounterVec
}

func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	m := &GatewayMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Gateway calls by provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "Gateway call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "session_status_total",
			Help:      "Session statuses reported by the gateway.",
		}, []string{"provider", "operation", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.duration, m.statuses)
	}
	return m
}

// InstrumentedGateway records call counts, latency and reported statuses for the
// wrapped gateway.
type InstrumentedGateway struct {
	inner    interfaces.IPaymentGateway
	provider string
	metrics  *GatewayMetrics
}

var _ interfaces.IPaymentGateway = (*InstrumentedGateway)(nil)

func NewInstrumentedGateway(inner interfaces.IPaymentGateway, provider string, m *GatewayMetrics) *InstrumentedGateway {
	return &InstrumentedGateway{inner: inner, provider: provider, metrics: m}
}

func (g *InstrumentedGateway) Request(ctx context.Context, req entities.PaymentRequest) (entities.GatewayResponse, error) {
	start := time.Now()
	resp, err := g.inner.Request(ctx, req)
	g.observe("request", start, resp, err)
	return resp, err
}

func (g *InstrumentedGateway) Query(ctx context.Context, requestID string) (entities.GatewayResponse, error) {
	start := time.Now()
	resp, err := g.inner.Query(ctx, requestID)
	g.observe("query", start, resp, err)
	return resp, err
}

func (g *InstrumentedGateway) observe(operation string, start time.Time, resp entities.GatewayResponse, err error) {
	g.metrics.duration.WithLabelValues(g.provider, operation).Observe(time.Since(start).Seconds())

	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeError
	case !resp.IsSuccessful():
		outcome = OutcomeRejected
	}
	g.metrics.calls.WithLabelValues(g.provider, operation, outcome).Inc()

	if err == nil && resp.Status.Status != "" {
		g.metrics.statuses.WithLabelValues(g.provider, operation, resp.Status.Status).Inc()
	}
}

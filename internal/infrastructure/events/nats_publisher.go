package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// DefaultSubjectPrefix is the subject root for payment status events; the
// lower-cased lifecycle state is appended (checkout.payment.approved).
const DefaultSubjectPrefix = "checkout.payment"

const headerCorrelationID = "X-Correlation-ID"

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher publishes payment status changes as JSON messages.
type NATSPublisher struct {
	conn   msgPublisher
	prefix string
	log    *logrus.Entry
}

var _ interfaces.IPaymentEventPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(conn *nats.Conn, prefix string, logger *logrus.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{conn: conn, prefix: prefix, log: logging.Component(logger, "nats")}
}

func (p *NATSPublisher) PublishStatusChanged(ctx context.Context, evt interfaces.PaymentStatusChanged) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(Subject(p.prefix, evt))
	msg.Data = data
	msg.Header.Set(headerCorrelationID, evt.CorrelationID)

	if err := p.conn.PublishMsg(msg); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			logging.FieldOrderReference: evt.OrderReference,
			logging.FieldCorrelationID:  evt.CorrelationID,
		}).Warn("[payment][events] publish failed")
		return err
	}
	p.log.WithFields(logrus.Fields{
		"subject":                   msg.Subject,
		logging.FieldOrderReference: evt.OrderReference,
		logging.FieldCorrelationID:  evt.CorrelationID,
	}).Info("[payment][events] status change published")
	return nil
}

func Subject(prefix string, evt interfaces.PaymentStatusChanged) string {
	return prefix + "." + strings.ToLower(string(evt.Lifecycle))
}

// LogPublisher only logs events; used when NATS is not configured.
type LogPublisher struct {
	log *logrus.Entry
}

var _ interfaces.IPaymentEventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{log: logging.Component(logger, "events")}
}

func (p *LogPublisher) PublishStatusChanged(_ context.Context, evt interfaces.PaymentStatusChanged) error {
	p.log.WithFields(logrus.Fields{
		logging.FieldOrderReference: evt.OrderReference,
		logging.FieldCorrelationID:  evt.CorrelationID,
		"lifecycle":                 evt.Lifecycle,
		"effect":                    evt.Effects.Kind,
	}).Info("[payment][events] status changed")
	return nil
}

// ConnectNATS connects to NATS_URL. A nil connection is returned when the
// variable is empty or the server is unreachable.
func ConnectNATS(logger *logrus.Logger) *nats.Conn {
	log := logging.Component(logger, "nats")
	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Info("[payment][events] NATS_URL not set; events are logged only")
		return nil
	}
	nc, err := nats.Connect(url, nats.Name("placetopay-checkout"))
	if err != nil {
		log.WithError(err).Warn("[payment][events] nats connect failed; events are logged only")
		return nil
	}
	log.WithField("url", url).Info("[payment][events] nats connected")
	return nc
}

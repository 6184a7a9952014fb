package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// MockGateway answers like a redirect gateway without leaving the process.
// Sessions are approved on the first query. Enabled with PAYMENT_GATEWAY_MOCK.
type MockGateway struct {
	baseURL string
	log     *logrus.Entry
	now     func() time.Time

	mu       sync.Mutex
	seq      int64
	sessions map[string]entities.PaymentRequest
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(baseURL string, logger *logrus.Logger) *MockGateway {
	log := logging.Component(logger, "mock-gateway")
	log.Info("[payment][gateway] mock mode enabled")
	return &MockGateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
		now:      time.Now,
		seq:      time.Now().UTC().Unix(),
		sessions: map[string]entities.PaymentRequest{},
	}
}

func (g *MockGateway) Request(ctx context.Context, req entities.PaymentRequest) (entities.GatewayResponse, error) {
	g.mu.Lock()
	g.seq++
	id := strconv.FormatInt(g.seq, 10)
	g.sessions[id] = req
	g.mu.Unlock()

	logging.FromContext(ctx, g.log).WithFields(logrus.Fields{
		logging.FieldOrderReference: req.Reference,
		logging.FieldRequestID:      id,
	}).Info("[payment][gateway] mock create session success")

	return entities.GatewayResponse{
		RequestID:  id,
		ProcessURL: fmt.Sprintf("%s/mock/session/%s", g.baseURL, id),
		Status:     g.status(entities.GatewayStatusOK, "PC", "La petición se ha procesado correctamente"),
	}, nil
}

func (g *MockGateway) Query(_ context.Context, requestID string) (entities.GatewayResponse, error) {
	g.mu.Lock()
	req, ok := g.sessions[requestID]
	g.mu.Unlock()

	if !ok {
		return entities.GatewayResponse{
			RequestID: requestID,
			Status:    g.status(entities.GatewayStatusFailed, "BR", "La sesión no existe"),
		}, nil
	}

	approved := g.status(entities.GatewayStatusApproved, "00", "La petición ha sido aprobada exitosamente")
	return entities.GatewayResponse{
		RequestID: requestID,
		Status:    approved,
		Transactions: []entities.GatewayTransaction{{
			InternalReference: "mock-" + requestID,
			Reference:         req.Reference,
			Authorization:     "000000",
			Status:            approved,
			Franchise:         "CR_VS",
			PaymentMethodName: "Visa",
			PaymentMethod:     "visa",
			Amount:            req.Amount.Total.String(),
			IssuerName:        "MOCK BANK",
			ProcessorFields: []entities.ProcessorField{
				{Keyword: "bin", Value: "411111"},
				{Keyword: "lastDigits", Value: "1111"},
			},
		}},
	}, nil
}

// ReturnURL is where the mock checkout page sends the buyer back to.
func (g *MockGateway) ReturnURL(requestID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.sessions[requestID]
	if !ok {
		return "", false
	}
	return req.ReturnURL, true
}

func (g *MockGateway) status(status, reason, message string) entities.GatewayStatus {
	return entities.GatewayStatus{
		Status:  status,
		Reason:  reason,
		Message: message,
		Date:    g.now().Format(time.RFC3339),
	}
}

package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sirupsen/logrus"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentSearcher interface {
	Search(ctx context.Context, request payment.SearchRequest) (*payment.SearchResponse, error)
}

// MercadoPagoGateway serves the redirect flow with Checkout Pro.
//
// Request creates a preference whose external_reference is a fresh attempt id;
// that id is the session's request id. Query searches the payments made against
// it and maps them to gateway transactions.
type MercadoPagoGateway struct {
	preferences preferenceCreator
	payments    paymentSearcher
	sandbox     bool
	log         *logrus.Entry
	newID       func() string
	now         func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, sandbox bool, logger *logrus.Logger) (*MercadoPagoGateway, error) {
	log := logging.Component(logger, "mercadopago")
	if accessToken == "" {
		log.Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] failed creating sdk config")
		return nil, err
	}
	log.WithField("sandbox", sandbox).Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		sandbox:     sandbox,
		log:         log,
		newID:       uuid.NewString,
		now:         time.Now,
	}, nil
}

type mpPreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type mpPaymentResult struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	DateLastUpdated   string      `json:"date_last_updated"`
	TransactionAmount json.Number `json:"transaction_amount"`
	PaymentMethodID   string      `json:"payment_method_id"`
	PaymentTypeID     string      `json:"payment_type_id"`
	AuthorizationCode flexString  `json:"authorization_code"`
	IssuerID          flexString  `json:"issuer_id"`
	Installments      int         `json:"installments"`
	ExternalReference string      `json:"external_reference"`
	Card              struct {
		FirstSixDigits string `json:"first_six_digits"`
		LastFourDigits string `json:"last_four_digits"`
	} `json:"card"`
}

type mpSearchResult struct {
	Results []mpPaymentResult `json:"results"`
}

func (g *MercadoPagoGateway) Request(ctx context.Context, req entities.PaymentRequest) (entities.GatewayResponse, error) {
	if g == nil || g.preferences == nil {
		return entities.GatewayResponse{}, ErrMercadoPagoGatewayNotConfigured
	}
	attemptID := g.newID()
	log := logging.FromContext(ctx, g.log).WithFields(logrus.Fields{
		logging.FieldOrderReference: req.Reference,
		logging.FieldRequestID:      attemptID,
	})
	log.Info("[payment][gateway] create preference start")

	prefReq, err := toPreferenceRequest(attemptID, req)
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] preference payload build failed")
		return entities.GatewayResponse{}, err
	}

	resp, err := g.preferences.Create(ctx, prefReq)
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] sdk create preference failed")
		return entities.GatewayResponse{
			Status: entities.GatewayStatus{
				Status:  entities.GatewayStatusFailed,
				Reason:  "preference_error",
				Message: err.Error(),
				Date:    g.now().Format(time.RFC3339),
			},
		}, nil
	}

	var pref mpPreferenceResult
	if err := roundTrip(resp, &pref); err != nil {
		log.WithError(err).Warn("[payment][gateway] preference response decode failed")
		return entities.GatewayResponse{}, err
	}
	processURL := pref.InitPoint
	if g.sandbox && pref.SandboxInitPoint != "" {
		processURL = pref.SandboxInitPoint
	}
	log.WithField("preference_id", pref.ID).Info("[payment][gateway] create preference success")

	return entities.GatewayResponse{
		RequestID:  attemptID,
		ProcessURL: processURL,
		Status: entities.GatewayStatus{
			Status:  entities.GatewayStatusOK,
			Reason:  "PC",
			Message: "preference created",
			Date:    g.now().Format(time.RFC3339),
		},
	}, nil
}

func (g *MercadoPagoGateway) Query(ctx context.Context, requestID string) (entities.GatewayResponse, error) {
	if g == nil || g.payments == nil {
		return entities.GatewayResponse{}, ErrMercadoPagoGatewayNotConfigured
	}
	log := logging.FromContext(ctx, g.log).WithField(logging.FieldRequestID, requestID)
	log.Info("[payment][gateway] search payments start")

	resp, err := g.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{"external_reference": requestID},
		Limit:   50,
	})
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] sdk search failed")
		return entities.GatewayResponse{}, err
	}

	var found mpSearchResult
	if err := roundTrip(resp, &found); err != nil {
		log.WithError(err).Warn("[payment][gateway] search response decode failed")
		return entities.GatewayResponse{}, err
	}
	log.WithField("results", len(found.Results)).Info("[payment][gateway] search payments success")

	out := entities.GatewayResponse{RequestID: requestID}
	if len(found.Results) == 0 {
		out.Status = entities.GatewayStatus{
			Status:  entities.GatewayStatusPending,
			Reason:  "no_payment",
			Message: "no payment registered for this session yet",
			Date:    g.now().Format(time.RFC3339),
		}
		return out, nil
	}

	out.Transactions = make([]entities.GatewayTransaction, 0, len(found.Results))
	for _, p := range found.Results {
		out.Transactions = append(out.Transactions, mpTransaction(p))
	}
	out.Status = sessionStatus(out.Transactions)
	return out, nil
}

// MercadoPagoStatus maps a Mercado Pago payment status to the gateway vocabulary.
func MercadoPagoStatus(status string) string {
	switch status {
	case "approved":
		return entities.GatewayStatusApproved
	case "authorized", "pending", "in_process", "in_mediation":
		return entities.GatewayStatusPending
	case "rejected", "cancelled":
		return entities.GatewayStatusRejected
	case "refunded", "charged_back":
		return entities.GatewayStatusRefunded
	}
	return entities.GatewayStatusPending
}

func mpTransaction(p mpPaymentResult) entities.GatewayTransaction {
	fields := make([]entities.ProcessorField, 0, 3)
	if p.Card.FirstSixDigits != "" {
		fields = append(fields, entities.ProcessorField{Keyword: "bin", Value: p.Card.FirstSixDigits})
	}
	if p.Card.LastFourDigits != "" {
		fields = append(fields, entities.ProcessorField{Keyword: "lastDigits", Value: p.Card.LastFourDigits})
	}
	if p.Installments > 0 {
		fields = append(fields, entities.ProcessorField{
			Keyword: "credit",
			Value:   map[string]any{"installments": fmt.Sprintf("%d", p.Installments)},
		})
	}

	return entities.GatewayTransaction{
		InternalReference: p.ID.String(),
		Reference:         p.ExternalReference,
		Authorization:     string(p.AuthorizationCode),
		Status: entities.GatewayStatus{
			Status:  MercadoPagoStatus(p.Status),
			Reason:  p.StatusDetail,
			Message: p.StatusDetail,
			Date:    p.DateLastUpdated,
		},
		Franchise:         p.PaymentMethodID,
		PaymentMethodName: p.PaymentMethodID,
		PaymentMethod:     p.PaymentTypeID,
		Amount:            p.TransactionAmount.String(),
		IssuerName:        string(p.IssuerID),
		Refunded:          p.Status == "refunded",
		ProcessorFields:   fields,
	}
}

// sessionStatus picks the session outcome: any approved payment wins, then any
// pending one; otherwise the first transaction decides.
func sessionStatus(txs []entities.GatewayTransaction) entities.GatewayStatus {
	for _, want := range []string{entities.GatewayStatusApproved, entities.GatewayStatusPending} {
		for _, tx := range txs {
			if tx.Status.Status == want {
				return tx.Status
			}
		}
	}
	return txs[0].Status
}

func toPreferenceRequest(attemptID string, req entities.PaymentRequest) (preference.Request, error) {
	body := map[string]any{
		"external_reference": attemptID,
		"items": []map[string]any{{
			"id":          req.Reference,
			"title":       req.Description,
			"quantity":    1,
			"unit_price":  req.Amount.Total.InexactFloat64(),
			"currency_id": req.Amount.Currency,
		}},
		"payer": map[string]any{
			"name":    req.Buyer.Name,
			"surname": req.Buyer.Surname,
			"email":   req.Buyer.Email,
		},
		"back_urls": map[string]string{
			"success": req.ReturnURL,
			"pending": req.ReturnURL,
			"failure": req.ReturnURL,
		},
		"auto_return": "approved",
	}
	if req.Expiration != "" {
		body["expires"] = true
		body["expiration_date_to"] = req.Expiration
	}

	var out preference.Request
	if err := roundTrip(body, &out); err != nil {
		return preference.Request{}, err
	}
	return out, nil
}

// roundTrip converts between SDK and local shapes through their JSON form.
func roundTrip(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

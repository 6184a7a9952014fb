package payments

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/infrastructure/config"
	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrPlacetoPayUnexpectedResponse = errors.New("unexpected placetopay response")

const (
	sessionPath   = "api/session"
	nonceBytes    = 16
	maxBodyLogged = 2048
)

// PlacetoPayGateway talks to the PlacetoPay redirect (WebCheckout) API.
type PlacetoPayGateway struct {
	login   string
	tranKey string
	baseURL string
	headers map[string]string

	client *http.Client
	log    *logrus.Entry
	now    func() time.Time
}

var _ interfaces.IPaymentGateway = (*PlacetoPayGateway)(nil)

func NewPlacetoPayGateway(cfg config.GatewayConfig, logger *logrus.Logger) (*PlacetoPayGateway, error) {
	log := logging.Component(logger, "placetopay")
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Warn("[payment][gateway] placetopay not configured")
		return nil, err
	}

	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log.WithFields(logrus.Fields{"mode": cfg.Mode, "base_url": base}).Info("[payment][gateway] placetopay client initialized")

	return &PlacetoPayGateway{
		login:   cfg.Login,
		tranKey: cfg.TranKey,
		baseURL: base,
		headers: cfg.Headers,
		client:  &http.Client{Timeout: timeout},
		log:     log,
		now:     time.Now,
	}, nil
}

type wireAuth struct {
	Login   string `json:"login"`
	TranKey string `json:"tranKey"`
	Nonce   string `json:"nonce"`
	Seed    string `json:"seed"`
}

type wireAmount struct {
	Currency string                  `json:"currency"`
	Total    json.Number             `json:"total"`
	Details  []entities.AmountDetail `json:"details,omitempty"`
	Taxes    *[]entities.TaxBucket   `json:"taxes,omitempty"`
}

type wireItem struct {
	SKU      string      `json:"sku"`
	Name     string      `json:"name"`
	Category string      `json:"category,omitempty"`
	Qty      json.Number `json:"qty"`
	Price    json.Number `json:"price"`
	Tax      json.Number `json:"tax"`
}

type wirePayment struct {
	Reference    string           `json:"reference"`
	Description  string           `json:"description"`
	Amount       wireAmount       `json:"amount"`
	AllowPartial bool             `json:"allowPartial"`
	Shipping     *entities.Person `json:"shipping,omitempty"`
	Items        []wireItem       `json:"items,omitempty"`
}

type wireSessionRequest struct {
	Auth        wireAuth        `json:"auth"`
	Locale      string          `json:"locale,omitempty"`
	Buyer       entities.Person `json:"buyer"`
	Payment     wirePayment     `json:"payment"`
	Expiration  string          `json:"expiration"`
	ReturnURL   string          `json:"returnUrl"`
	IPAddress   string          `json:"ipAddress"`
	UserAgent   string          `json:"userAgent"`
	SkipResult  bool            `json:"skipResult"`
	NoBuyerFill bool            `json:"noBuyerFill"`
}

type wireQueryRequest struct {
	Auth wireAuth `json:"auth"`
}

// flexString accepts both JSON strings and numbers; the gateway sends some codes
// (status reasons) either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type wireStatus struct {
	Status  string     `json:"status"`
	Reason  flexString `json:"reason"`
	Message string     `json:"message"`
	Date    string     `json:"date"`
}

func (s wireStatus) toEntity() entities.GatewayStatus {
	return entities.GatewayStatus{Status: s.Status, Reason: string(s.Reason), Message: s.Message, Date: s.Date}
}

type wireTransaction struct {
	InternalReference json.Number `json:"internalReference"`
	Reference         string      `json:"reference"`
	Authorization     string      `json:"authorization"`
	Status            wireStatus  `json:"status"`
	Franchise         string      `json:"franchise"`
	PaymentMethod     string      `json:"paymentMethod"`
	PaymentMethodName string      `json:"paymentMethodName"`
	IssuerName        string      `json:"issuerName"`
	Refunded          bool        `json:"refunded"`
	Amount            struct {
		From struct {
			Currency string      `json:"currency"`
			Total    json.Number `json:"total"`
		} `json:"from"`
	} `json:"amount"`
	ProcessorFields []entities.ProcessorField `json:"processorFields"`
}

type wireSessionResponse struct {
	RequestID  json.Number       `json:"requestId"`
	ProcessURL string            `json:"processUrl"`
	Status     wireStatus        `json:"status"`
	Payment    []wireTransaction `json:"payment"`
}

// Request opens a redirect session.
func (g *PlacetoPayGateway) Request(ctx context.Context, req entities.PaymentRequest) (entities.GatewayResponse, error) {
	auth, err := g.authenticate()
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	log := logging.FromContext(ctx, g.log).WithField(logging.FieldOrderReference, req.Reference)
	log.Info("[payment][gateway] create session start")

	resp, err := g.post(ctx, log, g.baseURL+sessionPath, toWireSession(auth, req))
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	log.WithFields(logrus.Fields{
		logging.FieldRequestID: resp.RequestID,
		"status":               resp.Status.Status,
	}).Info("[payment][gateway] create session done")
	return resp, nil
}

// Query reads the session state including its transactions.
func (g *PlacetoPayGateway) Query(ctx context.Context, requestID string) (entities.GatewayResponse, error) {
	auth, err := g.authenticate()
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	log := logging.FromContext(ctx, g.log).WithField(logging.FieldRequestID, requestID)
	log.Info("[payment][gateway] query session start")

	resp, err := g.post(ctx, log, g.baseURL+sessionPath+"/"+requestID, wireQueryRequest{Auth: auth})
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	log.WithFields(logrus.Fields{
		"status":       resp.Status.Status,
		"transactions": len(resp.Transactions),
	}).Info("[payment][gateway] query session done")
	return resp, nil
}

// post sends body and decodes the session response. PlacetoPay reports its own
// failures (bad credentials, unknown session) with a 4xx status and a regular
// status block, so any body that decodes with a status is returned as is.
func (g *PlacetoPayGateway) post(ctx context.Context, log *logrus.Entry, url string, body any) (entities.GatewayResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return entities.GatewayResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range g.headers {
		httpReq.Header.Set(k, v)
	}

	res, err := g.client.Do(httpReq)
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] http call failed")
		return entities.GatewayResponse{}, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return entities.GatewayResponse{}, err
	}

	var wire wireSessionResponse
	if err := json.Unmarshal(raw, &wire); err != nil || wire.Status.Status == "" {
		log.WithFields(logrus.Fields{
			"http_status": res.StatusCode,
			"body":        truncate(string(raw), maxBodyLogged),
		}).Warn("[payment][gateway] undecodable response")
		return entities.GatewayResponse{}, fmt.Errorf("%w: http %d", ErrPlacetoPayUnexpectedResponse, res.StatusCode)
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.WithFields(logrus.Fields{
			"http_status": res.StatusCode,
			"reason":      wire.Status.Reason,
		}).Warn("[payment][gateway] gateway returned error status")
	}
	return fromWireSession(wire), nil
}

// authenticate builds a fresh auth block: tranKey = base64(sha256(nonce + seed + secret)).
func (g *PlacetoPayGateway) authenticate() (wireAuth, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return wireAuth{}, err
	}
	seed := g.now().Format(time.RFC3339)
	return wireAuth{
		Login:   g.login,
		TranKey: DigestTranKey(nonce, seed, g.tranKey),
		Nonce:   base64.StdEncoding.EncodeToString(nonce),
		Seed:    seed,
	}, nil
}

// DigestTranKey computes the per-call tranKey digest.
func DigestTranKey(nonce []byte, seed, secret string) string {
	h := sha256.New()
	h.Write(nonce)
	h.Write([]byte(seed))
	h.Write([]byte(secret))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func toWireSession(auth wireAuth, req entities.PaymentRequest) wireSessionRequest {
	items := make([]wireItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, wireItem{
			SKU:      it.SKU,
			Name:     it.Name,
			Category: it.Category,
			Qty:      number(it.Quantity),
			Price:    number(it.UnitPrice),
			Tax:      number(it.TaxAmount),
		})
	}

	amount := wireAmount{
		Currency: req.Amount.Currency,
		Total:    number(req.Amount.Total),
		Details:  req.Amount.Details,
	}
	if req.Amount.Taxes != nil {
		taxes := req.Amount.Taxes
		amount.Taxes = &taxes
	}

	shipping := req.Shipping
	return wireSessionRequest{
		Auth:   auth,
		Locale: req.Locale,
		Buyer:  req.Buyer,
		Payment: wirePayment{
			Reference:    req.Reference,
			Description:  req.Description,
			Amount:       amount,
			AllowPartial: req.AllowPartial,
			Shipping:     &shipping,
			Items:        items,
		},
		Expiration:  req.Expiration,
		ReturnURL:   req.ReturnURL,
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		SkipResult:  req.SkipResult,
		NoBuyerFill: req.NoBuyerFill,
	}
}

func fromWireSession(w wireSessionResponse) entities.GatewayResponse {
	out := entities.GatewayResponse{
		RequestID:  w.RequestID.String(),
		ProcessURL: w.ProcessURL,
		Status:     w.Status.toEntity(),
	}
	if len(w.Payment) == 0 {
		return out
	}
	out.Transactions = make([]entities.GatewayTransaction, 0, len(w.Payment))
	for _, tx := range w.Payment {
		out.Transactions = append(out.Transactions, entities.GatewayTransaction{
			InternalReference: tx.InternalReference.String(),
			Reference:         tx.Reference,
			Authorization:     tx.Authorization,
			Status:            tx.Status.toEntity(),
			Franchise:         tx.Franchise,
			PaymentMethodName: tx.PaymentMethodName,
			PaymentMethod:     tx.PaymentMethod,
			Amount:            tx.Amount.From.Total.String(),
			IssuerName:        tx.IssuerName,
			Refunded:          tx.Refunded,
			ProcessorFields:   tx.ProcessorFields,
		})
	}
	return out
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

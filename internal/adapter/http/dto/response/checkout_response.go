package response

import (
	"sort"
	"time"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/usecase"
)

type RedirectResponse struct {
	Reference  string `json:"reference"`
	ProcessURL string `json:"process_url"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Date    string `json:"date,omitempty"`
}

type TransactionResponse struct {
	InternalReference string         `json:"internal_reference"`
	Authorization     string         `json:"authorization,omitempty"`
	Status            StatusResponse `json:"status"`
	Franchise         string         `json:"franchise,omitempty"`
	PaymentMethod     string         `json:"payment_method,omitempty"`
	PaymentMethodName string         `json:"payment_method_name,omitempty"`
	Amount            string         `json:"amount,omitempty"`
	IssuerName        string         `json:"issuer_name,omitempty"`
	Refunded          bool           `json:"refunded"`
}

type EffectResponse struct {
	Kind    string `json:"kind"`
	State   string `json:"state,omitempty"`
	Status  string `json:"status,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ResolveResponse is returned when the buyer comes back from the gateway.
type ResolveResponse struct {
	Reference    string                `json:"reference"`
	RequestID    string                `json:"request_id"`
	Lifecycle    string                `json:"lifecycle"`
	Status       StatusResponse        `json:"status"`
	Effect       EffectResponse        `json:"effect"`
	Transactions []TransactionResponse `json:"transactions"`
}

// SessionResponse is the raw gateway view of a session.
type SessionResponse struct {
	RequestID    string                `json:"request_id"`
	Status       StatusResponse        `json:"status"`
	Transactions []TransactionResponse `json:"transactions"`
}

type PaymentTransactionResponse struct {
	InternalReference string `json:"internal_reference"`
	entities.TransactionRecord
}

type PaymentResponse struct {
	ID             string                       `json:"id"`
	OrderReference string                       `json:"order_reference"`
	Method         string                       `json:"method"`
	Lifecycle      string                       `json:"lifecycle"`
	RequestID      string                       `json:"request_id,omitempty"`
	ProcessURL     string                       `json:"process_url,omitempty"`
	Status         StatusResponse               `json:"status"`
	Environment    string                       `json:"environment,omitempty"`
	Transactions   []PaymentTransactionResponse `json:"transactions"`
	Version        int64                        `json:"version"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

func FromGatewayStatus(s entities.GatewayStatus) StatusResponse {
	return StatusResponse{Status: s.Status, Reason: s.Reason, Message: s.Message, Date: s.Date}
}

func FromGatewayTransactions(txs []entities.GatewayTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionResponse{
			InternalReference: tx.InternalReference,
			Authorization:     tx.Authorization,
			Status:            FromGatewayStatus(tx.Status),
			Franchise:         tx.Franchise,
			PaymentMethod:     tx.PaymentMethod,
			PaymentMethodName: tx.PaymentMethodName,
			Amount:            tx.Amount,
			IssuerName:        tx.IssuerName,
			Refunded:          tx.Refunded,
		})
	}
	return out
}

func FromResolveResult(reference string, r usecase.ResolveResult) ResolveResponse {
	return ResolveResponse{
		Reference: reference,
		RequestID: r.Payment.AdditionalInformation.RequestID(),
		Lifecycle: string(r.Lifecycle),
		Status:    FromGatewayStatus(r.Response.Status),
		Effect: EffectResponse{
			Kind:    string(r.Effects.Kind),
			State:   string(r.Effects.State),
			Status:  r.Effects.Status,
			Comment: r.Effects.Comment,
		},
		Transactions: FromGatewayTransactions(r.Response.Transactions),
	}
}

func FromGatewayResponse(r entities.GatewayResponse) SessionResponse {
	return SessionResponse{
		RequestID:    r.RequestID,
		Status:       FromGatewayStatus(r.Status),
		Transactions: FromGatewayTransactions(r.Transactions),
	}
}

// FromPayment renders a stored payment. Transactions are sorted by internal
// reference so the output is stable.
func FromPayment(p entities.Payment) PaymentResponse {
	info := p.AdditionalInformation
	records := info.Transactions()
	refs := make([]string, 0, len(records))
	for ref := range records {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	txs := make([]PaymentTransactionResponse, 0, len(refs))
	for _, ref := range refs {
		txs = append(txs, PaymentTransactionResponse{InternalReference: ref, TransactionRecord: records[ref]})
	}

	return PaymentResponse{
		ID:             p.ID,
		OrderReference: p.OrderReference,
		Method:         p.Method,
		Lifecycle:      string(entities.LifecycleOf(info)),
		RequestID:      info.RequestID(),
		ProcessURL:     info.String(entities.InfoProcessURL),
		Status: StatusResponse{
			Status:  info.String(entities.InfoStatus),
			Reason:  info.String(entities.InfoStatusReason),
			Message: info.String(entities.InfoStatusMessage),
			Date:    info.String(entities.InfoStatusDate),
		},
		Environment:  info.String(entities.InfoEnvironment),
		Transactions: txs,
		Version:      p.Version,
		UpdatedAt:    p.UpdatedAt,
	}
}

package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Keys recognized in a payment's additional information.
const (
	InfoRequestID      = "request_id"
	InfoProcessURL     = "process_url"
	InfoStatus         = "status"
	InfoStatusReason   = "status_reason"
	InfoStatusMessage  = "status_message"
	InfoStatusDate     = "status_date"
	InfoEnvironment    = "environment"
	InfoAuthorization  = "authorization"
	InfoRefunded       = "refunded"
	InfoTransactions   = "transactions"
	InfoProcessorField = "processor_field"
)

// Payment is the host payment record of an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_reference-index): order_reference
//
// Version is the optimistic concurrency token: every save must carry the version
// it was read with, the store bumps it on success.
type Payment struct {
	ID                    string                `json:"id"`
	OrderReference        string                `json:"order_reference"`
	Method                string                `json:"method"`
	AdditionalInformation AdditionalInformation `json:"additional_information,omitempty"`
	Version               int64                 `json:"version"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// AdditionalInformation is the free-form gateway side channel persisted with a
// payment. Values round-trip through the store, so nested values may come back
// as plain maps instead of the types that were written.
type AdditionalInformation map[string]any

// TransactionRecord is the normalized view of one gateway transaction.
type TransactionRecord struct {
	Authorization     string `json:"authorization" dynamodbav:"authorization"`
	Status            string `json:"status" dynamodbav:"status"`
	StatusDate        string `json:"status_date" dynamodbav:"status_date"`
	StatusMessage     string `json:"status_message" dynamodbav:"status_message"`
	StatusReason      string `json:"status_reason" dynamodbav:"status_reason"`
	Franchise         string `json:"franchise" dynamodbav:"franchise"`
	PaymentMethodName string `json:"payment_method_name" dynamodbav:"payment_method_name"`
	PaymentMethod     string `json:"payment_method" dynamodbav:"payment_method"`
	Amount            string `json:"amount" dynamodbav:"amount"`
	Bin               string `json:"bin" dynamodbav:"bin"`
	LastDigits        string `json:"lastDigits" dynamodbav:"lastDigits"`
	IssuerName        string `json:"issuerName" dynamodbav:"issuerName"`
	Installments      string `json:"installments" dynamodbav:"installments"`
	Lote              string `json:"lote" dynamodbav:"lote"`
	Line              string `json:"line" dynamodbav:"line"`
}

// Merge returns a copy of a with data laid over it; keys in data win.
func (a AdditionalInformation) Merge(data map[string]any) AdditionalInformation {
	out := make(AdditionalInformation, len(a)+len(data))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

func (a AdditionalInformation) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (a AdditionalInformation) RequestID() string {
	return strings.TrimSpace(a.String(InfoRequestID))
}

// Transactions decodes the transactions entry into typed records.
//
// Entries that cannot be decoded are dropped from the returned view only; they
// are not removed from the stored value until the map is rewritten.
func (a AdditionalInformation) Transactions() map[string]TransactionRecord {
	out := map[string]TransactionRecord{}
	switch v := a[InfoTransactions].(type) {
	case map[string]TransactionRecord:
		for k, rec := range v {
			out[k] = rec
		}
	case map[string]any:
		for k, raw := range v {
			if rec, ok := raw.(TransactionRecord); ok {
				out[k] = rec
				continue
			}
			b, err := json.Marshal(raw)
			if err != nil {
				continue
			}
			var rec TransactionRecord
			if err := json.Unmarshal(b, &rec); err != nil {
				continue
			}
			out[k] = rec
		}
	}
	return out
}

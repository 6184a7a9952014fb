package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"placetopay_checkout/internal/domain/entities"
)

// ProcessorKeyword is a processor field keyword the reconciler extracts.
type ProcessorKeyword string

const (
	KeywordBin          ProcessorKeyword = "bin"
	KeywordLastDigits   ProcessorKeyword = "lastDigits"
	KeywordBatch        ProcessorKeyword = "batch"
	KeywordLine         ProcessorKeyword = "line"
	KeywordInstallments ProcessorKeyword = "installments"
)

var recognizedKeywords = map[string]ProcessorKeyword{
	string(KeywordBin):          KeywordBin,
	string(KeywordLastDigits):   KeywordLastDigits,
	string(KeywordBatch):        KeywordBatch,
	string(KeywordLine):         KeywordLine,
	string(KeywordInstallments): KeywordInstallments,
}

// StatusReconciler merges gateway status and transactions into a payment's
// additional information. It is pure: nothing is read from or written to storage.
type StatusReconciler struct{}

func NewStatusReconciler() *StatusReconciler {
	return &StatusReconciler{}
}

// Reconcile returns current with the gateway data laid over it.
//
// The first transaction is the primary one; its authorization, refunded flag and
// raw processor fields are promoted to the top level. Transactions are keyed by
// internal reference: entries seen before are overwritten, entries absent from
// this response are kept.
func (r *StatusReconciler) Reconcile(current entities.AdditionalInformation, status entities.GatewayStatus, transactions []entities.GatewayTransaction) entities.AdditionalInformation {
	update := map[string]any{
		entities.InfoStatus:         status.Status,
		entities.InfoStatusReason:   status.Reason,
		entities.InfoStatusMessage:  status.Message,
		entities.InfoStatusDate:     status.Date,
		entities.InfoAuthorization:  nil,
		entities.InfoRefunded:       false,
		entities.InfoProcessorField: nil,
	}

	if len(transactions) > 0 {
		primary := transactions[0]
		update[entities.InfoAuthorization] = primary.Authorization
		update[entities.InfoRefunded] = primary.Refunded
		update[entities.InfoProcessorField] = primary.ProcessorFieldsMap()

		parsed := current.Transactions()
		for _, tx := range transactions {
			parsed[tx.InternalReference] = TransactionRecordOf(tx)
		}
		update[entities.InfoTransactions] = parsed
	} else if _, ok := current[entities.InfoTransactions]; !ok {
		update[entities.InfoTransactions] = map[string]entities.TransactionRecord{}
	}

	return current.Merge(update)
}

// TransactionRecordOf normalizes a gateway transaction.
func TransactionRecordOf(tx entities.GatewayTransaction) entities.TransactionRecord {
	fields := ExtractProcessorFields(tx.ProcessorFields)
	return entities.TransactionRecord{
		Authorization:     tx.Authorization,
		Status:            tx.Status.Status,
		StatusDate:        tx.Status.Date,
		StatusMessage:     tx.Status.Message,
		StatusReason:      tx.Status.Reason,
		Franchise:         tx.Franchise,
		PaymentMethodName: tx.PaymentMethodName,
		PaymentMethod:     tx.PaymentMethod,
		Amount:            tx.Amount,
		Bin:               fields[KeywordBin],
		LastDigits:        fields[KeywordLastDigits],
		IssuerName:        tx.IssuerName,
		Installments:      fields[KeywordInstallments],
		Lote:              fields[KeywordBatch],
		Line:              fields[KeywordLine],
	}
}

// ExtractProcessorFields scans every processor field once and returns the
// recognized keywords. Installments may also come nested inside a structured
// value under an "installments" key.
func ExtractProcessorFields(fields []entities.ProcessorField) map[ProcessorKeyword]string {
	out := make(map[ProcessorKeyword]string, len(recognizedKeywords))
	for _, f := range fields {
		if nested, ok := asMap(f.Value); ok {
			if v, ok := nested[string(KeywordInstallments)]; ok && v != nil {
				out[KeywordInstallments] = scalarString(v)
			}
			continue
		}
		kw, ok := recognizedKeywords[strings.TrimSpace(f.Keyword)]
		if !ok {
			continue
		}
		out[kw] = scalarString(f.Value)
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

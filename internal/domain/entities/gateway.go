package entities

import "strings"

// Gateway status values reported by the redirect gateway.
const (
	GatewayStatusOK                = "OK"
	GatewayStatusFailed            = "FAILED"
	GatewayStatusApproved          = "APPROVED"
	GatewayStatusApprovedPartial   = "APPROVED_PARTIAL"
	GatewayStatusPartialExpired    = "PARTIAL_EXPIRED"
	GatewayStatusRejected          = "REJECTED"
	GatewayStatusPending           = "PENDING"
	GatewayStatusPendingValidation = "PENDING_VALIDATION"
	GatewayStatusRefunded          = "REFUNDED"
	GatewayStatusError             = "ERROR"
)

// GatewayStatus is the status block attached to every gateway response.
type GatewayStatus struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// IsFailure reports whether the status marks the call itself as failed.
func (s GatewayStatus) IsFailure() bool {
	switch strings.ToUpper(s.Status) {
	case GatewayStatusFailed, GatewayStatusError:
		return true
	}
	return false
}

// GatewayResponse is the result of both request and query calls.
//
// Transactions is only filled by query.
type GatewayResponse struct {
	RequestID    string               `json:"requestId"`
	ProcessURL   string               `json:"processUrl,omitempty"`
	Status       GatewayStatus        `json:"status"`
	Transactions []GatewayTransaction `json:"payment,omitempty"`
}

func (r GatewayResponse) IsSuccessful() bool {
	return r.Status.Status != "" && !r.Status.IsFailure()
}

// GatewayTransaction is a single payment attempt inside a session.
type GatewayTransaction struct {
	InternalReference string           `json:"internalReference"`
	Reference         string           `json:"reference,omitempty"`
	Authorization     string           `json:"authorization"`
	Status            GatewayStatus    `json:"status"`
	Franchise         string           `json:"franchise"`
	PaymentMethodName string           `json:"paymentMethodName"`
	PaymentMethod     string           `json:"paymentMethod"`
	Amount            string           `json:"amount"`
	IssuerName        string           `json:"issuerName"`
	Refunded          bool             `json:"refunded"`
	ProcessorFields   []ProcessorField `json:"processorFields,omitempty"`
}

// ProcessorField is an untyped keyword/value pair from the card processor.
// Value is usually a string but may be a nested map.
type ProcessorField struct {
	Keyword string `json:"keyword"`
	Value   any    `json:"value"`
}

// ProcessorFieldsMap flattens the fields into keyword -> value. Later keywords win.
func (t GatewayTransaction) ProcessorFieldsMap() map[string]any {
	out := make(map[string]any, len(t.ProcessorFields))
	for _, f := range t.ProcessorFields {
		out[f.Keyword] = f.Value
	}
	return out
}

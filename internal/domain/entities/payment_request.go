package entities

import "github.com/shopspring/decimal"

type AmountDetailKind string

const (
	AmountDetailSubtotal AmountDetailKind = "subtotal"
	AmountDetailDiscount AmountDetailKind = "discount"
	AmountDetailShipping AmountDetailKind = "shipping"
)

// DefaultTaxKind is used for tax codes missing from the category mapping.
const DefaultTaxKind = "valueAddedTax"

// PaymentRequest is the payload sent to the gateway to open a redirect session.
//
// A request is built per redirect attempt and is not modified after it is sent.
type PaymentRequest struct {
	Reference   string     `json:"reference"`
	Description string     `json:"description"`
	Locale      string     `json:"locale"`
	Buyer       Person     `json:"buyer"`
	Shipping    Person     `json:"shipping"`
	Amount      Amount     `json:"amount"`
	Items       []LineItem `json:"items"`

	AllowPartial bool   `json:"allowPartial"`
	ReturnURL    string `json:"returnUrl"`
	Expiration   string `json:"expiration"`
	IPAddress    string `json:"ipAddress"`
	UserAgent    string `json:"userAgent"`
	SkipResult   bool   `json:"skipResult"`
	NoBuyerFill  bool   `json:"noBuyerFill"`
}

// Amount carries the totals of a request.
//
// Taxes == nil means the key must not be sent at all; an empty non-nil slice is
// sent as an empty list.
type Amount struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Details  []AmountDetail  `json:"details"`
	Taxes    []TaxBucket     `json:"taxes,omitempty"`
}

type AmountDetail struct {
	Kind   AmountDetailKind `json:"kind"`
	Amount string           `json:"amount"`
}

// TaxBucket is the merged tax of one category. Amount and Base are fixed-point
// strings with four decimals.
type TaxBucket struct {
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Base   string `json:"base"`
}

type LineItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
	TaxAmount decimal.Decimal `json:"tax"`
}

// Detail returns the amount detail of the given kind, if present.
func (a Amount) Detail(kind AmountDetailKind) (AmountDetail, bool) {
	for _, d := range a.Details {
		if d.Kind == kind {
			return d, true
		}
	}
	return AmountDetail{}, false
}

// ClientInfo describes the buyer's browser session that triggered the redirect.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

package entities

import "github.com/shopspring/decimal"

// OrderState and OrderStatus follow the host store vocabulary.
//
// State is the coarse lifecycle bucket; Status is the label shown to the buyer.

type OrderState string

const (
	OrderStateNew            OrderState = "new"
	OrderStatePendingPayment OrderState = "pending_payment"
	OrderStateProcessing     OrderState = "processing"
	OrderStateComplete       OrderState = "complete"
	OrderStateCanceled       OrderState = "canceled"
	OrderStateHolded         OrderState = "holded"
)

// Order is the read model of a host order consumed by the checkout flow.
//
// Storage model (DynamoDB):
//   - PK: reference
//
// Monetary representation:
//   - Amounts are decimals; GrandTotal is optional and falls back to TotalDue.
//   - TaxLines are kept exactly as the host store reports them (raw strings),
//     the tax aggregator is responsible for parsing them.
type Order struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Currency  string `json:"currency"`

	GrandTotal     *decimal.Decimal `json:"grand_total,omitempty"`
	TotalDue       decimal.Decimal  `json:"total_due"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	ShippingAmount decimal.Decimal  `json:"shipping_amount"`

	Items    []OrderItem `json:"items"`
	TaxLines []TaxLine   `json:"tax_lines,omitempty"`

	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`

	State  OrderState `json:"state"`
	Status string     `json:"status"`
}

// OrderItem is a single order line.
//
// Lines with a ParentItemID are children of a bundle/configurable product and are
// not sent to the gateway on their own.
type OrderItem struct {
	ID           string          `json:"id"`
	ParentItemID string          `json:"parent_item_id,omitempty"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	ProductType  string          `json:"product_type"`
	QtyOrdered   decimal.Decimal `json:"qty_ordered"`
	Price        decimal.Decimal `json:"price"`
	BasePrice    decimal.Decimal `json:"base_price"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Hidden       bool            `json:"hidden,omitempty"`
}

// Visible reports whether the line is shown to the buyer as its own item.
func (i OrderItem) Visible() bool {
	return i.ParentItemID == "" && !i.Hidden
}

// TaxLine is a per-line tax record as stored by the host.
type TaxLine struct {
	Code       string `json:"code" dynamodbav:"code"`
	RealAmount string `json:"real_amount" dynamodbav:"real_amount"`
	TaxPercent string `json:"tax_percent" dynamodbav:"tax_percent"`
	ItemID     string `json:"item_id,omitempty" dynamodbav:"item_id,omitempty"`
}

// VisibleItems returns the lines that become gateway items.
func (o Order) VisibleItems() []OrderItem {
	out := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it.Visible() {
			out = append(out, it)
		}
	}
	return out
}

// ItemByID finds a line by its host id.
func (o Order) ItemByID(id string) (OrderItem, bool) {
	for _, it := range o.Items {
		if it.ID == id {
			return it, true
		}
	}
	return OrderItem{}, false
}

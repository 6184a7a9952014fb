package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"placetopay_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrInvalidBuyerAddress = errors.New("invalid buyer address")

// ReturnPath is the host route the buyer's browser lands on after the redirect.
const ReturnPath = "/v1/checkout/response"

// RequestOptions are the checkout options that shape an outbound request.
type RequestOptions struct {
	ExpirationMinutes    int
	AllowPartialPayment  bool
	SkipResult           bool
	FillBuyerInformation bool
	FillTaxInformation   bool
	TaxCategoryMap       map[string]string
	Locale               string
	ReturnURLBase        string
}

// PaymentRequestBuilder turns an order into the gateway request that opens a
// redirect session.
type PaymentRequestBuilder struct {
	opts  RequestOptions
	taxes *TaxAggregator
	now   func() time.Time
}

func NewPaymentRequestBuilder(opts RequestOptions, taxes *TaxAggregator) *PaymentRequestBuilder {
	if taxes == nil {
		taxes = NewTaxAggregator()
	}
	return &PaymentRequestBuilder{opts: opts, taxes: taxes, now: time.Now}
}

func (b *PaymentRequestBuilder) Build(log *logrus.Entry, order entities.Order, client entities.ClientInfo) (entities.PaymentRequest, error) {
	if order.BillingAddress == nil {
		return entities.PaymentRequest{}, fmt.Errorf("%w: order %s has no billing address", ErrInvalidBuyerAddress, order.Reference)
	}
	buyer, err := entities.PersonFromAddress(*order.BillingAddress)
	if err != nil {
		return entities.PaymentRequest{}, fmt.Errorf("%w: %v", ErrInvalidBuyerAddress, err)
	}
	shipping := buyer
	if order.ShippingAddress != nil {
		shipping, err = entities.PersonFromAddress(*order.ShippingAddress)
		if err != nil {
			return entities.PaymentRequest{}, fmt.Errorf("%w: shipping: %v", ErrInvalidBuyerAddress, err)
		}
	}

	total := order.TotalDue
	if order.GrandTotal != nil {
		total = *order.GrandTotal
	}

	visible := order.VisibleItems()
	items := make([]entities.LineItem, 0, len(visible))
	for _, it := range visible {
		items = append(items, entities.LineItem{
			SKU:       it.SKU,
			Name:      CleanText(it.Name),
			Category:  it.ProductType,
			Quantity:  it.QtyOrdered,
			UnitPrice: it.Price,
			TaxAmount: it.TaxAmount,
		})
	}

	req := entities.PaymentRequest{
		Reference:   order.Reference,
		Description: fmt.Sprintf("Order %s", order.Reference),
		Locale:      b.opts.Locale,
		Buyer:       buyer,
		Shipping:    shipping,
		Amount: entities.Amount{
			Total:    total,
			Currency: order.Currency,
			Details: []entities.AmountDetail{
				{Kind: entities.AmountDetailSubtotal, Amount: decimalString(order.Subtotal)},
				{Kind: entities.AmountDetailDiscount, Amount: DiscountAmount(order.DiscountAmount)},
				{Kind: entities.AmountDetailShipping, Amount: decimalString(order.ShippingAmount)},
			},
		},
		Items:        items,
		AllowPartial: b.opts.AllowPartialPayment,
		ReturnURL:    b.returnURL(order.Reference),
		Expiration:   b.now().Add(time.Duration(b.opts.ExpirationMinutes) * time.Minute).Format(time.RFC3339),
		IPAddress:    client.IPAddress,
		UserAgent:    client.UserAgent,
		SkipResult:   b.opts.SkipResult,
		NoBuyerFill:  !b.opts.FillBuyerInformation,
	}

	if b.opts.FillTaxInformation {
		req.Amount.Taxes = b.taxes.Aggregate(log, order, b.opts.TaxCategoryMap)
	}
	return req, nil
}

func (b *PaymentRequestBuilder) returnURL(reference string) string {
	q := url.Values{}
	q.Set("reference", reference)
	return b.opts.ReturnURLBase + ReturnPath + "?" + q.Encode()
}

// DiscountAmount renders a discount as the negative correction the gateway
// expects. A zero discount is sent as "0".
func DiscountAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return decimalString(d.Neg())
}

// decimalString keeps the scale the amount was stored with ("5.00" stays "5.00").
func decimalString(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return d.StringFixed(places)
}

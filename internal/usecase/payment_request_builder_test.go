package usecase

import (
	"errors"
	"testing"
	"time"

	"placetopay_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
)

func builderOrder() entities.Order {
	grand := decimal.RequireFromString("50.00")
	return entities.Order{
		Reference:      "ORD-100",
		Currency:       "COP",
		GrandTotal:     &grand,
		TotalDue:       decimal.RequireFromString("55.00"),
		Subtotal:       decimal.RequireFromString("45.00"),
		DiscountAmount: decimal.RequireFromString("5.00"),
		ShippingAmount: decimal.RequireFromString("10.00"),
		Items: []entities.OrderItem{
			{ID: "1", SKU: "BUNDLE", Name: "Kit <Verano>", ProductType: "bundle", QtyOrdered: decimal.NewFromInt(1), Price: decimal.RequireFromString("45.00")},
			{ID: "2", ParentItemID: "1", SKU: "CHILD", Name: "Gorra", ProductType: "simple", QtyOrdered: decimal.NewFromInt(1)},
			{ID: "3", SKU: "HIDDEN", Name: "Regalo", Hidden: true},
		},
		TaxLines: []entities.TaxLine{{Code: "IVA19", RealAmount: "7.18", TaxPercent: "19"}},
		BillingAddress: &entities.Address{
			FirstName: "Ana",
			LastName:  "Diaz",
			Email:     "ana@example.com",
			VatID:     "1040035000",
			Street:    []string{"Calle 1", "# 2-3"},
			City:      "Bogota",
			CountryID: "co",
		},
	}
}

func newTestBuilder(opts RequestOptions) *PaymentRequestBuilder {
	b := NewPaymentRequestBuilder(opts, nil)
	b.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return b
}

func TestPaymentRequestBuilder_Build(t *testing.T) {
	logger, _ := test.NewNullLogger()
	log := logger.WithField("test", true)
	opts := RequestOptions{
		ExpirationMinutes:    120,
		FillBuyerInformation: true,
		Locale:               "es_CO",
		ReturnURLBase:        "https://shop.test",
	}

	t.Run("order totals and discount", func(t *testing.T) {
		req, err := newTestBuilder(opts).Build(log, builderOrder(), entities.ClientInfo{IPAddress: "10.0.0.1", UserAgent: "ua"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !req.Amount.Total.Equal(decimal.RequireFromString("50.00")) {
			t.Fatalf("expected grand total 50.00, got %s", req.Amount.Total)
		}
		if d, _ := req.Amount.Detail(entities.AmountDetailDiscount); d.Amount != "-5.00" {
			t.Fatalf("expected discount -5.00, got %q", d.Amount)
		}
		if d, _ := req.Amount.Detail(entities.AmountDetailShipping); d.Amount != "10.00" {
			t.Fatalf("expected shipping 10.00, got %q", d.Amount)
		}
		if req.Reference != "ORD-100" || req.Description != "Order ORD-100" {
			t.Fatalf("unexpected reference/description %q %q", req.Reference, req.Description)
		}
		if req.ReturnURL != "https://shop.test/v1/checkout/response?reference=ORD-100" {
			t.Fatalf("unexpected return url %s", req.ReturnURL)
		}
		if req.Expiration != "2026-01-01T02:00:00Z" {
			t.Fatalf("unexpected expiration %s", req.Expiration)
		}
		if req.IPAddress != "10.0.0.1" || req.UserAgent != "ua" || req.NoBuyerFill {
			t.Fatalf("unexpected client fields %+v", req)
		}
	})

	t.Run("only visible items with clean names", func(t *testing.T) {
		req, _ := newTestBuilder(opts).Build(log, builderOrder(), entities.ClientInfo{})
		if len(req.Items) != 1 {
			t.Fatalf("expected 1 item, got %+v", req.Items)
		}
		if req.Items[0].Name != "Kit Verano" || req.Items[0].Category != "bundle" {
			t.Fatalf("unexpected item %+v", req.Items[0])
		}
	})

	t.Run("buyer and shipping", func(t *testing.T) {
		req, _ := newTestBuilder(opts).Build(log, builderOrder(), entities.ClientInfo{})
		if req.Buyer.Name != "Ana" || req.Buyer.Document != "1040035000" {
			t.Fatalf("unexpected buyer %+v", req.Buyer)
		}
		if req.Shipping.Name != "Ana" || req.Shipping.Address == nil || req.Shipping.Address.Country != "CO" {
			t.Fatalf("expected shipping to fall back to billing, got %+v", req.Shipping)
		}
	})

	t.Run("zero discount", func(t *testing.T) {
		order := builderOrder()
		order.DiscountAmount = decimal.RequireFromString("0.00")
		order.GrandTotal = nil

		req, _ := newTestBuilder(opts).Build(log, order, entities.ClientInfo{})
		if d, _ := req.Amount.Detail(entities.AmountDetailDiscount); d.Amount != "0" {
			t.Fatalf("expected discount 0, got %q", d.Amount)
		}
		if !req.Amount.Total.Equal(decimal.RequireFromString("55.00")) {
			t.Fatalf("expected total due fallback, got %s", req.Amount.Total)
		}
	})

	t.Run("taxes omitted unless enabled", func(t *testing.T) {
		req, _ := newTestBuilder(opts).Build(log, builderOrder(), entities.ClientInfo{})
		if req.Amount.Taxes != nil {
			t.Fatalf("expected nil taxes, got %+v", req.Amount.Taxes)
		}

		withTaxes := opts
		withTaxes.FillTaxInformation = true
		withTaxes.TaxCategoryMap = map[string]string{"IVA19": "valueAddedTax"}
		req, _ = newTestBuilder(withTaxes).Build(log, builderOrder(), entities.ClientInfo{})
		if len(req.Amount.Taxes) != 1 || req.Amount.Taxes[0].Amount != "7.1800" {
			t.Fatalf("unexpected taxes %+v", req.Amount.Taxes)
		}
	})

	t.Run("buyer fill disabled", func(t *testing.T) {
		noFill := opts
		noFill.FillBuyerInformation = false
		req, _ := newTestBuilder(noFill).Build(log, builderOrder(), entities.ClientInfo{})
		if !req.NoBuyerFill {
			t.Fatalf("expected noBuyerFill")
		}
	})

	t.Run("missing billing address", func(t *testing.T) {
		order := builderOrder()
		order.BillingAddress = nil
		_, err := newTestBuilder(opts).Build(log, order, entities.ClientInfo{})
		if !errors.Is(err, ErrInvalidBuyerAddress) {
			t.Fatalf("expected ErrInvalidBuyerAddress, got %v", err)
		}
	})
}

func TestDiscountAmount(t *testing.T) {
	cases := map[string]string{
		"0":     "0",
		"0.00":  "0",
		"5.00":  "-5.00",
		"-5.00": "5.00",
		"12.5":  "-12.5",
	}
	for in, want := range cases {
		if got := DiscountAmount(decimal.RequireFromString(in)); got != want {
			t.Fatalf("DiscountAmount(%s): expected %s, got %s", in, want, got)
		}
	}
}

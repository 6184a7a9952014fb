package usecase

import (
	"errors"
	"fmt"
	"strings"

	"placetopay_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrZeroTaxPercent = errors.New("tax percent is zero")

const taxDecimals = 4

var hundred = decimal.NewFromInt(100)

// TaxAggregator merges per-line tax records into one bucket per tax category.
type TaxAggregator struct{}

func NewTaxAggregator() *TaxAggregator {
	return &TaxAggregator{}
}

// Aggregate converts the order's tax lines into gateway tax buckets.
//
// The result never is nil. Records with a zero tax percent are skipped; any other
// fault discards the whole pass and yields an empty list, which the gateway
// accepts as "no tax breakdown".
func (a *TaxAggregator) Aggregate(log *logrus.Entry, order entities.Order, categoryMap map[string]string) []entities.TaxBucket {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	buckets, err := a.aggregate(log, order, categoryMap)
	if err != nil {
		log.WithError(err).WithField("tax_lines", fmt.Sprintf("%+v", order.TaxLines)).
			Warnf("[checkout][taxes] error calculating taxes reference=%s", order.Reference)
		return []entities.TaxBucket{}
	}
	return buckets
}

type taxSum struct {
	amount decimal.Decimal
	base   decimal.Decimal
}

func (a *TaxAggregator) aggregate(log *logrus.Entry, order entities.Order, categoryMap map[string]string) ([]entities.TaxBucket, error) {
	sums := map[string]*taxSum{}
	kinds := make([]string, 0)

	for i, line := range order.TaxLines {
		amount, err := parseTaxDecimal(line.RealAmount)
		if err != nil {
			return nil, fmt.Errorf("tax line %d real_amount: %w", i, err)
		}

		base, err := taxBase(order, line, amount)
		if errors.Is(err, ErrZeroTaxPercent) {
			log.WithField("code", line.Code).
				Warnf("[checkout][taxes] skipping tax line with zero percent reference=%s line=%d", order.Reference, i)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("tax line %d base: %w", i, err)
		}

		kind, ok := categoryMap[line.Code]
		if !ok || kind == "" {
			kind = entities.DefaultTaxKind
		}

		sum, ok := sums[kind]
		if !ok {
			sum = &taxSum{amount: decimal.Zero, base: decimal.Zero}
			sums[kind] = sum
			kinds = append(kinds, kind)
		}
		// Each running sum is rounded to the output precision as it accumulates.
		sum.amount = sum.amount.Add(amount).Round(taxDecimals)
		sum.base = sum.base.Add(base).Round(taxDecimals)
	}

	out := make([]entities.TaxBucket, 0, len(kinds))
	for _, kind := range kinds {
		sum := sums[kind]
		out = append(out, entities.TaxBucket{
			Kind:   kind,
			Amount: sum.amount.StringFixed(taxDecimals),
			Base:   sum.base.StringFixed(taxDecimals),
		})
	}
	return out, nil
}

// taxBase is the item's pre-tax price when the line points at an item, otherwise
// it is derived from the tax amount and percent.
func taxBase(order entities.Order, line entities.TaxLine, amount decimal.Decimal) (decimal.Decimal, error) {
	if itemID := strings.TrimSpace(line.ItemID); itemID != "" {
		item, ok := order.ItemByID(itemID)
		if !ok {
			return decimal.Zero, fmt.Errorf("order item %q not found", itemID)
		}
		return item.BasePrice, nil
	}

	percent, err := parseTaxDecimal(line.TaxPercent)
	if err != nil {
		return decimal.Zero, err
	}
	if percent.IsZero() {
		return decimal.Zero, ErrZeroTaxPercent
	}
	return amount.Mul(hundred).Div(percent), nil
}

func parseTaxDecimal(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

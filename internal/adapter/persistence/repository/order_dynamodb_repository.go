package repository

import (
	"context"
	"errors"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type orderLineItem struct {
	ID           string `dynamodbav:"id"`
	ParentItemID string `dynamodbav:"parent_item_id,omitempty"`
	SKU          string `dynamodbav:"sku"`
	Name         string `dynamodbav:"name"`
	ProductType  string `dynamodbav:"product_type"`
	QtyOrdered   string `dynamodbav:"qty_ordered"`
	Price        string `dynamodbav:"price"`
	BasePrice    string `dynamodbav:"base_price"`
	TaxAmount    string `dynamodbav:"tax_amount"`
	Hidden       bool   `dynamodbav:"hidden,omitempty"`
}

type orderItem struct {
	Reference       string             `dynamodbav:"reference"`
	ID              string             `dynamodbav:"id"`
	Currency        string             `dynamodbav:"currency"`
	GrandTotal      string             `dynamodbav:"grand_total,omitempty"`
	TotalDue        string             `dynamodbav:"total_due"`
	Subtotal        string             `dynamodbav:"subtotal"`
	DiscountAmount  string             `dynamodbav:"discount_amount"`
	ShippingAmount  string             `dynamodbav:"shipping_amount"`
	Items           []orderLineItem    `dynamodbav:"items"`
	TaxLines        []entities.TaxLine `dynamodbav:"tax_lines,omitempty"`
	BillingAddress  *entities.Address  `dynamodbav:"billing_address,omitempty"`
	ShippingAddress *entities.Address  `dynamodbav:"shipping_address,omitempty"`
	State           string             `dynamodbav:"state"`
	Status          string             `dynamodbav:"status"`
	UpdatedAt       string             `dynamodbav:"updated_at,omitempty"`
}

// OrderDynamoRepository reads host orders from DynamoDB and applies the status
// changes decided by the checkout flow.
//
// Table requirements:
//   - PK: reference (string)
//
// Amounts are stored as decimal strings so they round-trip without float error.

type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, now: nowRFC3339}
}

func (r *OrderDynamoRepository) GetByReference(ctx context.Context, reference string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference": &types.AttributeValueMemberS{Value: reference},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

// UpdateStatus moves the order to state/status. A missing order yields an empty
// Order and no error.
func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, reference string, state entities.OrderState, status string) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference": &types.AttributeValueMemberS{Value: reference},
		},
		ConditionExpression: aws.String("attribute_exists(#reference)"),
		UpdateExpression:    aws.String("SET #state = :state, #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":      &types.AttributeValueMemberS{Value: string(state)},
			":status":     &types.AttributeValueMemberS{Value: status},
			":updated_at": &types.AttributeValueMemberS{Value: r.now()},
		},
		ExpressionAttributeNames: mergeNames(
			map[string]string{"#state": "state", "#status": "status", "#updated_at": "updated_at"},
			map[string]string{"#reference": "reference"},
		),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		Reference:       o.Reference,
		ID:              o.ID,
		Currency:        o.Currency,
		TotalDue:        decimalText(o.TotalDue),
		Subtotal:        decimalText(o.Subtotal),
		DiscountAmount:  decimalText(o.DiscountAmount),
		ShippingAmount:  decimalText(o.ShippingAmount),
		TaxLines:        o.TaxLines,
		BillingAddress:  o.BillingAddress,
		ShippingAddress: o.ShippingAddress,
		State:           string(o.State),
		Status:          o.Status,
	}
	if o.GrandTotal != nil {
		it.GrandTotal = decimalText(*o.GrandTotal)
	}
	for _, line := range o.Items {
		it.Items = append(it.Items, orderLineItem{
			ID:           line.ID,
			ParentItemID: line.ParentItemID,
			SKU:          line.SKU,
			Name:         line.Name,
			ProductType:  line.ProductType,
			QtyOrdered:   decimalText(line.QtyOrdered),
			Price:        decimalText(line.Price),
			BasePrice:    decimalText(line.BasePrice),
			TaxAmount:    decimalText(line.TaxAmount),
			Hidden:       line.Hidden,
		})
	}
	return it
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	var err error
	dec := func(s string) decimal.Decimal {
		if s == "" || err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(s)
		return d
	}

	o := entities.Order{
		ID:              it.ID,
		Reference:       it.Reference,
		Currency:        it.Currency,
		TotalDue:        dec(it.TotalDue),
		Subtotal:        dec(it.Subtotal),
		DiscountAmount:  dec(it.DiscountAmount),
		ShippingAmount:  dec(it.ShippingAmount),
		TaxLines:        it.TaxLines,
		BillingAddress:  it.BillingAddress,
		ShippingAddress: it.ShippingAddress,
		State:           entities.OrderState(it.State),
		Status:          it.Status,
	}
	if it.GrandTotal != "" {
		gt := dec(it.GrandTotal)
		o.GrandTotal = &gt
	}
	for _, line := range it.Items {
		o.Items = append(o.Items, entities.OrderItem{
			ID:           line.ID,
			ParentItemID: line.ParentItemID,
			SKU:          line.SKU,
			Name:         line.Name,
			ProductType:  line.ProductType,
			QtyOrdered:   dec(line.QtyOrdered),
			Price:        dec(line.Price),
			BasePrice:    dec(line.BasePrice),
			TaxAmount:    dec(line.TaxAmount),
			Hidden:       line.Hidden,
		})
	}
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

// decimalText keeps the stored scale ("5.00" stays "5.00").
func decimalText(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return d.StringFixed(places)
}

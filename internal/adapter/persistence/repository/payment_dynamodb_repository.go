package repository

import (
	"context"
	"errors"
	"strconv"

	"placetopay_checkout/internal/domain/entities"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsOrderReferenceIndex = "order_reference-index"

type paymentItem struct {
	ID                    string         `dynamodbav:"id"`
	OrderReference        string         `dynamodbav:"order_reference"`
	Method                string         `dynamodbav:"method"`
	AdditionalInformation map[string]any `dynamodbav:"additional_information,omitempty"`
	Version               int64          `dynamodbav:"version"`
	UpdatedAt             string         `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_reference-index (PK: order_reference)
//
// Save is a conditional write on version; a lost race surfaces as
// interfaces.ErrPaymentVersionConflict.

type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

// GetByOrderReference returns the most recently updated payment of the order.
func (r *PaymentDynamoRepository) GetByOrderReference(ctx context.Context, reference string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderReferenceIndex),
		KeyConditionExpression: aws.String("order_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}

	var latest entities.Payment
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.Payment{}, err
		}
		p := fromPaymentItem(it)
		if latest.ID == "" || p.UpdatedAt.After(latest.UpdatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (r *PaymentDynamoRepository) Save(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	next := p
	next.Version = p.Version + 1

	av, err := attributevalue.MarshalMap(toPaymentItem(next))
	if err != nil {
		return entities.Payment{}, err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}
	if p.Version == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(#id)")
		input.ExpressionAttributeNames = map[string]string{"#id": "id"}
	} else {
		input.ConditionExpression = aws.String("#version = :expected")
		input.ExpressionAttributeNames = map[string]string{"#version": "version"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version, 10)},
		}
	}

	if _, err := r.ddb.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, interfaces.ErrPaymentVersionConflict
		}
		return entities.Payment{}, err
	}
	return next, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                    p.ID,
		OrderReference:        p.OrderReference,
		Method:                p.Method,
		AdditionalInformation: p.AdditionalInformation,
		Version:               p.Version,
		UpdatedAt:             formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	info := entities.AdditionalInformation(it.AdditionalInformation)
	if info == nil {
		info = entities.AdditionalInformation{}
	}
	return entities.Payment{
		ID:                    it.ID,
		OrderReference:        it.OrderReference,
		Method:                it.Method,
		AdditionalInformation: info,
		Version:               it.Version,
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}

package repository

import (
	"context"
	"time"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultServicePaymentsTableName = "service_payments"

type servicePaymentItem struct {
	RequestID             string `dynamodbav:"request_id"`
	Amount                int64  `dynamodbav:"amount"`
	Status                string `dynamodbav:"status"`
	PaidDate              string `dynamodbav:"paid_date,omitempty"`
	PaymentMethod         string `dynamodbav:"payment_method,omitempty"`
	PaymentIntentID       string `dynamodbav:"payment_intent_id,omitempty"`
	ProviderTransactionID string `dynamodbav:"provider_transaction_id,omitempty"`
	ReceiptID             string `dynamodbav:"receipt_id,omitempty"`
	UpdatedAt             string `dynamodbav:"updated_at,omitempty"`
}

// ServicePaymentDynamoRepository persists the payment part of service
// requests in DynamoDB.
//
// Table requirements:
//   - PK: request_id (string)

type ServicePaymentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IServicePaymentRepository = (*ServicePaymentDynamoRepository)(nil)

func NewServicePaymentDynamoRepository(ddb DynamoDBAPI, table string) *ServicePaymentDynamoRepository {
	return &ServicePaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(table, defaultServicePaymentsTableName),
	}
}

func (r *ServicePaymentDynamoRepository) GetByRequestID(ctx context.Context, requestID string) (entities.ServicePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"request_id": &types.AttributeValueMemberS{Value: requestID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServicePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServicePayment{}, nil
	}

	var it servicePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServicePayment{}, err
	}
	return fromServicePaymentItem(it), nil
}

func (r *ServicePaymentDynamoRepository) ConditionalUpdate(ctx context.Context, requestID string, expected entities.ServicePaymentStatus, upd entities.ServicePaymentUpdate) (entities.ServicePayment, error) {
	out, err := r.ddb.UpdateItem(ctx, buildServicePaymentUpdate(r.tableName, requestID, expected, upd))
	if err != nil {
		return entities.ServicePayment{}, conditionErr(err, interfaces.ErrConditionNotMet)
	}
	if len(out.Attributes) == 0 {
		return entities.ServicePayment{}, nil
	}
	var it servicePaymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServicePayment{}, err
	}
	return fromServicePaymentItem(it), nil
}

func buildServicePaymentUpdate(table, requestID string, expected entities.ServicePaymentStatus, upd entities.ServicePaymentUpdate) *dynamodb.UpdateItemInput {
	updatedAt := upd.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	expr := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(upd.Status)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(updatedAt)},
		":expected":   &types.AttributeValueMemberS{Value: string(expected)},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	optional := []struct{ attr, value string }{
		{"paid_date", formatTimePtr(upd.PaidDate)},
		{"payment_method", upd.PaymentMethod},
		{"payment_intent_id", upd.PaymentIntentID},
		{"provider_transaction_id", upd.ProviderTransactionID},
		{"receipt_id", upd.ReceiptID},
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		expr += ", #" + f.attr + " = :" + f.attr
		vals[":"+f.attr] = &types.AttributeValueMemberS{Value: f.value}
		names["#"+f.attr] = f.attr
	}

	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"request_id": &types.AttributeValueMemberS{Value: requestID},
		},
		ConditionExpression:       aws.String("attribute_exists(#request_id) AND #status = :expected"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#request_id": "request_id"}),
		ReturnValues:              types.ReturnValueAllNew,
	}
}

func fromServicePaymentItem(it servicePaymentItem) entities.ServicePayment {
	return entities.ServicePayment{
		RequestID:             it.RequestID,
		Amount:                it.Amount,
		Status:                entities.ServicePaymentStatus(it.Status),
		PaidDate:              parseTimePtr(it.PaidDate),
		PaymentMethod:         it.PaymentMethod,
		PaymentIntentID:       it.PaymentIntentID,
		ProviderTransactionID: it.ProviderTransactionID,
		ReceiptID:             it.ReceiptID,
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}

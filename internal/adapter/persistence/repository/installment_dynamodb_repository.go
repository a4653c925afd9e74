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

const defaultInstallmentsTableName = "monthly_payments"

type installmentItem struct {
	ID                    string `dynamodbav:"id"`
	PlanID                string `dynamodbav:"plan_id"`
	InstallmentNumber     int    `dynamodbav:"installment_number"`
	Amount                int64  `dynamodbav:"amount"`
	DueDate               string `dynamodbav:"due_date,omitempty"`
	Status                string `dynamodbav:"status"`
	PaidDate              string `dynamodbav:"paid_date,omitempty"`
	PaymentMethod         string `dynamodbav:"payment_method,omitempty"`
	PaymentIntentID       string `dynamodbav:"payment_intent_id,omitempty"`
	ProviderTransactionID string `dynamodbav:"provider_transaction_id,omitempty"`
	ReceiptID             string `dynamodbav:"receipt_id,omitempty"`
	UpdatedAt             string `dynamodbav:"updated_at,omitempty"`
}

// InstallmentDynamoRepository persists MonthlyPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI plan_id-index on plan_id, used by the leasing workflow only

type InstallmentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IInstallmentRepository = (*InstallmentDynamoRepository)(nil)

func NewInstallmentDynamoRepository(ddb DynamoDBAPI, table string) *InstallmentDynamoRepository {
	return &InstallmentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(table, defaultInstallmentsTableName),
	}
}

func (r *InstallmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.MonthlyPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.MonthlyPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.MonthlyPayment{}, nil
	}

	var it installmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.MonthlyPayment{}, err
	}
	return fromInstallmentItem(it), nil
}

// ConditionalUpdate writes the update only while the stored status still
// equals expected.
func (r *InstallmentDynamoRepository) ConditionalUpdate(ctx context.Context, id string, expected entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
	out, err := r.ddb.UpdateItem(ctx, buildInstallmentUpdate(r.tableName, id, expected, upd))
	if err != nil {
		return entities.MonthlyPayment{}, conditionErr(err, interfaces.ErrConditionNotMet)
	}
	if len(out.Attributes) == 0 {
		return entities.MonthlyPayment{}, nil
	}
	var it installmentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.MonthlyPayment{}, err
	}
	return fromInstallmentItem(it), nil
}

func buildInstallmentUpdate(table, id string, expected entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) *dynamodb.UpdateItemInput {
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
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	}
}

func fromInstallmentItem(it installmentItem) entities.MonthlyPayment {
	return entities.MonthlyPayment{
		ID:                    it.ID,
		PlanID:                it.PlanID,
		InstallmentNumber:     it.InstallmentNumber,
		Amount:                it.Amount,
		DueDate:               parseTime(it.DueDate),
		Status:                entities.MonthlyPaymentStatus(it.Status),
		PaidDate:              parseTimePtr(it.PaidDate),
		PaymentMethod:         it.PaymentMethod,
		PaymentIntentID:       it.PaymentIntentID,
		ProviderTransactionID: it.ProviderTransactionID,
		ReceiptID:             it.ReceiptID,
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}

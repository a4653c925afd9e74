package repository

import (
	"context"
	"strconv"
	"time"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentPlansTableName = "payment_plans"

type paymentPlanItem struct {
	ID                    string   `dynamodbav:"id"`
	PropertyID            string   `dynamodbav:"property_id"`
	TenantID              string   `dynamodbav:"tenant_id"`
	PropertyPrice         int64    `dynamodbav:"property_price"`
	DownPayment           int64    `dynamodbav:"down_payment"`
	MonthlyPayment        int64    `dynamodbav:"monthly_payment"`
	InterestRate          float64  `dynamodbav:"interest_rate"`
	Duration              int      `dynamodbav:"duration"`
	TotalAmount           int64    `dynamodbav:"total_amount"`
	StartDate             string   `dynamodbav:"start_date,omitempty"`
	CurrentInstallment    int      `dynamodbav:"current_installment"`
	RemainingBalance      int64    `dynamodbav:"remaining_balance"`
	NextDueDate           string   `dynamodbav:"next_due_date,omitempty"`
	Status                string   `dynamodbav:"status"`
	AppliedInstallmentIDs []string `dynamodbav:"applied_installment_ids,omitempty"`
	Version               int64    `dynamodbav:"version"`
	UpdatedAt             string   `dynamodbav:"updated_at,omitempty"`
}

// PaymentPlanDynamoRepository persists PaymentPlan ledgers in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Ledger writes are guarded by the version attribute and by the list of
// applied installments, so a stale or repeated write is rejected by DynamoDB.

type PaymentPlanDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentPlanRepository = (*PaymentPlanDynamoRepository)(nil)

func NewPaymentPlanDynamoRepository(ddb DynamoDBAPI, table string) *PaymentPlanDynamoRepository {
	return &PaymentPlanDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(table, defaultPaymentPlansTableName),
	}
}

func (r *PaymentPlanDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentPlan, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentPlan{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentPlan{}, nil
	}

	var it paymentPlanItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentPlan{}, err
	}
	return fromPaymentPlanItem(it), nil
}

func (r *PaymentPlanDynamoRepository) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
	input := buildPlanLedgerUpdate(r.tableName, id, expectedVersion, upd)
	out, err := r.ddb.UpdateItem(ctx, input)
	if err != nil {
		return entities.PaymentPlan{}, conditionErr(err, interfaces.ErrConditionNotMet)
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentPlan{}, nil
	}
	var it paymentPlanItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentPlan{}, err
	}
	return fromPaymentPlanItem(it), nil
}

func buildPlanLedgerUpdate(table, id string, expectedVersion int64, upd entities.PlanLedgerUpdate) *dynamodb.UpdateItemInput {
	expr := "SET #current_installment = :current_installment, #remaining_balance = :remaining_balance, " +
		"#next_due_date = :next_due_date, #status = :status, #updated_at = :updated_at, " +
		"#version = if_not_exists(#version, :zero) + :one, " +
		"#applied = list_append(if_not_exists(#applied, :empty), :installment_list)"

	// Plans created before the ledger attributes existed carry no version.
	versionCond := "#version = :expected_version"
	if expectedVersion == 0 {
		versionCond = "(attribute_not_exists(#version) OR #version = :expected_version)"
	}
	cond := "attribute_exists(#id) AND " + versionCond +
		" AND (attribute_not_exists(#applied) OR NOT contains(#applied, :installment_id))"

	updatedAt := upd.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String(cond),
		UpdateExpression:    aws.String(expr),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":current_installment": &types.AttributeValueMemberN{Value: strconv.Itoa(upd.CurrentInstallment)},
			":remaining_balance":   &types.AttributeValueMemberN{Value: strconv.FormatInt(upd.RemainingBalance, 10)},
			":next_due_date":       &types.AttributeValueMemberS{Value: formatTime(upd.NextDueDate)},
			":status":              &types.AttributeValueMemberS{Value: string(upd.Status)},
			":updated_at":          &types.AttributeValueMemberS{Value: formatTime(updatedAt)},
			":expected_version":    &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
			":zero":                &types.AttributeValueMemberN{Value: "0"},
			":one":                 &types.AttributeValueMemberN{Value: "1"},
			":empty":               &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":installment_list": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: upd.InstallmentID},
			}},
			":installment_id": &types.AttributeValueMemberS{Value: upd.InstallmentID},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#current_installment": "current_installment",
			"#remaining_balance":   "remaining_balance",
			"#next_due_date":       "next_due_date",
			"#status":              "status",
			"#updated_at":          "updated_at",
			"#version":             "version",
			"#applied":             "applied_installment_ids",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	}
}

func fromPaymentPlanItem(it paymentPlanItem) entities.PaymentPlan {
	return entities.PaymentPlan{
		ID:                    it.ID,
		PropertyID:            it.PropertyID,
		TenantID:              it.TenantID,
		PropertyPrice:         it.PropertyPrice,
		DownPayment:           it.DownPayment,
		MonthlyPayment:        it.MonthlyPayment,
		InterestRate:          it.InterestRate,
		Duration:              it.Duration,
		TotalAmount:           it.TotalAmount,
		StartDate:             parseTime(it.StartDate),
		CurrentInstallment:    it.CurrentInstallment,
		RemainingBalance:      it.RemainingBalance,
		NextDueDate:           parseTime(it.NextDueDate),
		Status:                entities.PaymentPlanStatus(it.Status),
		AppliedInstallmentIDs: it.AppliedInstallmentIDs,
		Version:               it.Version,
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}

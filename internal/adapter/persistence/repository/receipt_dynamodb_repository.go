package repository

import (
	"context"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultReceiptsTableName = "receipts"

type receiptItem struct {
	ID                    string `dynamodbav:"id"`
	Kind                  string `dynamodbav:"kind"`
	Amount                int64  `dynamodbav:"amount"`
	LinkedID              string `dynamodbav:"linked_id"`
	ProviderTransactionID string `dynamodbav:"provider_transaction_id"`
	PaidAt                string `dynamodbav:"paid_at"`
	Description           string `dynamodbav:"description"`
	CreatedAt             string `dynamodbav:"created_at"`
}

// ReceiptDynamoRepository stores receipts insert-only.
//
// Table requirements:
//   - PK: id (string)

type ReceiptDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IReceiptRepository = (*ReceiptDynamoRepository)(nil)

func NewReceiptDynamoRepository(ddb DynamoDBAPI, table string) *ReceiptDynamoRepository {
	return &ReceiptDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(table, defaultReceiptsTableName),
	}
}

func (r *ReceiptDynamoRepository) Insert(ctx context.Context, rcpt entities.Receipt) (entities.Receipt, error) {
	av, err := attributevalue.MarshalMap(toReceiptItem(rcpt))
	if err != nil {
		return entities.Receipt{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Receipt{}, conditionErr(err, interfaces.ErrAlreadyExists)
	}
	return rcpt, nil
}

func (r *ReceiptDynamoRepository) GetByID(ctx context.Context, id string) (entities.Receipt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Receipt{}, err
	}
	if len(out.Item) == 0 {
		return entities.Receipt{}, nil
	}

	var it receiptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Receipt{}, err
	}
	return fromReceiptItem(it), nil
}

func toReceiptItem(r entities.Receipt) receiptItem {
	return receiptItem{
		ID:                    r.ID,
		Kind:                  string(r.Kind),
		Amount:                r.Amount,
		LinkedID:              r.LinkedID,
		ProviderTransactionID: r.ProviderTransactionID,
		PaidAt:                formatTime(r.PaidAt),
		Description:           r.Description,
		CreatedAt:             formatTime(r.CreatedAt),
	}
}

func fromReceiptItem(it receiptItem) entities.Receipt {
	return entities.Receipt{
		ID:                    it.ID,
		Kind:                  entities.ReceiptKind(it.Kind),
		Amount:                it.Amount,
		LinkedID:              it.LinkedID,
		ProviderTransactionID: it.ProviderTransactionID,
		PaidAt:                parseTime(it.PaidAt),
		Description:           it.Description,
		CreatedAt:             parseTime(it.CreatedAt),
	}
}

package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	getOut    *dynamodb.GetItemOutput
	putErr    error
	updateOut *dynamodb.UpdateItemOutput
	updateErr error

	lastGet    *dynamodb.GetItemInput
	lastPut    *dynamodb.PutItemInput
	lastUpdate *dynamodb.UpdateItemInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGet = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func conditionalCheckFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func mustMarshal(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func samplePlan() entities.PaymentPlan {
	return entities.PaymentPlan{
		ID:                    "plan-1",
		PropertyID:            "prop-1",
		TenantID:              "tenant-1",
		MonthlyPayment:        200000,
		Duration:              12,
		TotalAmount:           2400000,
		StartDate:             time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		CurrentInstallment:    3,
		RemainingBalance:      1800000,
		NextDueDate:           time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		Status:                entities.PaymentPlanStatusActive,
		AppliedInstallmentIDs: []string{"inst-1", "inst-2", "inst-3"},
		Version:               3,
	}
}

func TestPaymentPlanDynamoRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing item yields zero value", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewPaymentPlanDynamoRepository(fake, "")
		got, err := repo.GetByID(ctx, "plan-1")
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero plan, got %+v err=%v", got, err)
		}
		if aws.ToString(fake.lastGet.TableName) != defaultPaymentPlansTableName || !aws.ToBool(fake.lastGet.ConsistentRead) {
			t.Fatalf("unexpected get input: %+v", fake.lastGet)
		}
	})

	t.Run("decodes stored item", func(t *testing.T) {
		want := samplePlan()
		fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, toPaymentPlanItem(want))}}
		repo := NewPaymentPlanDynamoRepository(fake, "plans_test")
		got, err := repo.GetByID(ctx, "plan-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RemainingBalance != want.RemainingBalance || !got.NextDueDate.Equal(want.NextDueDate) || got.Version != 3 || len(got.AppliedInstallmentIDs) != 3 {
			t.Fatalf("unexpected plan: %+v", got)
		}
		if aws.ToString(fake.lastGet.TableName) != "plans_test" {
			t.Fatalf("expected configured table, got %s", aws.ToString(fake.lastGet.TableName))
		}
	})
}

func TestPaymentPlanDynamoRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	plan := samplePlan()
	upd := plan.ApplyInstallment("inst-4", 200000, time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC))

	t.Run("guards on version and applied list", func(t *testing.T) {
		fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, toPaymentPlanItem(plan.Apply(upd)))}}
		repo := NewPaymentPlanDynamoRepository(fake, "")

		got, err := repo.ConditionalUpdate(ctx, "plan-1", 3, upd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != 4 || got.RemainingBalance != 1600000 || !got.HasApplied("inst-4") {
			t.Fatalf("unexpected plan: %+v", got)
		}

		cond := aws.ToString(fake.lastUpdate.ConditionExpression)
		if !strings.Contains(cond, "#version = :expected_version") || !strings.Contains(cond, "NOT contains(#applied, :installment_id)") {
			t.Fatalf("unexpected condition: %s", cond)
		}
		if strings.Contains(cond, "attribute_not_exists(#version)") {
			t.Fatalf("versioned plans must require an exact version: %s", cond)
		}
		expr := aws.ToString(fake.lastUpdate.UpdateExpression)
		if !strings.Contains(expr, "list_append(if_not_exists(#applied, :empty), :installment_list)") {
			t.Fatalf("unexpected update expression: %s", expr)
		}
		v := fake.lastUpdate.ExpressionAttributeValues[":expected_version"].(*types.AttributeValueMemberN).Value
		if v != "3" {
			t.Fatalf("expected version 3, got %s", v)
		}
		if fake.lastUpdate.ReturnValues != types.ReturnValueAllNew {
			t.Fatalf("expected ALL_NEW return values")
		}
	})

	t.Run("unversioned plans", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewPaymentPlanDynamoRepository(fake, "")
		if _, err := repo.ConditionalUpdate(ctx, "plan-1", 0, upd); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cond := aws.ToString(fake.lastUpdate.ConditionExpression); !strings.Contains(cond, "attribute_not_exists(#version)") {
			t.Fatalf("unexpected condition: %s", cond)
		}
	})

	t.Run("conditional failure", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: conditionalCheckFailed()}
		repo := NewPaymentPlanDynamoRepository(fake, "")
		if _, err := repo.ConditionalUpdate(ctx, "plan-1", 3, upd); !errors.Is(err, interfaces.ErrConditionNotMet) {
			t.Fatalf("expected ErrConditionNotMet, got %v", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("throttled")
		fake := &fakeDynamo{updateErr: boom}
		repo := NewPaymentPlanDynamoRepository(fake, "")
		if _, err := repo.ConditionalUpdate(ctx, "plan-1", 3, upd); !errors.Is(err, boom) {
			t.Fatalf("expected passthrough, got %v", err)
		}
	})
}

func TestInstallmentDynamoRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	paid := time.Date(2025, time.April, 2, 8, 0, 0, 0, time.UTC)

	t.Run("paid update writes optional fields", func(t *testing.T) {
		stored := entities.MonthlyPayment{ID: "inst-4", PlanID: "plan-1", Amount: 200000, Status: entities.MonthlyPaymentStatusPaid, PaidDate: &paid, ReceiptID: "rcpt-1"}
		fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, toInstallmentItem(stored))}}
		repo := NewInstallmentDynamoRepository(fake, "")

		got, err := repo.ConditionalUpdate(ctx, "inst-4", entities.MonthlyPaymentStatusPending, entities.InstallmentUpdate{
			Status:                entities.MonthlyPaymentStatusPaid,
			PaidDate:              &paid,
			ProviderTransactionID: "pay_1",
			ReceiptID:             "rcpt-1",
			UpdatedAt:             paid,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PaidDate == nil || !got.PaidDate.Equal(paid) || got.ReceiptID != "rcpt-1" {
			t.Fatalf("unexpected installment: %+v", got)
		}

		in := fake.lastUpdate
		if aws.ToString(in.ConditionExpression) != "attribute_exists(#id) AND #status = :expected" {
			t.Fatalf("unexpected condition: %s", aws.ToString(in.ConditionExpression))
		}
		if in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS).Value != "pending" {
			t.Fatalf("expected status guard on pending")
		}
		expr := aws.ToString(in.UpdateExpression)
		for _, want := range []string{"#paid_date = :paid_date", "#provider_transaction_id = :provider_transaction_id", "#receipt_id = :receipt_id"} {
			if !strings.Contains(expr, want) {
				t.Fatalf("expected %q in %s", want, expr)
			}
		}
		if strings.Contains(expr, "#payment_method") {
			t.Fatalf("empty fields must not be written: %s", expr)
		}
	})

	t.Run("conditional failure", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: conditionalCheckFailed()}
		repo := NewInstallmentDynamoRepository(fake, "")
		_, err := repo.ConditionalUpdate(ctx, "inst-4", entities.MonthlyPaymentStatusPending, entities.InstallmentUpdate{Status: entities.MonthlyPaymentStatusFailed})
		if !errors.Is(err, interfaces.ErrConditionNotMet) {
			t.Fatalf("expected ErrConditionNotMet, got %v", err)
		}
	})

	t.Run("item round trip", func(t *testing.T) {
		due := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
		m := entities.MonthlyPayment{ID: "inst-4", PlanID: "plan-1", InstallmentNumber: 4, Amount: 200000, DueDate: due, Status: entities.MonthlyPaymentStatusPending}
		fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, toInstallmentItem(m))}}
		got, err := NewInstallmentDynamoRepository(fake, "").GetByID(ctx, "inst-4")
		if err != nil || got.PaidDate != nil || !got.DueDate.Equal(due) || got.InstallmentNumber != 4 {
			t.Fatalf("unexpected installment: %+v err=%v", got, err)
		}
	})
}

func TestServicePaymentDynamoRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	fake := &fakeDynamo{}
	repo := NewServicePaymentDynamoRepository(fake, "")

	_, err := repo.ConditionalUpdate(ctx, "req-1", entities.ServicePaymentStatusUnpaid, entities.ServicePaymentUpdate{
		Status:    entities.ServicePaymentStatusPaid,
		ReceiptID: "rcpt-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := fake.lastUpdate
	if _, ok := in.Key["request_id"]; !ok {
		t.Fatalf("expected request_id key")
	}
	if strings.Contains(aws.ToString(in.UpdateExpression), "#amount") {
		t.Fatalf("amount due must never be rewritten: %s", aws.ToString(in.UpdateExpression))
	}
	if !strings.Contains(aws.ToString(in.UpdateExpression), "#receipt_id = :receipt_id") {
		t.Fatalf("expected receipt write: %s", aws.ToString(in.UpdateExpression))
	}

	fake.updateErr = conditionalCheckFailed()
	if _, err := repo.ConditionalUpdate(ctx, "req-1", entities.ServicePaymentStatusUnpaid, entities.ServicePaymentUpdate{Status: entities.ServicePaymentStatusFailed}); !errors.Is(err, interfaces.ErrConditionNotMet) {
		t.Fatalf("expected ErrConditionNotMet, got %v", err)
	}

	stored := entities.ServicePayment{RequestID: "req-1", Amount: 150000, Status: entities.ServicePaymentStatusPendingVerification}
	fake.getOut = &dynamodb.GetItemOutput{Item: mustMarshal(t, toServicePaymentItem(stored))}
	got, err := repo.GetByRequestID(ctx, "req-1")
	if err != nil || got.Status != entities.ServicePaymentStatusPendingVerification || got.Amount != 150000 {
		t.Fatalf("unexpected service payment: %+v err=%v", got, err)
	}
}

func TestReceiptDynamoRepository_Insert(t *testing.T) {
	ctx := context.Background()
	rcpt := entities.Receipt{ID: "rcpt-1", Kind: entities.ReceiptKindInstallment, Amount: 200000, LinkedID: "inst-4", ProviderTransactionID: "pay_1"}

	t.Run("insert only", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewReceiptDynamoRepository(fake, "")
		if _, err := repo.Insert(ctx, rcpt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if aws.ToString(fake.lastPut.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("unexpected condition: %s", aws.ToString(fake.lastPut.ConditionExpression))
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		fake := &fakeDynamo{putErr: conditionalCheckFailed()}
		repo := NewReceiptDynamoRepository(fake, "")
		if _, err := repo.Insert(ctx, rcpt); !errors.Is(err, interfaces.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func toPaymentPlanItem(p entities.PaymentPlan) paymentPlanItem {
	return paymentPlanItem{
		ID:                    p.ID,
		PropertyID:            p.PropertyID,
		TenantID:              p.TenantID,
		PropertyPrice:         p.PropertyPrice,
		DownPayment:           p.DownPayment,
		MonthlyPayment:        p.MonthlyPayment,
		InterestRate:          p.InterestRate,
		Duration:              p.Duration,
		TotalAmount:           p.TotalAmount,
		StartDate:             formatTime(p.StartDate),
		CurrentInstallment:    p.CurrentInstallment,
		RemainingBalance:      p.RemainingBalance,
		NextDueDate:           formatTime(p.NextDueDate),
		Status:                string(p.Status),
		AppliedInstallmentIDs: p.AppliedInstallmentIDs,
		Version:               p.Version,
		UpdatedAt:             formatTime(p.UpdatedAt),
	}
}

func toInstallmentItem(m entities.MonthlyPayment) installmentItem {
	return installmentItem{
		ID:                    m.ID,
		PlanID:                m.PlanID,
		InstallmentNumber:     m.InstallmentNumber,
		Amount:                m.Amount,
		DueDate:               formatTime(m.DueDate),
		Status:                string(m.Status),
		PaidDate:              formatTimePtr(m.PaidDate),
		PaymentMethod:         m.PaymentMethod,
		PaymentIntentID:       m.PaymentIntentID,
		ProviderTransactionID: m.ProviderTransactionID,
		ReceiptID:             m.ReceiptID,
		UpdatedAt:             formatTime(m.UpdatedAt),
	}
}

func toServicePaymentItem(sp entities.ServicePayment) servicePaymentItem {
	return servicePaymentItem{
		RequestID:             sp.RequestID,
		Amount:                sp.Amount,
		Status:                string(sp.Status),
		PaidDate:              formatTimePtr(sp.PaidDate),
		PaymentMethod:         sp.PaymentMethod,
		PaymentIntentID:       sp.PaymentIntentID,
		ProviderTransactionID: sp.ProviderTransactionID,
		ReceiptID:             sp.ReceiptID,
		UpdatedAt:             formatTime(sp.UpdatedAt),
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"
	mock_interfaces "lease_ledger/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type installmentMocks struct {
	installments *mock_interfaces.MockIInstallmentRepository
	plans        *mock_interfaces.MockIPaymentPlanRepository
	receipts     *mock_interfaces.MockIReceiptRepository
	uc           *InstallmentReconcilerUseCase
}

var fixedNow = time.Date(2025, time.April, 2, 8, 0, 0, 0, time.UTC)

func newInstallmentMocks(t *testing.T) installmentMocks {
	ctrl := gomock.NewController(t)
	m := installmentMocks{
		installments: mock_interfaces.NewMockIInstallmentRepository(ctrl),
		plans:        mock_interfaces.NewMockIPaymentPlanRepository(ctrl),
		receipts:     mock_interfaces.NewMockIReceiptRepository(ctrl),
	}
	recorder := NewReceiptRecorder(m.receipts, "PHP")
	recorder.now = func() time.Time { return fixedNow }
	m.uc = NewInstallmentReconcilerUseCase(m.installments, m.plans, recorder, 3)
	m.uc.now = func() time.Time { return fixedNow }
	return m
}

func pendingInstallment() entities.MonthlyPayment {
	return entities.MonthlyPayment{
		ID:                "inst-4",
		PlanID:            "plan-1",
		InstallmentNumber: 4,
		Amount:            200000,
		DueDate:           time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		Status:            entities.MonthlyPaymentStatusPending,
	}
}

func activePlan() entities.PaymentPlan {
	return entities.PaymentPlan{
		ID:                 "plan-1",
		MonthlyPayment:     200000,
		Duration:           12,
		TotalAmount:        2400000,
		StartDate:          time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC),
		CurrentInstallment: 3,
		RemainingBalance:   1800000,
		NextDueDate:        time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		Status:             entities.PaymentPlanStatusActive,
		Version:            3,
	}
}

func succeededPayment() InstallmentPayment {
	return InstallmentPayment{
		InstallmentID:         "inst-4",
		Amount:                200000,
		ProviderTransactionID: "pay_abc",
		PaymentIntentID:       "pi_abc",
		PaymentMethod:         "gcash",
		PaidAt:                fixedNow.Add(-time.Minute),
	}
}

func TestInstallmentReconciler_ApplySucceeded_Validations(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		uc := NewInstallmentReconcilerUseCase(nil, nil, nil, 0)
		_, err := uc.ApplySucceeded(context.Background(), InstallmentPayment{InstallmentID: "  "})
		if !errors.Is(err, ErrInvalidInstallmentID) {
			t.Fatalf("expected ErrInvalidInstallmentID, got %v", err)
		}
	})

	t.Run("installment not found", func(t *testing.T) {
		m := newInstallmentMocks(t)
		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(entities.MonthlyPayment{}, nil)

		_, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if !errors.Is(err, ErrInstallmentNotFound) {
			t.Fatalf("expected ErrInstallmentNotFound, got %v", err)
		}
	})

	t.Run("storage error", func(t *testing.T) {
		m := newInstallmentMocks(t)
		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(entities.MonthlyPayment{}, errors.New("db"))

		_, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestInstallmentReconciler_ApplySucceeded_Pending(t *testing.T) {
	m := newInstallmentMocks(t)
	inst := pendingInstallment()
	plan := activePlan()
	wantReceipt := ReceiptID(entities.ReceiptKindInstallment, "inst-4", "pay_abc")

	m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)
	m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
			if upd.Status != entities.MonthlyPaymentStatusPaid || upd.ProviderTransactionID != "pay_abc" || upd.PaymentMethod != "gcash" {
				t.Fatalf("unexpected update: %+v", upd)
			}
			if upd.ReceiptID != wantReceipt || upd.PaidDate == nil || !upd.PaidDate.Equal(fixedNow.Add(-time.Minute)) {
				t.Fatalf("unexpected receipt/paid date: %+v", upd)
			}
			return inst.Apply(upd), nil
		},
	)
	m.receipts.EXPECT().Insert(gomock.Any(), gomock.AssignableToTypeOf(entities.Receipt{})).DoAndReturn(
		func(_ context.Context, r entities.Receipt) (entities.Receipt, error) {
			if r.ID != wantReceipt || r.Kind != entities.ReceiptKindInstallment || r.LinkedID != "inst-4" || r.Amount != 200000 {
				t.Fatalf("unexpected receipt: %+v", r)
			}
			if r.Description != "Installment #4 payment of PHP 2000.00" {
				t.Fatalf("unexpected description: %q", r.Description)
			}
			return r, nil
		},
	)
	m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(plan, nil)
	m.plans.EXPECT().ConditionalUpdate(gomock.Any(), "plan-1", int64(3), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
			if upd.InstallmentID != "inst-4" || upd.RemainingBalance != 1600000 || upd.CurrentInstallment != 4 {
				t.Fatalf("unexpected ledger update: %+v", upd)
			}
			return plan.Apply(upd), nil
		},
	)

	res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied || !res.LedgerApplied || res.Duplicate || res.ReceiptID != wantReceipt {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.RemainingBalance != 1600000 || res.PlanStatus != entities.PaymentPlanStatusActive {
		t.Fatalf("unexpected ledger result: %+v", res)
	}
}

func TestInstallmentReconciler_ApplySucceeded_FailedBecomesPaid(t *testing.T) {
	m := newInstallmentMocks(t)
	inst := pendingInstallment()
	inst.Status = entities.MonthlyPaymentStatusFailed
	plan := activePlan()

	m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)
	m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusFailed, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
			if upd.Status != entities.MonthlyPaymentStatusPaid {
				t.Fatalf("unexpected update: %+v", upd)
			}
			return inst.Apply(upd), nil
		},
	)
	m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entities.Receipt) (entities.Receipt, error) { return r, nil },
	)
	m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(plan, nil)
	m.plans.EXPECT().ConditionalUpdate(gomock.Any(), "plan-1", int64(3), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
			return plan.Apply(upd), nil
		},
	)

	res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
	if err != nil || !res.Applied || !res.LedgerApplied {
		t.Fatalf("a confirmed payment after a failure must apply: %+v err=%v", res, err)
	}
}

func TestInstallmentReconciler_ApplySucceeded_Redelivery(t *testing.T) {
	paidAt := fixedNow.Add(-time.Hour)
	receiptID := ReceiptID(entities.ReceiptKindInstallment, "inst-4", "pay_abc")
	paid := pendingInstallment()
	paid.Status = entities.MonthlyPaymentStatusPaid
	paid.PaidDate = &paidAt
	paid.ProviderTransactionID = "pay_abc"
	paid.ReceiptID = receiptID

	t.Run("fully applied is a no-op", func(t *testing.T) {
		m := newInstallmentMocks(t)
		plan := activePlan()
		plan.AppliedInstallmentIDs = []string{"inst-4"}

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(paid, nil)
		m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(entities.Receipt{}, interfaces.ErrAlreadyExists)
		m.receipts.EXPECT().GetByID(gomock.Any(), receiptID).Return(entities.Receipt{ID: receiptID}, nil)
		m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(plan, nil)

		res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Applied || res.LedgerApplied || !res.Duplicate {
			t.Fatalf("expected duplicate no-op, got %+v", res)
		}
	})

	t.Run("finishes a half-applied reconciliation", func(t *testing.T) {
		m := newInstallmentMocks(t)
		plan := activePlan()

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(paid, nil)
		m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.Receipt) (entities.Receipt, error) {
				if r.ID != receiptID || !r.PaidAt.Equal(paidAt) {
					t.Fatalf("receipt must be derived from the stored installment: %+v", r)
				}
				return r, nil
			},
		)
		m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(plan, nil)
		m.plans.EXPECT().ConditionalUpdate(gomock.Any(), "plan-1", int64(3), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
				return plan.Apply(upd), nil
			},
		)

		res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Applied || !res.LedgerApplied || res.Duplicate || res.RemainingBalance != 1600000 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("paid outside the service", func(t *testing.T) {
		m := newInstallmentMocks(t)
		external := pendingInstallment()
		external.Status = entities.MonthlyPaymentStatusPaid

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(external, nil)

		res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err != nil || !res.Duplicate {
			t.Fatalf("expected duplicate no-op, got %+v err=%v", res, err)
		}
	})
}

func TestInstallmentReconciler_ApplySucceeded_Conflicts(t *testing.T) {
	t.Run("lost installment race then sees paid", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()
		plan := activePlan()
		plan.AppliedInstallmentIDs = []string{"inst-4"}
		receiptID := ReceiptID(entities.ReceiptKindInstallment, "inst-4", "pay_abc")
		paid := inst
		paid.Status = entities.MonthlyPaymentStatusPaid
		paid.ReceiptID = receiptID
		paid.ProviderTransactionID = "pay_abc"

		gomock.InOrder(
			m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil),
			m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).Return(entities.MonthlyPayment{}, interfaces.ErrConditionNotMet),
			m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(paid, nil),
		)
		m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(entities.Receipt{}, interfaces.ErrAlreadyExists)
		m.receipts.EXPECT().GetByID(gomock.Any(), receiptID).Return(entities.Receipt{ID: receiptID}, nil)
		m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(plan, nil)

		res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err != nil || !res.Duplicate {
			t.Fatalf("expected duplicate, got %+v err=%v", res, err)
		}
	})

	t.Run("plan version conflict is retried", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()
		stale := activePlan()
		fresh := activePlan()
		fresh.Version = 4
		fresh.CurrentInstallment = 4
		fresh.RemainingBalance = 1600000
		fresh.AppliedInstallmentIDs = []string{"inst-3b"}

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)
		m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
				return inst.Apply(upd), nil
			},
		)
		m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.Receipt) (entities.Receipt, error) { return r, nil },
		)
		gomock.InOrder(
			m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(stale, nil),
			m.plans.EXPECT().ConditionalUpdate(gomock.Any(), "plan-1", int64(3), gomock.Any()).Return(entities.PaymentPlan{}, interfaces.ErrConditionNotMet),
			m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(fresh, nil),
			m.plans.EXPECT().ConditionalUpdate(gomock.Any(), "plan-1", int64(4), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, _ int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
					if upd.RemainingBalance != 1400000 || upd.CurrentInstallment != 5 {
						t.Fatalf("ledger must be recomputed from the fresh plan: %+v", upd)
					}
					return fresh.Apply(upd), nil
				},
			),
		)

		res, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if err != nil || !res.LedgerApplied || res.RemainingBalance != 1400000 {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("retries exhausted", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil).Times(3)
		m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).Return(entities.MonthlyPayment{}, interfaces.ErrConditionNotMet).Times(3)

		_, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("parent plan missing", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)
		m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
				return inst.Apply(upd), nil
			},
		)
		m.receipts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.Receipt) (entities.Receipt, error) { return r, nil },
		)
		m.plans.EXPECT().GetByID(gomock.Any(), "plan-1").Return(entities.PaymentPlan{}, nil)

		_, err := m.uc.ApplySucceeded(context.Background(), succeededPayment())
		if !errors.Is(err, ErrPaymentPlanNotFound) {
			t.Fatalf("expected ErrPaymentPlanNotFound, got %v", err)
		}
	})
}

func TestInstallmentReconciler_ApplyFailed(t *testing.T) {
	t.Run("pending becomes failed", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)
		m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
				if upd.Status != entities.MonthlyPaymentStatusFailed || upd.PaidDate != nil {
					t.Fatalf("unexpected update: %+v", upd)
				}
				return inst.Apply(upd), nil
			},
		)

		res, err := m.uc.ApplyFailed(context.Background(), "inst-4", "card_declined")
		if err != nil || !res.Applied || res.Outcome != entities.EventOutcomeFailed {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("paid stays paid", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()
		inst.Status = entities.MonthlyPaymentStatusPaid

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)

		res, err := m.uc.ApplyFailed(context.Background(), "inst-4", "")
		if err != nil || res.Applied || !res.Duplicate {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("already failed", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()
		inst.Status = entities.MonthlyPaymentStatusFailed

		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil)

		res, err := m.uc.ApplyFailed(context.Background(), "inst-4", "")
		if err != nil || res.Applied || !res.Duplicate {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("lost race to a success", func(t *testing.T) {
		m := newInstallmentMocks(t)
		inst := pendingInstallment()
		paid := inst
		paid.Status = entities.MonthlyPaymentStatusPaid

		gomock.InOrder(
			m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(inst, nil),
			m.installments.EXPECT().ConditionalUpdate(gomock.Any(), "inst-4", entities.MonthlyPaymentStatusPending, gomock.Any()).Return(entities.MonthlyPayment{}, interfaces.ErrConditionNotMet),
			m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(paid, nil),
		)

		res, err := m.uc.ApplyFailed(context.Background(), "inst-4", "")
		if err != nil || res.Applied || !res.Duplicate {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		m := newInstallmentMocks(t)
		m.installments.EXPECT().GetByID(gomock.Any(), "inst-4").Return(entities.MonthlyPayment{}, nil)

		_, err := m.uc.ApplyFailed(context.Background(), "inst-4", "")
		if !errors.Is(err, ErrInstallmentNotFound) {
			t.Fatalf("expected ErrInstallmentNotFound, got %v", err)
		}
	})
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"
	"log"
	"strings"
	"time"
)

const defaultMaxAttempts = 3

var (
	ErrInvalidInstallmentID = errors.New("invalid installment payment id")
	ErrInstallmentNotFound  = errors.New("installment payment not found")
	ErrPaymentPlanNotFound  = errors.New("payment plan not found")
	ErrConcurrentUpdate     = errors.New("concurrent update conflict: retries exhausted")
)

// InstallmentPayment is a confirmed provider payment for one installment.
type InstallmentPayment struct {
	InstallmentID         string
	Amount                int64
	ProviderTransactionID string
	PaymentIntentID       string
	PaymentMethod         string
	PaidAt                time.Time
}

// IInstallmentReconciler applies payment outcomes to installments and their
// parent plan ledger.
//
// Both operations are idempotent: redelivering an event never advances the
// ledger twice, and a failure never overrides a confirmed payment.

type IInstallmentReconciler interface {
	ApplySucceeded(ctx context.Context, p InstallmentPayment) (ReconcileResult, error)
	ApplyFailed(ctx context.Context, installmentID, reason string) (ReconcileResult, error)
}

type InstallmentReconcilerUseCase struct {
	installments interfaces.IInstallmentRepository
	plans        interfaces.IPaymentPlanRepository
	receipts     *ReceiptRecorder
	maxAttempts  int
	now          func() time.Time
}

var _ IInstallmentReconciler = (*InstallmentReconcilerUseCase)(nil)

func NewInstallmentReconcilerUseCase(
	installments interfaces.IInstallmentRepository,
	plans interfaces.IPaymentPlanRepository,
	receipts *ReceiptRecorder,
	maxAttempts int,
) *InstallmentReconcilerUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &InstallmentReconcilerUseCase{
		installments: installments,
		plans:        plans,
		receipts:     receipts,
		maxAttempts:  maxAttempts,
		now:          time.Now,
	}
}

// ApplySucceeded marks the installment paid, records its receipt and advances
// the plan ledger. The installment write is authoritative: when a previous
// delivery stopped after it, this call derives the receipt and the ledger step
// from the stored installment and finishes the job.
func (u *InstallmentReconcilerUseCase) ApplySucceeded(ctx context.Context, p InstallmentPayment) (ReconcileResult, error) {
	p.InstallmentID = strings.TrimSpace(p.InstallmentID)
	if p.InstallmentID == "" {
		return ReconcileResult{}, ErrInvalidInstallmentID
	}
	log.Printf("[reconcile][installment] apply-succeeded start installment_id=%s provider_txn_id=%s amount=%d", p.InstallmentID, p.ProviderTransactionID, p.Amount)

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		res, err := u.applySucceededOnce(ctx, p)
		if errors.Is(err, interfaces.ErrConditionNotMet) {
			log.Printf("[reconcile][installment] lost conditional write installment_id=%s attempt=%d/%d", p.InstallmentID, attempt, u.maxAttempts)
			continue
		}
		if err != nil {
			log.Printf("[reconcile][installment] apply-succeeded failed installment_id=%s err=%v", p.InstallmentID, err)
			return ReconcileResult{}, err
		}
		log.Printf("[reconcile][installment] apply-succeeded done installment_id=%s applied=%t ledger_applied=%t duplicate=%t plan_id=%s remaining_balance=%d plan_status=%s",
			p.InstallmentID, res.Applied, res.LedgerApplied, res.Duplicate, res.PlanID, res.RemainingBalance, res.PlanStatus)
		return res, nil
	}
	return ReconcileResult{}, fmt.Errorf("%w: installment_id=%s", ErrConcurrentUpdate, p.InstallmentID)
}

func (u *InstallmentReconcilerUseCase) applySucceededOnce(ctx context.Context, p InstallmentPayment) (ReconcileResult, error) {
	inst, err := u.installments.GetByID(ctx, p.InstallmentID)
	if err != nil {
		return ReconcileResult{}, err
	}
	if inst.ID == "" {
		log.Printf("[ALERT][reconcile][installment] installment referenced by provider event not found installment_id=%s provider_txn_id=%s", p.InstallmentID, p.ProviderTransactionID)
		return ReconcileResult{}, fmt.Errorf("%w: installment_id=%s", ErrInstallmentNotFound, p.InstallmentID)
	}

	res := ReconcileResult{
		Route:    RouteInstallment,
		Outcome:  entities.EventOutcomeSucceeded,
		TargetID: inst.ID,
		PlanID:   inst.PlanID,
	}

	switch inst.Status {
	case entities.MonthlyPaymentStatusPaid:
		if inst.ReceiptID == "" {
			// Settled outside this service; nothing to derive the ledger step from.
			log.Printf("[reconcile][installment] installment already paid without receipt; skipping installment_id=%s", inst.ID)
			res.Duplicate = true
			return res, nil
		}
		if p.ProviderTransactionID != "" && p.ProviderTransactionID != inst.ProviderTransactionID {
			log.Printf("[ALERT][reconcile][installment] second provider payment for a paid installment installment_id=%s stored_txn_id=%s event_txn_id=%s", inst.ID, inst.ProviderTransactionID, p.ProviderTransactionID)
		}
	default:
		if p.Amount > 0 && p.Amount != inst.Amount {
			log.Printf("[reconcile][installment] amount mismatch installment_id=%s event_amount=%d amount_due=%d", inst.ID, p.Amount, inst.Amount)
		}
		now := u.now().UTC()
		paidAt := p.PaidAt.UTC()
		if p.PaidAt.IsZero() {
			paidAt = now
		}
		upd := entities.InstallmentUpdate{
			Status:                entities.MonthlyPaymentStatusPaid,
			PaidDate:              &paidAt,
			PaymentMethod:         p.PaymentMethod,
			PaymentIntentID:       p.PaymentIntentID,
			ProviderTransactionID: p.ProviderTransactionID,
			ReceiptID:             ReceiptID(entities.ReceiptKindInstallment, inst.ID, p.ProviderTransactionID),
			UpdatedAt:             now,
		}
		updated, err := u.installments.ConditionalUpdate(ctx, inst.ID, inst.Status, upd)
		if err != nil {
			return ReconcileResult{}, err
		}
		if inst.Status == entities.MonthlyPaymentStatusFailed {
			log.Printf("[reconcile][installment] confirmed payment supersedes earlier failure installment_id=%s", inst.ID)
		}
		inst = updated
		res.Applied = true
	}

	if _, err := u.receipts.Record(ctx, installmentReceiptInput(inst, p.Amount)); err != nil {
		return ReconcileResult{}, err
	}
	res.ReceiptID = inst.ReceiptID

	plan, ledgerApplied, err := u.applyToPlan(ctx, inst)
	if err != nil {
		return ReconcileResult{}, err
	}
	res.LedgerApplied = ledgerApplied
	res.Duplicate = !res.Applied && !ledgerApplied
	res.RemainingBalance = plan.RemainingBalance
	res.PlanStatus = plan.Status
	return res, nil
}

// applyToPlan absorbs a paid installment into its plan exactly once, using
// the plan version as an optimistic lock.
func (u *InstallmentReconcilerUseCase) applyToPlan(ctx context.Context, inst entities.MonthlyPayment) (entities.PaymentPlan, bool, error) {
	if strings.TrimSpace(inst.PlanID) == "" {
		log.Printf("[ALERT][reconcile][installment] installment has no parent plan installment_id=%s", inst.ID)
		return entities.PaymentPlan{}, false, fmt.Errorf("%w: installment_id=%s", ErrPaymentPlanNotFound, inst.ID)
	}

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		plan, err := u.plans.GetByID(ctx, inst.PlanID)
		if err != nil {
			return entities.PaymentPlan{}, false, err
		}
		if plan.ID == "" {
			log.Printf("[ALERT][reconcile][installment] parent plan not found plan_id=%s installment_id=%s", inst.PlanID, inst.ID)
			return entities.PaymentPlan{}, false, fmt.Errorf("%w: plan_id=%s", ErrPaymentPlanNotFound, inst.PlanID)
		}
		if plan.HasApplied(inst.ID) {
			return plan, false, nil
		}

		upd := plan.ApplyInstallment(inst.ID, inst.Amount, u.now().UTC())
		updated, err := u.plans.ConditionalUpdate(ctx, plan.ID, plan.Version, upd)
		if errors.Is(err, interfaces.ErrConditionNotMet) {
			log.Printf("[reconcile][installment] plan version conflict plan_id=%s version=%d attempt=%d/%d", plan.ID, plan.Version, attempt, u.maxAttempts)
			continue
		}
		if err != nil {
			return entities.PaymentPlan{}, false, err
		}
		log.Printf("[reconcile][installment] ledger advanced plan_id=%s installment_id=%s current_installment=%d remaining_balance=%d status=%s",
			updated.ID, inst.ID, updated.CurrentInstallment, updated.RemainingBalance, updated.Status)
		return updated, true, nil
	}
	return entities.PaymentPlan{}, false, fmt.Errorf("%w: plan_id=%s", ErrConcurrentUpdate, inst.PlanID)
}

// ApplyFailed moves a pending installment to failed. Paid and failed
// installments are left untouched.
func (u *InstallmentReconcilerUseCase) ApplyFailed(ctx context.Context, installmentID, reason string) (ReconcileResult, error) {
	installmentID = strings.TrimSpace(installmentID)
	if installmentID == "" {
		return ReconcileResult{}, ErrInvalidInstallmentID
	}
	log.Printf("[reconcile][installment] apply-failed start installment_id=%s reason=%q", installmentID, reason)

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		inst, err := u.installments.GetByID(ctx, installmentID)
		if err != nil {
			return ReconcileResult{}, err
		}
		if inst.ID == "" {
			log.Printf("[ALERT][reconcile][installment] installment referenced by provider event not found installment_id=%s", installmentID)
			return ReconcileResult{}, fmt.Errorf("%w: installment_id=%s", ErrInstallmentNotFound, installmentID)
		}

		res := ReconcileResult{Route: RouteInstallment, Outcome: entities.EventOutcomeFailed, TargetID: inst.ID, PlanID: inst.PlanID}
		switch inst.Status {
		case entities.MonthlyPaymentStatusPaid:
			log.Printf("[reconcile][installment] failure ignored; installment already paid installment_id=%s", inst.ID)
			res.Duplicate = true
			return res, nil
		case entities.MonthlyPaymentStatusFailed:
			res.Duplicate = true
			return res, nil
		}

		_, err = u.installments.ConditionalUpdate(ctx, inst.ID, inst.Status, entities.InstallmentUpdate{
			Status:    entities.MonthlyPaymentStatusFailed,
			UpdatedAt: u.now().UTC(),
		})
		if errors.Is(err, interfaces.ErrConditionNotMet) {
			log.Printf("[reconcile][installment] lost conditional write installment_id=%s attempt=%d/%d", inst.ID, attempt, u.maxAttempts)
			continue
		}
		if err != nil {
			return ReconcileResult{}, err
		}
		log.Printf("[reconcile][installment] installment marked failed installment_id=%s", inst.ID)
		res.Applied = true
		return res, nil
	}
	return ReconcileResult{}, fmt.Errorf("%w: installment_id=%s", ErrConcurrentUpdate, installmentID)
}

func installmentReceiptInput(inst entities.MonthlyPayment, eventAmount int64) ReceiptInput {
	amount := inst.Amount
	if eventAmount > 0 {
		amount = eventAmount
	}
	var paidAt time.Time
	if inst.PaidDate != nil {
		paidAt = *inst.PaidDate
	}
	label := "Installment"
	if inst.InstallmentNumber > 0 {
		label = fmt.Sprintf("Installment #%d", inst.InstallmentNumber)
	}
	return ReceiptInput{
		ID:                    inst.ReceiptID,
		Kind:                  entities.ReceiptKindInstallment,
		Amount:                amount,
		LinkedID:              inst.ID,
		ProviderTransactionID: inst.ProviderTransactionID,
		PaidAt:                paidAt,
		Label:                 label,
	}
}

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

var (
	ErrInvalidServiceRequestID = errors.New("invalid service request id")
	ErrServicePaymentNotFound  = errors.New("service payment not found")
)

// ServicePaymentConfirmation is a confirmed provider payment for a service request.
type ServicePaymentConfirmation struct {
	RequestID             string
	Amount                int64
	ProviderTransactionID string
	PaymentIntentID       string
	PaymentMethod         string
	PaidAt                time.Time
}

// IServicePaymentReconciler applies payment outcomes to service request
// payments. Success is sticky: a later failure never downgrades a paid record.

type IServicePaymentReconciler interface {
	ApplySucceeded(ctx context.Context, c ServicePaymentConfirmation) (ReconcileResult, error)
	ApplyFailed(ctx context.Context, requestID, reason string) (ReconcileResult, error)
}

type ServicePaymentReconcilerUseCase struct {
	payments    interfaces.IServicePaymentRepository
	receipts    *ReceiptRecorder
	maxAttempts int
	now         func() time.Time
}

var _ IServicePaymentReconciler = (*ServicePaymentReconcilerUseCase)(nil)

func NewServicePaymentReconcilerUseCase(payments interfaces.IServicePaymentRepository, receipts *ReceiptRecorder, maxAttempts int) *ServicePaymentReconcilerUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &ServicePaymentReconcilerUseCase{payments: payments, receipts: receipts, maxAttempts: maxAttempts, now: time.Now}
}

func (u *ServicePaymentReconcilerUseCase) ApplySucceeded(ctx context.Context, c ServicePaymentConfirmation) (ReconcileResult, error) {
	c.RequestID = strings.TrimSpace(c.RequestID)
	if c.RequestID == "" {
		return ReconcileResult{}, ErrInvalidServiceRequestID
	}
	log.Printf("[reconcile][service] apply-succeeded start request_id=%s provider_txn_id=%s amount=%d", c.RequestID, c.ProviderTransactionID, c.Amount)

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		sp, err := u.load(ctx, c.RequestID)
		if err != nil {
			return ReconcileResult{}, err
		}
		res := ReconcileResult{Route: RouteServicePayment, Outcome: entities.EventOutcomeSucceeded, TargetID: sp.RequestID}

		if sp.Status == entities.ServicePaymentStatusPaid {
			res.Duplicate = true
			res.ReceiptID = sp.ReceiptID
			if sp.ReceiptID != "" {
				if _, err := u.receipts.Record(ctx, serviceReceiptInput(sp, c.Amount)); err != nil {
					return ReconcileResult{}, err
				}
			}
			log.Printf("[reconcile][service] already paid request_id=%s receipt_id=%s", sp.RequestID, sp.ReceiptID)
			return res, nil
		}

		if sp.Amount > 0 && c.Amount > 0 && sp.Amount != c.Amount {
			log.Printf("[reconcile][service] amount mismatch request_id=%s event_amount=%d amount_due=%d", sp.RequestID, c.Amount, sp.Amount)
		}
		now := u.now().UTC()
		paidAt := c.PaidAt.UTC()
		if c.PaidAt.IsZero() {
			paidAt = now
		}
		updated, err := u.payments.ConditionalUpdate(ctx, sp.RequestID, sp.Status, entities.ServicePaymentUpdate{
			Status:                entities.ServicePaymentStatusPaid,
			PaidDate:              &paidAt,
			PaymentMethod:         c.PaymentMethod,
			PaymentIntentID:       c.PaymentIntentID,
			ProviderTransactionID: c.ProviderTransactionID,
			ReceiptID:             ReceiptID(entities.ReceiptKindServiceRequest, sp.RequestID, c.ProviderTransactionID),
			UpdatedAt:             now,
		})
		if errors.Is(err, interfaces.ErrConditionNotMet) {
			log.Printf("[reconcile][service] lost conditional write request_id=%s attempt=%d/%d", sp.RequestID, attempt, u.maxAttempts)
			continue
		}
		if err != nil {
			return ReconcileResult{}, err
		}

		if _, err := u.receipts.Record(ctx, serviceReceiptInput(updated, c.Amount)); err != nil {
			return ReconcileResult{}, err
		}
		res.Applied = true
		res.ReceiptID = updated.ReceiptID
		log.Printf("[reconcile][service] marked paid request_id=%s receipt_id=%s", updated.RequestID, updated.ReceiptID)
		return res, nil
	}
	return ReconcileResult{}, fmt.Errorf("%w: request_id=%s", ErrConcurrentUpdate, c.RequestID)
}

func (u *ServicePaymentReconcilerUseCase) ApplyFailed(ctx context.Context, requestID, reason string) (ReconcileResult, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ReconcileResult{}, ErrInvalidServiceRequestID
	}
	log.Printf("[reconcile][service] apply-failed start request_id=%s reason=%q", requestID, reason)

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		sp, err := u.load(ctx, requestID)
		if err != nil {
			return ReconcileResult{}, err
		}
		res := ReconcileResult{Route: RouteServicePayment, Outcome: entities.EventOutcomeFailed, TargetID: sp.RequestID}

		switch sp.Status {
		case entities.ServicePaymentStatusPaid:
			log.Printf("[reconcile][service] failure ignored; already paid request_id=%s", sp.RequestID)
			res.Duplicate = true
			return res, nil
		case entities.ServicePaymentStatusFailed:
			res.Duplicate = true
			return res, nil
		}

		_, err = u.payments.ConditionalUpdate(ctx, sp.RequestID, sp.Status, entities.ServicePaymentUpdate{
			Status:    entities.ServicePaymentStatusFailed,
			UpdatedAt: u.now().UTC(),
		})
		if errors.Is(err, interfaces.ErrConditionNotMet) {
			log.Printf("[reconcile][service] lost conditional write request_id=%s attempt=%d/%d", sp.RequestID, attempt, u.maxAttempts)
			continue
		}
		if err != nil {
			return ReconcileResult{}, err
		}
		res.Applied = true
		log.Printf("[reconcile][service] marked failed request_id=%s", sp.RequestID)
		return res, nil
	}
	return ReconcileResult{}, fmt.Errorf("%w: request_id=%s", ErrConcurrentUpdate, requestID)
}

func (u *ServicePaymentReconcilerUseCase) load(ctx context.Context, requestID string) (entities.ServicePayment, error) {
	sp, err := u.payments.GetByRequestID(ctx, requestID)
	if err != nil {
		return entities.ServicePayment{}, err
	}
	if sp.RequestID == "" {
		log.Printf("[ALERT][reconcile][service] service payment referenced by provider event not found request_id=%s", requestID)
		return entities.ServicePayment{}, fmt.Errorf("%w: request_id=%s", ErrServicePaymentNotFound, requestID)
	}
	return sp, nil
}

// serviceReceiptInput records what the provider collected; the stored amount
// due is only used when the event carries none.
func serviceReceiptInput(sp entities.ServicePayment, paidAmount int64) ReceiptInput {
	var paidAt time.Time
	if sp.PaidDate != nil {
		paidAt = *sp.PaidDate
	}
	amount := sp.Amount
	if paidAmount > 0 {
		amount = paidAmount
	}
	return ReceiptInput{
		ID:                    sp.ReceiptID,
		Kind:                  entities.ReceiptKindServiceRequest,
		Amount:                amount,
		LinkedID:              sp.RequestID,
		ProviderTransactionID: sp.ProviderTransactionID,
		PaidAt:                paidAt,
		Label:                 "Service request " + sp.RequestID,
	}
}

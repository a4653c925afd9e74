package usecase

import (
	"context"
	"lease_ledger/internal/domain/entities"
	"log"
)

// IReconciliationUseCase applies one verified, normalized provider event.

type IReconciliationUseCase interface {
	Reconcile(ctx context.Context, evt entities.ReconciliationEvent) (ReconcileResult, error)
}

type ReconciliationUseCase struct {
	installments IInstallmentReconciler
	services     IServicePaymentReconciler
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(installments IInstallmentReconciler, services IServicePaymentReconciler) *ReconciliationUseCase {
	return &ReconciliationUseCase{installments: installments, services: services}
}

// Reconcile routes the event and invokes the matching reconciler. Events that
// carry no recognizable target, or whose kind says nothing about the payment
// outcome, are accepted as no-ops.
func (u *ReconciliationUseCase) Reconcile(ctx context.Context, evt entities.ReconciliationEvent) (ReconcileResult, error) {
	route := RouteEvent(evt)
	outcome := evt.Kind.Outcome()
	log.Printf("[reconcile][router] event_id=%s type=%s kind=%s route=%s outcome=%s provider_txn_id=%s",
		evt.ID, evt.RawType, evt.Kind, route, outcome, evt.ProviderTransactionID)

	if route == RouteNone {
		log.Printf("[reconcile][router] WARN no reconcilable target; ignoring event_id=%s type=%s", evt.ID, evt.RawType)
		return ReconcileResult{Route: RouteNone, Outcome: outcome}, nil
	}
	if outcome == entities.EventOutcomeUnknown {
		log.Printf("[reconcile][router] WARN unhandled event type; ignoring event_id=%s type=%s", evt.ID, evt.RawType)
		return ReconcileResult{Route: route, Outcome: outcome}, nil
	}

	switch route {
	case RouteInstallment:
		if outcome == entities.EventOutcomeFailed {
			return u.installments.ApplyFailed(ctx, evt.Metadata.InstallmentPaymentID, evt.FailureReason)
		}
		return u.installments.ApplySucceeded(ctx, InstallmentPayment{
			InstallmentID:         evt.Metadata.InstallmentPaymentID,
			Amount:                evt.Amount,
			ProviderTransactionID: evt.ProviderTransactionID,
			PaymentIntentID:       evt.PaymentIntentID,
			PaymentMethod:         evt.PaymentMethod,
			PaidAt:                evt.OccurredAt,
		})
	default:
		if outcome == entities.EventOutcomeFailed {
			return u.services.ApplyFailed(ctx, evt.Metadata.ServiceRequestID, evt.FailureReason)
		}
		return u.services.ApplySucceeded(ctx, ServicePaymentConfirmation{
			RequestID:             evt.Metadata.ServiceRequestID,
			Amount:                evt.Amount,
			ProviderTransactionID: evt.ProviderTransactionID,
			PaymentIntentID:       evt.PaymentIntentID,
			PaymentMethod:         evt.PaymentMethod,
			PaidAt:                evt.OccurredAt,
		})
	}
}

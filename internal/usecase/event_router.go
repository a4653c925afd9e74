package usecase

import "lease_ledger/internal/domain/entities"

// Route names the reconciler an event is dispatched to.
type Route string

const (
	RouteInstallment    Route = "installment"
	RouteServicePayment Route = "service_payment"
	RouteNone           Route = "none"
)

// RouteEvent picks the reconciler from what was paid for, not from how the
// provider reported it: an installment id wins, then a service request id.
// Whether the payment succeeded or failed travels separately as the outcome.
func RouteEvent(evt entities.ReconciliationEvent) Route {
	switch {
	case evt.Metadata.InstallmentPaymentID != "":
		return RouteInstallment
	case evt.Metadata.ServiceRequestID != "":
		return RouteServicePayment
	default:
		return RouteNone
	}
}

// ReconcileResult reports what one reconciliation call did.
type ReconcileResult struct {
	Route    Route                 `json:"route"`
	Outcome  entities.EventOutcome `json:"outcome"`
	TargetID string                `json:"target_id,omitempty"`

	// Applied is true when the record transitioned in this call.
	Applied bool `json:"applied"`
	// LedgerApplied is true when the parent plan absorbed the installment in this call.
	LedgerApplied bool `json:"ledger_applied"`
	// Duplicate is true when the event had already been fully reconciled.
	Duplicate bool `json:"duplicate"`

	ReceiptID        string                     `json:"receipt_id,omitempty"`
	PlanID           string                     `json:"plan_id,omitempty"`
	RemainingBalance int64                      `json:"remaining_balance,omitempty"`
	PlanStatus       entities.PaymentPlanStatus `json:"plan_status,omitempty"`
}

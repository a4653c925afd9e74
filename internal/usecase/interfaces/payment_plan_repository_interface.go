package interfaces

import (
	"context"
	"lease_ledger/internal/domain/entities"
)

// IPaymentPlanRepository abstracts persistence for PaymentPlan.
//
// ConditionalUpdate is an optimistic write: it applies only while the stored
// version equals expectedVersion, bumps the version and appends
// upd.InstallmentID to the applied list. A stale version yields
// ErrConditionNotMet.

type IPaymentPlanRepository interface {
	GetByID(ctx context.Context, id string) (entities.PaymentPlan, error)
	ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error)
}

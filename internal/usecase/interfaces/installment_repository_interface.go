package interfaces

import (
	"context"
	"lease_ledger/internal/domain/entities"
)

// IInstallmentRepository abstracts persistence for MonthlyPayment.
//
// GetByID returns a zero-value entity when the installment does not exist.
// ConditionalUpdate writes only while the stored status still equals expected,
// which makes the idempotency check and the write a single atomic operation;
// otherwise it returns ErrConditionNotMet.

type IInstallmentRepository interface {
	GetByID(ctx context.Context, id string) (entities.MonthlyPayment, error)
	ConditionalUpdate(ctx context.Context, id string, expected entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error)
}

package interfaces

import (
	"context"
	"lease_ledger/internal/domain/entities"
)

// IServicePaymentRepository abstracts persistence for ServicePayment, keyed by
// service request id.

type IServicePaymentRepository interface {
	GetByRequestID(ctx context.Context, requestID string) (entities.ServicePayment, error)
	ConditionalUpdate(ctx context.Context, requestID string, expected entities.ServicePaymentStatus, upd entities.ServicePaymentUpdate) (entities.ServicePayment, error)
}

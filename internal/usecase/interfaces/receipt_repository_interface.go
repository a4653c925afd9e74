package interfaces

import (
	"context"
	"lease_ledger/internal/domain/entities"
)

// IReceiptRepository is the append-only receipt store. Insert fails with
// ErrAlreadyExists when the id is taken; there is no update or delete.

type IReceiptRepository interface {
	Insert(ctx context.Context, r entities.Receipt) (entities.Receipt, error)
	GetByID(ctx context.Context, id string) (entities.Receipt, error)
}

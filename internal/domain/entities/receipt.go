package entities

import "time"

type ReceiptKind string

const (
	ReceiptKindInstallment    ReceiptKind = "installment"
	ReceiptKindServiceRequest ReceiptKind = "service_request"
)

// Receipt is the immutable audit record of a reconciled payment.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Receipts are insert-only; there is no update or delete path.
type Receipt struct {
	ID                    string      `json:"id"`
	Kind                  ReceiptKind `json:"kind"`
	Amount                int64       `json:"amount"`
	LinkedID              string      `json:"linked_id"`
	ProviderTransactionID string      `json:"provider_transaction_id"`
	PaidAt                time.Time   `json:"paid_at"`
	Description           string      `json:"description"`
	CreatedAt             time.Time   `json:"created_at"`
}

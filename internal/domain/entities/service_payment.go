package entities

import "time"

// ServicePaymentStatus represents the payment state of a service request.
type ServicePaymentStatus string

const (
	ServicePaymentStatusUnpaid              ServicePaymentStatus = "unpaid"
	ServicePaymentStatusPendingVerification ServicePaymentStatus = "pending_verification"
	ServicePaymentStatusPaid                ServicePaymentStatus = "paid"
	ServicePaymentStatusFailed              ServicePaymentStatus = "failed"
)

// ServicePayment is the one-off charge attached to a service request.
// It is unrelated to the lease ledger.
//
// Storage model (DynamoDB):
//   - PK: request_id
type ServicePayment struct {
	RequestID             string               `json:"request_id"`
	Amount                int64                `json:"amount"`
	Status                ServicePaymentStatus `json:"status"`
	PaidDate              *time.Time           `json:"paid_date,omitempty"`
	PaymentMethod         string               `json:"payment_method,omitempty"`
	PaymentIntentID       string               `json:"payment_intent_id,omitempty"`
	ProviderTransactionID string               `json:"provider_transaction_id,omitempty"`
	ReceiptID             string               `json:"receipt_id,omitempty"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type ServicePaymentUpdate struct {
	Status                ServicePaymentStatus
	PaidDate              *time.Time
	PaymentMethod         string
	PaymentIntentID       string
	ProviderTransactionID string
	ReceiptID             string
	UpdatedAt             time.Time
}

func (s ServicePayment) Apply(u ServicePaymentUpdate) ServicePayment {
	out := s
	out.Status = u.Status
	out.UpdatedAt = u.UpdatedAt
	if u.PaidDate != nil {
		paid := *u.PaidDate
		out.PaidDate = &paid
	}
	if u.PaymentMethod != "" {
		out.PaymentMethod = u.PaymentMethod
	}
	if u.PaymentIntentID != "" {
		out.PaymentIntentID = u.PaymentIntentID
	}
	if u.ProviderTransactionID != "" {
		out.ProviderTransactionID = u.ProviderTransactionID
	}
	if u.ReceiptID != "" {
		out.ReceiptID = u.ReceiptID
	}
	return out
}

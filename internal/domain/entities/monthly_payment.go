package entities

import "time"

// MonthlyPaymentStatus represents the lifecycle of one installment.
//
// The engine only moves pending installments to a terminal state, with one
// exception: a failed installment may still become paid, since a confirmed
// payment is never dropped. Overdue is derived for display (pending and past
// due) and never persisted by it.
type MonthlyPaymentStatus string

const (
	MonthlyPaymentStatusPending MonthlyPaymentStatus = "pending"
	MonthlyPaymentStatusPaid    MonthlyPaymentStatus = "paid"
	MonthlyPaymentStatusFailed  MonthlyPaymentStatus = "failed"
	MonthlyPaymentStatusOverdue MonthlyPaymentStatus = "overdue"
)

// MonthlyPayment is one scheduled installment of a PaymentPlan.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (plan_id-index): plan_id
type MonthlyPayment struct {
	ID                    string               `json:"id"`
	PlanID                string               `json:"plan_id"`
	InstallmentNumber     int                  `json:"installment_number"`
	Amount                int64                `json:"amount"`
	DueDate               time.Time            `json:"due_date"`
	Status                MonthlyPaymentStatus `json:"status"`
	PaidDate              *time.Time           `json:"paid_date,omitempty"`
	PaymentMethod         string               `json:"payment_method,omitempty"`
	PaymentIntentID       string               `json:"payment_intent_id,omitempty"`
	ProviderTransactionID string               `json:"provider_transaction_id,omitempty"`
	ReceiptID             string               `json:"receipt_id,omitempty"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// InstallmentUpdate is the set of fields written when an installment reaches
// a terminal state.
type InstallmentUpdate struct {
	Status                MonthlyPaymentStatus
	PaidDate              *time.Time
	PaymentMethod         string
	PaymentIntentID       string
	ProviderTransactionID string
	ReceiptID             string
	UpdatedAt             time.Time
}

// DisplayStatus returns the status shown to tenants, deriving overdue.
func (m MonthlyPayment) DisplayStatus(now time.Time) MonthlyPaymentStatus {
	if m.Status == MonthlyPaymentStatusPending && !m.DueDate.IsZero() && now.After(m.DueDate) {
		return MonthlyPaymentStatusOverdue
	}
	return m.Status
}

// Apply returns a copy of the installment with the update applied.
func (m MonthlyPayment) Apply(u InstallmentUpdate) MonthlyPayment {
	out := m
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

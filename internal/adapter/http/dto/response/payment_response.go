package response

import (
	"time"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/pkg"
)

// ReceiptPath is the route a receipt id dereferences to.
const ReceiptPath = "/v1/receipts/"

type MoneyResponse struct {
	Minor   int64  `json:"minor"`
	Display string `json:"display"`
}

func money(amount int64, currency string) MoneyResponse {
	return MoneyResponse{Minor: amount, Display: pkg.FormatAmount(amount, currency)}
}

func receiptURL(id string) string {
	if id == "" {
		return ""
	}
	return ReceiptPath + id
}

type PaymentPlanResponse struct {
	ID                 string        `json:"id"`
	PropertyID         string        `json:"property_id"`
	TenantID           string        `json:"tenant_id"`
	PropertyPrice      MoneyResponse `json:"property_price"`
	DownPayment        MoneyResponse `json:"down_payment"`
	MonthlyPayment     MoneyResponse `json:"monthly_payment"`
	InterestRate       float64       `json:"interest_rate"`
	Duration           int           `json:"duration"`
	TotalAmount        MoneyResponse `json:"total_amount"`
	StartDate          time.Time     `json:"start_date"`
	CurrentInstallment int           `json:"current_installment"`
	RemainingBalance   MoneyResponse `json:"remaining_balance"`
	NextDueDate        time.Time     `json:"next_due_date"`
	Status             string        `json:"status"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func FromPaymentPlan(p entities.PaymentPlan, currency string) PaymentPlanResponse {
	return PaymentPlanResponse{
		ID:                 p.ID,
		PropertyID:         p.PropertyID,
		TenantID:           p.TenantID,
		PropertyPrice:      money(p.PropertyPrice, currency),
		DownPayment:        money(p.DownPayment, currency),
		MonthlyPayment:     money(p.MonthlyPayment, currency),
		InterestRate:       p.InterestRate,
		Duration:           p.Duration,
		TotalAmount:        money(p.TotalAmount, currency),
		StartDate:          p.StartDate,
		CurrentInstallment: p.CurrentInstallment,
		RemainingBalance:   money(p.RemainingBalance, currency),
		NextDueDate:        p.NextDueDate,
		Status:             string(p.Status),
		UpdatedAt:          p.UpdatedAt,
	}
}

type InstallmentResponse struct {
	ID                    string        `json:"id"`
	PlanID                string        `json:"plan_id"`
	InstallmentNumber     int           `json:"installment_number"`
	Amount                MoneyResponse `json:"amount"`
	DueDate               time.Time     `json:"due_date"`
	Status                string        `json:"status"`
	DisplayStatus         string        `json:"display_status"`
	PaidDate              *time.Time    `json:"paid_date,omitempty"`
	PaymentMethod         string        `json:"payment_method,omitempty"`
	PaymentIntentID       string        `json:"payment_intent_id,omitempty"`
	ProviderTransactionID string        `json:"provider_transaction_id,omitempty"`
	ReceiptID             string        `json:"receipt_id,omitempty"`
	ReceiptURL            string        `json:"receipt_url,omitempty"`
}

func FromInstallment(m entities.MonthlyPayment, currency string, now time.Time) InstallmentResponse {
	return InstallmentResponse{
		ID:                    m.ID,
		PlanID:                m.PlanID,
		InstallmentNumber:     m.InstallmentNumber,
		Amount:                money(m.Amount, currency),
		DueDate:               m.DueDate,
		Status:                string(m.Status),
		DisplayStatus:         string(m.DisplayStatus(now)),
		PaidDate:              m.PaidDate,
		PaymentMethod:         m.PaymentMethod,
		PaymentIntentID:       m.PaymentIntentID,
		ProviderTransactionID: m.ProviderTransactionID,
		ReceiptID:             m.ReceiptID,
		ReceiptURL:            receiptURL(m.ReceiptID),
	}
}

type ServicePaymentResponse struct {
	RequestID             string        `json:"request_id"`
	Amount                MoneyResponse `json:"amount"`
	Status                string        `json:"status"`
	PaidDate              *time.Time    `json:"paid_date,omitempty"`
	PaymentMethod         string        `json:"payment_method,omitempty"`
	PaymentIntentID       string        `json:"payment_intent_id,omitempty"`
	ProviderTransactionID string        `json:"provider_transaction_id,omitempty"`
	ReceiptID             string        `json:"receipt_id,omitempty"`
	ReceiptURL            string        `json:"receipt_url,omitempty"`
}

func FromServicePayment(sp entities.ServicePayment, currency string) ServicePaymentResponse {
	return ServicePaymentResponse{
		RequestID:             sp.RequestID,
		Amount:                money(sp.Amount, currency),
		Status:                string(sp.Status),
		PaidDate:              sp.PaidDate,
		PaymentMethod:         sp.PaymentMethod,
		PaymentIntentID:       sp.PaymentIntentID,
		ProviderTransactionID: sp.ProviderTransactionID,
		ReceiptID:             sp.ReceiptID,
		ReceiptURL:            receiptURL(sp.ReceiptID),
	}
}

type ReceiptResponse struct {
	ID                    string        `json:"id"`
	Kind                  string        `json:"kind"`
	Amount                MoneyResponse `json:"amount"`
	LinkedID              string        `json:"linked_id"`
	ProviderTransactionID string        `json:"provider_transaction_id"`
	PaidAt                time.Time     `json:"paid_at"`
	Description           string        `json:"description"`
	CreatedAt             time.Time     `json:"created_at"`
	URL                   string        `json:"url"`
}

func FromReceipt(r entities.Receipt, currency string) ReceiptResponse {
	return ReceiptResponse{
		ID:                    r.ID,
		Kind:                  string(r.Kind),
		Amount:                money(r.Amount, currency),
		LinkedID:              r.LinkedID,
		ProviderTransactionID: r.ProviderTransactionID,
		PaidAt:                r.PaidAt,
		Description:           r.Description,
		CreatedAt:             r.CreatedAt,
		URL:                   receiptURL(r.ID),
	}
}

package entities

import "time"

// PaymentPlanStatus represents the lifecycle of a lease amortization ledger.
type PaymentPlanStatus string

const (
	PaymentPlanStatusActive    PaymentPlanStatus = "active"
	PaymentPlanStatusCompleted PaymentPlanStatus = "completed"
)

// PaymentPlan is the amortization ledger of one leased property.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - every amount is expressed in minor currency units (centavos).
//
// Ledger notes:
//   - CurrentInstallment counts the installments already applied (1-based index
//     of the last one); it only moves forward.
//   - AppliedInstallmentIDs lists the installments absorbed by the ledger, so a
//     retried delivery can tell whether the plan step already ran.
//   - Version is bumped on every ledger write and used as the optimistic lock.
type PaymentPlan struct {
	ID                    string            `json:"id"`
	PropertyID            string            `json:"property_id"`
	TenantID              string            `json:"tenant_id"`
	PropertyPrice         int64             `json:"property_price"`
	DownPayment           int64             `json:"down_payment"`
	MonthlyPayment        int64             `json:"monthly_payment"`
	InterestRate          float64           `json:"interest_rate"`
	Duration              int               `json:"duration"`
	TotalAmount           int64             `json:"total_amount"`
	StartDate             time.Time         `json:"start_date"`
	CurrentInstallment    int               `json:"current_installment"`
	RemainingBalance      int64             `json:"remaining_balance"`
	NextDueDate           time.Time         `json:"next_due_date"`
	Status                PaymentPlanStatus `json:"status"`
	AppliedInstallmentIDs []string          `json:"applied_installment_ids,omitempty"`
	Version               int64             `json:"version"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// PlanLedgerUpdate is the set of fields the reconciler writes on a plan.
type PlanLedgerUpdate struct {
	InstallmentID      string
	CurrentInstallment int
	RemainingBalance   int64
	NextDueDate        time.Time
	Status             PaymentPlanStatus
	UpdatedAt          time.Time
}

// HasApplied reports whether the ledger already absorbed the installment.
func (p PaymentPlan) HasApplied(installmentID string) bool {
	for _, id := range p.AppliedInstallmentIDs {
		if id == installmentID {
			return true
		}
	}
	return false
}

// ApplyInstallment computes the ledger state after one installment of amount
// is paid. The receiver is not modified.
func (p PaymentPlan) ApplyInstallment(installmentID string, amount int64, now time.Time) PlanLedgerUpdate {
	remaining := p.RemainingBalance - amount
	if remaining < 0 {
		remaining = 0
	}

	status := p.Status
	if remaining == 0 {
		status = PaymentPlanStatusCompleted
	}
	if status == "" {
		status = PaymentPlanStatusActive
	}

	next := p.NextDueDate
	if !next.IsZero() {
		next = AddMonthClamped(next, p.dueAnchorDay())
	}

	return PlanLedgerUpdate{
		InstallmentID:      installmentID,
		CurrentInstallment: p.CurrentInstallment + 1,
		RemainingBalance:   remaining,
		NextDueDate:        next,
		Status:             status,
		UpdatedAt:          now,
	}
}

// dueAnchorDay is the day of month the next due date keeps. A due date sitting
// on the last day of a short month was clamped, so the start day is restored.
func (p PaymentPlan) dueAnchorDay() int {
	day := p.NextDueDate.Day()
	if p.StartDate.IsZero() {
		return day
	}
	startDay := p.StartDate.Day()
	lastDay := time.Date(p.NextDueDate.Year(), p.NextDueDate.Month()+1, 0, 0, 0, 0, 0, p.NextDueDate.Location()).Day()
	if day == lastDay && day < startDay {
		return startDay
	}
	return day
}

// Apply returns a copy of the plan with the ledger update applied and the
// version bumped, mirroring what a conditional write stores.
func (p PaymentPlan) Apply(u PlanLedgerUpdate) PaymentPlan {
	out := p
	out.CurrentInstallment = u.CurrentInstallment
	out.RemainingBalance = u.RemainingBalance
	out.NextDueDate = u.NextDueDate
	out.Status = u.Status
	out.UpdatedAt = u.UpdatedAt
	out.AppliedInstallmentIDs = append(append([]string(nil), p.AppliedInstallmentIDs...), u.InstallmentID)
	out.Version = p.Version + 1
	return out
}

// AddMonthClamped moves t one calendar month forward, placing it on anchorDay
// or on the last day of the target month when that month is shorter.
// Jan 31 lands on Feb 28 (Feb 29 in leap years), never on Mar 3.
func AddMonthClamped(t time.Time, anchorDay int) time.Time {
	year, month, _ := t.Date()
	firstOfTarget := time.Date(year, month+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := anchorDay
	if day <= 0 {
		day = t.Day()
	}
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

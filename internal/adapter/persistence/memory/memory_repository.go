// Package memory implements the persistence gateway in process memory with
// the same compare-and-swap semantics as the DynamoDB repositories. It backs
// tests and local runs (PERSISTENCE_DRIVER=memory).
package memory

import (
	"context"
	"sync"

	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"
)

// Store groups the four repositories over one set of maps.
type Store struct {
	Plans           *PaymentPlanRepository
	Installments    *InstallmentRepository
	ServicePayments *ServicePaymentRepository
	Receipts        *ReceiptRepository
}

func NewStore() *Store {
	return &Store{
		Plans:           &PaymentPlanRepository{items: map[string]entities.PaymentPlan{}},
		Installments:    &InstallmentRepository{items: map[string]entities.MonthlyPayment{}},
		ServicePayments: &ServicePaymentRepository{items: map[string]entities.ServicePayment{}},
		Receipts:        &ReceiptRepository{items: map[string]entities.Receipt{}},
	}
}

type PaymentPlanRepository struct {
	mu    sync.Mutex
	items map[string]entities.PaymentPlan
}

var _ interfaces.IPaymentPlanRepository = (*PaymentPlanRepository)(nil)

// Seed stores a plan as the leasing workflow would create it.
func (r *PaymentPlanRepository) Seed(p entities.PaymentPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = copyPlan(p)
}

func (r *PaymentPlanRepository) GetByID(ctx context.Context, id string) (entities.PaymentPlan, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentPlan{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyPlan(r.items[id]), nil
}

func (r *PaymentPlanRepository) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, upd entities.PlanLedgerUpdate) (entities.PaymentPlan, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentPlan{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok || cur.Version != expectedVersion {
		return entities.PaymentPlan{}, interfaces.ErrConditionNotMet
	}
	next := cur.Apply(upd)
	r.items[id] = next
	return copyPlan(next), nil
}

type InstallmentRepository struct {
	mu    sync.Mutex
	items map[string]entities.MonthlyPayment
}

var _ interfaces.IInstallmentRepository = (*InstallmentRepository)(nil)

func (r *InstallmentRepository) Seed(m entities.MonthlyPayment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[m.ID] = copyInstallment(m)
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (entities.MonthlyPayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.MonthlyPayment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyInstallment(r.items[id]), nil
}

func (r *InstallmentRepository) ConditionalUpdate(ctx context.Context, id string, expected entities.MonthlyPaymentStatus, upd entities.InstallmentUpdate) (entities.MonthlyPayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.MonthlyPayment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok || cur.Status != expected {
		return entities.MonthlyPayment{}, interfaces.ErrConditionNotMet
	}
	next := cur.Apply(upd)
	r.items[id] = next
	return copyInstallment(next), nil
}

type ServicePaymentRepository struct {
	mu    sync.Mutex
	items map[string]entities.ServicePayment
}

var _ interfaces.IServicePaymentRepository = (*ServicePaymentRepository)(nil)

func (r *ServicePaymentRepository) Seed(sp entities.ServicePayment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[sp.RequestID] = copyServicePayment(sp)
}

func (r *ServicePaymentRepository) GetByRequestID(ctx context.Context, requestID string) (entities.ServicePayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.ServicePayment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyServicePayment(r.items[requestID]), nil
}

func (r *ServicePaymentRepository) ConditionalUpdate(ctx context.Context, requestID string, expected entities.ServicePaymentStatus, upd entities.ServicePaymentUpdate) (entities.ServicePayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.ServicePayment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[requestID]
	if !ok || cur.Status != expected {
		return entities.ServicePayment{}, interfaces.ErrConditionNotMet
	}
	next := cur.Apply(upd)
	r.items[requestID] = next
	return copyServicePayment(next), nil
}

type ReceiptRepository struct {
	mu    sync.Mutex
	items map[string]entities.Receipt
}

var _ interfaces.IReceiptRepository = (*ReceiptRepository)(nil)

func (r *ReceiptRepository) Insert(ctx context.Context, rcpt entities.Receipt) (entities.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return entities.Receipt{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rcpt.ID]; ok {
		return entities.Receipt{}, interfaces.ErrAlreadyExists
	}
	r.items[rcpt.ID] = rcpt
	return rcpt, nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (entities.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return entities.Receipt{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

// List returns every stored receipt; order is unspecified.
func (r *ReceiptRepository) List() []entities.Receipt {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Receipt, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out
}

func copyPlan(p entities.PaymentPlan) entities.PaymentPlan {
	if p.AppliedInstallmentIDs != nil {
		p.AppliedInstallmentIDs = append([]string(nil), p.AppliedInstallmentIDs...)
	}
	return p
}

func copyInstallment(m entities.MonthlyPayment) entities.MonthlyPayment {
	if m.PaidDate != nil {
		paid := *m.PaidDate
		m.PaidDate = &paid
	}
	return m
}

func copyServicePayment(sp entities.ServicePayment) entities.ServicePayment {
	if sp.PaidDate != nil {
		paid := *sp.PaidDate
		sp.PaidDate = &paid
	}
	return sp
}

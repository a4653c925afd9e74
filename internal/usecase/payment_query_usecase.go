package usecase

import (
	"context"
	"errors"
	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"
	"strings"
)

var (
	ErrInvalidPlanID    = errors.New("invalid payment plan id")
	ErrInvalidReceiptID = errors.New("invalid receipt id")
	ErrReceiptNotFound  = errors.New("receipt not found")
)

// IPaymentQueryUseCase exposes the reconciled state to display surfaces.

type IPaymentQueryUseCase interface {
	GetPaymentPlan(ctx context.Context, id string) (entities.PaymentPlan, error)
	GetInstallment(ctx context.Context, id string) (entities.MonthlyPayment, error)
	GetServicePayment(ctx context.Context, requestID string) (entities.ServicePayment, error)
	GetReceipt(ctx context.Context, id string) (entities.Receipt, error)
}

type PaymentQueryUseCase struct {
	plans        interfaces.IPaymentPlanRepository
	installments interfaces.IInstallmentRepository
	services     interfaces.IServicePaymentRepository
	receipts     interfaces.IReceiptRepository
}

var _ IPaymentQueryUseCase = (*PaymentQueryUseCase)(nil)

func NewPaymentQueryUseCase(
	plans interfaces.IPaymentPlanRepository,
	installments interfaces.IInstallmentRepository,
	services interfaces.IServicePaymentRepository,
	receipts interfaces.IReceiptRepository,
) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{plans: plans, installments: installments, services: services, receipts: receipts}
}

func (u *PaymentQueryUseCase) GetPaymentPlan(ctx context.Context, id string) (entities.PaymentPlan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentPlan{}, ErrInvalidPlanID
	}
	p, err := u.plans.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentPlan{}, err
	}
	if p.ID == "" {
		return entities.PaymentPlan{}, ErrPaymentPlanNotFound
	}
	return p, nil
}

func (u *PaymentQueryUseCase) GetInstallment(ctx context.Context, id string) (entities.MonthlyPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.MonthlyPayment{}, ErrInvalidInstallmentID
	}
	m, err := u.installments.GetByID(ctx, id)
	if err != nil {
		return entities.MonthlyPayment{}, err
	}
	if m.ID == "" {
		return entities.MonthlyPayment{}, ErrInstallmentNotFound
	}
	return m, nil
}

func (u *PaymentQueryUseCase) GetServicePayment(ctx context.Context, requestID string) (entities.ServicePayment, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.ServicePayment{}, ErrInvalidServiceRequestID
	}
	sp, err := u.services.GetByRequestID(ctx, requestID)
	if err != nil {
		return entities.ServicePayment{}, err
	}
	if sp.RequestID == "" {
		return entities.ServicePayment{}, ErrServicePaymentNotFound
	}
	return sp, nil
}

func (u *PaymentQueryUseCase) GetReceipt(ctx context.Context, id string) (entities.Receipt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Receipt{}, ErrInvalidReceiptID
	}
	r, err := u.receipts.GetByID(ctx, id)
	if err != nil {
		return entities.Receipt{}, err
	}
	if r.ID == "" {
		return entities.Receipt{}, ErrReceiptNotFound
	}
	return r, nil
}

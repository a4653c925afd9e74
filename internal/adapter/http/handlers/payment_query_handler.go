package handlers

import (
	"errors"
	"net/http"
	"time"

	response "lease_ledger/internal/adapter/http/dto/response"
	"lease_ledger/internal/usecase"
	"lease_ledger/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentQueryHandler serves the reconciled state to display surfaces.

type PaymentQueryHandler struct {
	usecase  usecase.IPaymentQueryUseCase
	currency string
	now      func() time.Time
}

func NewPaymentQueryHandler(uc usecase.IPaymentQueryUseCase, currency string) *PaymentQueryHandler {
	return &PaymentQueryHandler{usecase: uc, currency: currency, now: time.Now}
}

// GetPaymentPlan godoc
// @Summary Get a payment plan ledger
// @Tags payments
// @Produce json
// @Param plan_id path string true "Payment plan ID"
// @Success 200 {object} response.PaymentPlanResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /payment-plans/{plan_id} [get]
func (h *PaymentQueryHandler) GetPaymentPlan(c *gin.Context) {
	plan, err := h.usecase.GetPaymentPlan(c.Request.Context(), c.Param("plan_id"))
	if err != nil {
		appErr := mapQueryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentPlan(plan, h.currency))
}

// GetInstallment godoc
// @Summary Get an installment with its display status
// @Tags payments
// @Produce json
// @Param installment_id path string true "Installment ID"
// @Success 200 {object} response.InstallmentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /installments/{installment_id} [get]
func (h *PaymentQueryHandler) GetInstallment(c *gin.Context) {
	inst, err := h.usecase.GetInstallment(c.Request.Context(), c.Param("installment_id"))
	if err != nil {
		appErr := mapQueryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInstallment(inst, h.currency, h.now()))
}

// GetServicePayment godoc
// @Summary Get the payment state of a service request
// @Tags payments
// @Produce json
// @Param request_id path string true "Service request ID"
// @Success 200 {object} response.ServicePaymentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /service-payments/{request_id} [get]
func (h *PaymentQueryHandler) GetServicePayment(c *gin.Context) {
	sp, err := h.usecase.GetServicePayment(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		appErr := mapQueryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServicePayment(sp, h.currency))
}

// GetReceipt godoc
// @Summary Get a receipt
// @Tags payments
// @Produce json
// @Param receipt_id path string true "Receipt ID"
// @Success 200 {object} response.ReceiptResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /receipts/{receipt_id} [get]
func (h *PaymentQueryHandler) GetReceipt(c *gin.Context) {
	r, err := h.usecase.GetReceipt(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		appErr := mapQueryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromReceipt(r, h.currency))
}

func mapQueryError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPlanID),
		errors.Is(err, usecase.ErrInvalidInstallmentID),
		errors.Is(err, usecase.ErrInvalidServiceRequestID),
		errors.Is(err, usecase.ErrInvalidReceiptID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentPlanNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PLAN_NOT_FOUND", "Payment plan not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInstallmentNotFound):
		return pkg.NewDomainErrorSimple("INSTALLMENT_NOT_FOUND", "Installment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServicePaymentNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_PAYMENT_NOT_FOUND", "Service payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReceiptNotFound):
		return pkg.NewDomainErrorSimple("RECEIPT_NOT_FOUND", "Receipt not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

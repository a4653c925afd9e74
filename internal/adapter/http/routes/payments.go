package routes

import (
	"lease_ledger/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks        = "/webhooks"
	PathPaymentPlans    = "/payment-plans"
	PathInstallments    = "/installments"
	PathServicePayments = "/service-payments"
	PathReceipts        = "/receipts"
)

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.PaymentWebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		// Called by the payment provider; authenticated by signature only.
		webhooks.POST("/payments", h.ReceivePaymentEvent)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentQueryHandler) {
	rg.GET(PathPaymentPlans+"/:plan_id", h.GetPaymentPlan)
	rg.GET(PathInstallments+"/:installment_id", h.GetInstallment)
	rg.GET(PathServicePayments+"/:request_id", h.GetServicePayment)
	rg.GET(PathReceipts+"/:receipt_id", h.GetReceipt)
}

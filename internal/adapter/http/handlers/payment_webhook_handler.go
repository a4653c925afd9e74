package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	request "lease_ledger/internal/adapter/http/dto/request"
	response "lease_ledger/internal/adapter/http/dto/response"
	"lease_ledger/internal/infrastructure/webhook"
	"lease_ledger/internal/usecase"
	"lease_ledger/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

// AltSignatureHeader is accepted when a proxy in front of the service renames
// the provider header.
const AltSignatureHeader = "X-Signature"

const defaultStorageTimeout = 10 * time.Second

// MaxWebhookBodyBytes caps what is read before the signature is checked.
const MaxWebhookBodyBytes = 1 << 20

// PaymentWebhookHandler is the provider-facing ingestion endpoint.
//
// Deliveries that can never succeed get 401 or 400. Anything that failed on
// our side gets 500 so the provider redelivers; every other outcome, no-ops
// included, is acknowledged with 200.

type PaymentWebhookHandler struct {
	verifier interfaces.ISignatureVerifier
	usecase  usecase.IReconciliationUseCase
	timeout  time.Duration
}

func NewPaymentWebhookHandler(verifier interfaces.ISignatureVerifier, uc usecase.IReconciliationUseCase, timeout time.Duration) *PaymentWebhookHandler {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return &PaymentWebhookHandler{verifier: verifier, usecase: uc, timeout: timeout}
}

// ReceivePaymentEvent godoc
// @Summary Receive a payment provider notification
// @Description Verifies the HMAC signature, normalizes the event and reconciles installments or service payments idempotently.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Paymongo-Signature header string true "t=<unix>,te=<hex>,li=<hex>"
// @Success 200 {object} response.WebhookAckResponse
// @Failure 400 {object} response.WebhookAckResponse
// @Failure 401 {object} response.WebhookAckResponse
// @Failure 500 {object} response.WebhookAckResponse
// @Router /webhooks/payments [post]
func (h *PaymentWebhookHandler) ReceivePaymentEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("[webhook][handler] body rejected limit=%d remote=%s", tooLarge.Limit, c.ClientIP())
			c.JSON(http.StatusBadRequest, response.WebhookNack("payload too large"))
			return
		}
		log.Printf("[webhook][handler] read body failed err=%v", err)
		c.JSON(http.StatusBadRequest, response.WebhookNack("unreadable body"))
		return
	}

	header := c.GetHeader(webhook.SignatureHeader)
	if header == "" {
		header = c.GetHeader(AltSignatureHeader)
	}
	if err := h.verifier.Verify(raw, header); err != nil {
		log.Printf("[webhook][handler] signature rejected remote=%s err=%v", c.ClientIP(), err)
		c.JSON(http.StatusUnauthorized, response.WebhookNack("invalid signature"))
		return
	}

	evt, err := request.ParseWebhookEvent(raw)
	if err != nil {
		log.Printf("[webhook][handler] rejected payload err=%v body=%q", err, truncate(raw, 512))
		c.JSON(http.StatusBadRequest, response.WebhookNack(parseErrorMessage(err)))
		return
	}
	log.Printf("[webhook][handler] event received event_id=%s type=%s livemode=%t provider_txn_id=%s amount=%d installment_id=%s request_id=%s month=%d",
		evt.ID, evt.RawType, evt.Livemode, evt.ProviderTransactionID, evt.Amount,
		evt.Metadata.InstallmentPaymentID, evt.Metadata.ServiceRequestID, evt.Metadata.MonthNumber)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.usecase.Reconcile(ctx, evt)
	if err != nil {
		status, msg := mapReconcileError(err)
		log.Printf("[webhook][handler] reconcile failed event_id=%s status=%d err=%v", evt.ID, status, err)
		c.JSON(status, response.WebhookNack(msg))
		return
	}

	log.Printf("[webhook][handler] event acknowledged event_id=%s route=%s applied=%t ledger_applied=%t duplicate=%t receipt_id=%s",
		evt.ID, res.Route, res.Applied, res.LedgerApplied, res.Duplicate, res.ReceiptID)
	c.JSON(http.StatusOK, response.WebhookAck())
}

func parseErrorMessage(err error) string {
	if errors.Is(err, request.ErrMissingPaymentMetadata) {
		return "missing payment metadata"
	}
	return "malformed event"
}

// mapReconcileError keeps every server-side failure at 500 so the provider
// redelivers; only identifiers that can never resolve are a client error.
func mapReconcileError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInstallmentID), errors.Is(err, usecase.ErrInvalidServiceRequestID):
		return http.StatusBadRequest, "invalid payment reference"
	case errors.Is(err, usecase.ErrInstallmentNotFound),
		errors.Is(err, usecase.ErrPaymentPlanNotFound),
		errors.Is(err, usecase.ErrServicePaymentNotFound):
		log.Printf("[ALERT][webhook][handler] data integrity error err=%v", err)
		return http.StatusInternalServerError, "payment record not found"
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return http.StatusInternalServerError, "concurrent update conflict"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusInternalServerError, "storage timeout"
	default:
		return http.StatusInternalServerError, "storage unavailable"
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

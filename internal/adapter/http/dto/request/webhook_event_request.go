package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lease_ledger/internal/domain/entities"
)

var (
	ErrMalformedWebhookEvent  = errors.New("malformed webhook event")
	ErrMissingPaymentMetadata = errors.New("webhook event metadata carries neither paymentId nor request_id")
)

// Metadata keys set on the payment session by the leasing and service-request
// workflows when they start a payment.
const (
	MetadataInstallmentPaymentID = "paymentId"
	MetadataServiceRequestID     = "request_id"
	MetadataMonthNumber          = "monthNumber"
)

var eventKinds = map[string]entities.EventKind{
	"payment.paid":                  entities.EventKindPaymentSucceeded,
	"payment.failed":                entities.EventKindPaymentFailed,
	"checkout_session.payment.paid": entities.EventKindCheckoutSucceeded,
	"payment_intent.succeeded":      entities.EventKindIntentSucceeded,
	"payment_intent.payment_failed": entities.EventKindIntentFailed,
}

// WebhookEventRequest is the provider notification envelope:
//
//	{"data":{"id":"evt_…","attributes":{"type":"payment.paid","livemode":false,
//	  "created_at":1700000000,"data":{"id":"pay_…","type":"payment","attributes":{…}}}}}
//
// The nested resource differs per event type and is decoded by the matching
// normalizer, see ParseWebhookEvent.
type WebhookEventRequest struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Type      string          `json:"type"`
			Livemode  bool            `json:"livemode"`
			CreatedAt int64           `json:"created_at"`
			Data      webhookResource `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

type webhookResource struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

type paymentAttributes struct {
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	Status          string         `json:"status"`
	Metadata        metadataBag    `json:"metadata"`
	Source          *paymentSource `json:"source"`
	PaymentIntentID string         `json:"payment_intent_id"`
	PaidAt          int64          `json:"paid_at"`
	FailedMessage   string         `json:"failed_message"`
	FailedCode      string         `json:"failed_code"`
}

type paymentSource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type paymentResource struct {
	ID         string            `json:"id"`
	Attributes paymentAttributes `json:"attributes"`
}

type checkoutSessionAttributes struct {
	Metadata          metadataBag       `json:"metadata"`
	Payments          []paymentResource `json:"payments"`
	PaymentMethodUsed string            `json:"payment_method_used"`
	PaymentIntent     *struct {
		ID string `json:"id"`
	} `json:"payment_intent"`
	PaidAt int64 `json:"paid_at"`
}

type paymentIntentAttributes struct {
	Amount           int64             `json:"amount"`
	Metadata         metadataBag       `json:"metadata"`
	Payments         []paymentResource `json:"payments"`
	LastPaymentError json.RawMessage   `json:"last_payment_error"`
}

// metadataBag keeps values raw because the provider echoes back whatever type
// the session was created with.
type metadataBag map[string]json.RawMessage

func (m metadataBag) str(key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func (m metadataBag) number(key string) int {
	v, err := strconv.Atoi(m.str(key))
	if err != nil {
		return 0
	}
	return v
}

// under returns m with missing or empty keys filled from base.
func (m metadataBag) under(base metadataBag) metadataBag {
	out := metadataBag{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range m {
		if m.str(k) == "" && out[k] != nil {
			continue
		}
		out[k] = v
	}
	return out
}

func (m metadataBag) toEntity() entities.EventMetadata {
	return entities.EventMetadata{
		InstallmentPaymentID: m.str(MetadataInstallmentPaymentID),
		ServiceRequestID:     m.str(MetadataServiceRequestID),
		MonthNumber:          m.number(MetadataMonthNumber),
	}
}

// normalized is what every resource shape reduces to.
type normalized struct {
	txnID         string
	intentID      string
	amount        int64
	method        string
	metadata      metadataBag
	paidAt        int64
	failureReason string
}

type normalizer func(res webhookResource) (normalized, error)

var normalizers = map[entities.EventKind]normalizer{
	entities.EventKindPaymentSucceeded:  normalizePayment,
	entities.EventKindPaymentFailed:     normalizePayment,
	entities.EventKindCheckoutSucceeded: normalizeCheckoutSession,
	entities.EventKindIntentSucceeded:   normalizePaymentIntent,
	entities.EventKindIntentFailed:      normalizePaymentIntent,
}

// ParseWebhookEvent decodes a verified provider notification into a
// ReconciliationEvent. Unrecognized event types decode into EventKindOther
// without inspecting the resource.
func ParseWebhookEvent(raw []byte) (entities.ReconciliationEvent, error) {
	var req WebhookEventRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return entities.ReconciliationEvent{}, fmt.Errorf("%w: %v", ErrMalformedWebhookEvent, err)
	}
	attrs := req.Data.Attributes
	rawType := strings.TrimSpace(attrs.Type)
	if rawType == "" {
		return entities.ReconciliationEvent{}, fmt.Errorf("%w: missing event type", ErrMalformedWebhookEvent)
	}

	evt := entities.ReconciliationEvent{
		ID:       req.Data.ID,
		Kind:     entities.EventKindOther,
		RawType:  rawType,
		Livemode: attrs.Livemode,
	}
	if attrs.CreatedAt > 0 {
		evt.OccurredAt = time.Unix(attrs.CreatedAt, 0).UTC()
	}

	kind, ok := eventKinds[rawType]
	if !ok {
		return evt, nil
	}
	evt.Kind = kind

	n, err := normalizers[kind](attrs.Data)
	if err != nil {
		return entities.ReconciliationEvent{}, fmt.Errorf("%w: %s resource: %v", ErrMalformedWebhookEvent, rawType, err)
	}
	evt.ProviderTransactionID = n.txnID
	evt.PaymentIntentID = n.intentID
	evt.Amount = n.amount
	evt.PaymentMethod = n.method
	evt.Metadata = n.metadata.toEntity()
	evt.FailureReason = n.failureReason
	if n.paidAt > 0 {
		evt.OccurredAt = time.Unix(n.paidAt, 0).UTC()
	}

	if evt.Metadata.InstallmentPaymentID == "" && evt.Metadata.ServiceRequestID == "" {
		return entities.ReconciliationEvent{}, fmt.Errorf("%w: event_id=%s type=%s", ErrMissingPaymentMetadata, evt.ID, rawType)
	}
	return evt, nil
}

func decodeAttributes(res webhookResource, v interface{}) error {
	if len(res.Attributes) == 0 {
		return errors.New("missing attributes")
	}
	return json.Unmarshal(res.Attributes, v)
}

func normalizePayment(res webhookResource) (normalized, error) {
	var a paymentAttributes
	if err := decodeAttributes(res, &a); err != nil {
		return normalized{}, err
	}
	n := normalized{
		txnID:         res.ID,
		intentID:      a.PaymentIntentID,
		amount:        a.Amount,
		metadata:      a.Metadata,
		paidAt:        a.PaidAt,
		failureReason: firstNonEmpty(a.FailedMessage, a.FailedCode),
	}
	if a.Source != nil {
		n.method = a.Source.Type
	}
	return n, nil
}

// normalizeCheckoutSession reads the first payment of the session. Session
// metadata fills keys the payment does not carry.
func normalizeCheckoutSession(res webhookResource) (normalized, error) {
	var a checkoutSessionAttributes
	if err := decodeAttributes(res, &a); err != nil {
		return normalized{}, err
	}
	n := normalized{
		txnID:    res.ID,
		method:   a.PaymentMethodUsed,
		metadata: a.Metadata,
		paidAt:   a.PaidAt,
	}
	if a.PaymentIntent != nil {
		n.intentID = a.PaymentIntent.ID
	}
	if len(a.Payments) > 0 {
		p := a.Payments[0]
		n.txnID = firstNonEmpty(p.ID, res.ID)
		n.amount = p.Attributes.Amount
		n.metadata = p.Attributes.Metadata.under(a.Metadata)
		n.intentID = firstNonEmpty(n.intentID, p.Attributes.PaymentIntentID)
		if p.Attributes.PaidAt > 0 {
			n.paidAt = p.Attributes.PaidAt
		}
		if n.method == "" && p.Attributes.Source != nil {
			n.method = p.Attributes.Source.Type
		}
	}
	return n, nil
}

// normalizePaymentIntent takes the latest payment attempt as the transaction.
func normalizePaymentIntent(res webhookResource) (normalized, error) {
	var a paymentIntentAttributes
	if err := decodeAttributes(res, &a); err != nil {
		return normalized{}, err
	}
	n := normalized{
		txnID:         res.ID,
		intentID:      res.ID,
		amount:        a.Amount,
		metadata:      a.Metadata,
		failureReason: paymentErrorMessage(a.LastPaymentError),
	}
	if len(a.Payments) > 0 {
		p := a.Payments[len(a.Payments)-1]
		n.txnID = firstNonEmpty(p.ID, res.ID)
		n.metadata = a.Metadata.under(p.Attributes.Metadata)
		n.paidAt = p.Attributes.PaidAt
		if n.amount == 0 {
			n.amount = p.Attributes.Amount
		}
		if p.Attributes.Source != nil {
			n.method = p.Attributes.Source.Type
		}
	}
	return n, nil
}

func paymentErrorMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		FailedMessage string `json:"failed_message"`
		FailedCode    string `json:"failed_code"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return firstNonEmpty(obj.FailedMessage, obj.FailedCode)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

package entities

import "time"

// EventKind is the normalized provider event type.
type EventKind string

const (
	EventKindPaymentSucceeded  EventKind = "payment_succeeded"
	EventKindPaymentFailed     EventKind = "payment_failed"
	EventKindCheckoutSucceeded EventKind = "checkout_succeeded"
	EventKindIntentSucceeded   EventKind = "intent_succeeded"
	EventKindIntentFailed      EventKind = "intent_failed"
	EventKindOther             EventKind = "other"
)

// EventOutcome tells a reconciler whether money moved.
type EventOutcome string

const (
	EventOutcomeSucceeded EventOutcome = "succeeded"
	EventOutcomeFailed    EventOutcome = "failed"
	EventOutcomeUnknown   EventOutcome = "unknown"
)

func (k EventKind) Outcome() EventOutcome {
	switch k {
	case EventKindPaymentSucceeded, EventKindCheckoutSucceeded, EventKindIntentSucceeded:
		return EventOutcomeSucceeded
	case EventKindPaymentFailed, EventKindIntentFailed:
		return EventOutcomeFailed
	default:
		return EventOutcomeUnknown
	}
}

// Actionable reports whether the kind can mutate payment state.
func (k EventKind) Actionable() bool {
	return k.Outcome() != EventOutcomeUnknown
}

// EventMetadata identifies what a payment was made for.
type EventMetadata struct {
	InstallmentPaymentID string `json:"installment_payment_id,omitempty"`
	ServiceRequestID     string `json:"service_request_id,omitempty"`
	MonthNumber          int    `json:"month_number,omitempty"`
}

// ReconciliationEvent is a verified provider notification normalized from
// whichever envelope shape the provider used. It is transient and only logged.
type ReconciliationEvent struct {
	ID                    string        `json:"id"`
	Kind                  EventKind     `json:"kind"`
	RawType               string        `json:"raw_type"`
	ProviderTransactionID string        `json:"provider_transaction_id"`
	PaymentIntentID       string        `json:"payment_intent_id,omitempty"`
	Amount                int64         `json:"amount"`
	PaymentMethod         string        `json:"payment_method,omitempty"`
	Metadata              EventMetadata `json:"metadata"`
	Livemode              bool          `json:"livemode"`
	OccurredAt            time.Time     `json:"occurred_at"`
	FailureReason         string        `json:"failure_reason,omitempty"`
}

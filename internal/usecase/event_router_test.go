package usecase

import (
	"testing"

	"lease_ledger/internal/domain/entities"
)

func TestRouteEvent(t *testing.T) {
	cases := []struct {
		name string
		meta entities.EventMetadata
		kind entities.EventKind
		want Route
	}{
		{"installment on success", entities.EventMetadata{InstallmentPaymentID: "inst-1"}, entities.EventKindPaymentSucceeded, RouteInstallment},
		{"installment on failure", entities.EventMetadata{InstallmentPaymentID: "inst-1"}, entities.EventKindIntentFailed, RouteInstallment},
		{"installment wins over service request", entities.EventMetadata{InstallmentPaymentID: "inst-1", ServiceRequestID: "req-1"}, entities.EventKindCheckoutSucceeded, RouteInstallment},
		{"service request", entities.EventMetadata{ServiceRequestID: "req-1"}, entities.EventKindCheckoutSucceeded, RouteServicePayment},
		{"no metadata", entities.EventMetadata{}, entities.EventKindPaymentSucceeded, RouteNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RouteEvent(entities.ReconciliationEvent{Kind: tc.kind, Metadata: tc.meta})
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

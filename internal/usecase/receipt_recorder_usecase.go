package usecase

import (
	"context"
	"errors"
	"fmt"
	"lease_ledger/internal/domain/entities"
	"lease_ledger/internal/usecase/interfaces"
	"lease_ledger/pkg"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var receiptNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:lease-ledger:receipts"))

// ReceiptInput describes a reconciled payment to be recorded.
// ID is optional; when empty it is derived with ReceiptID.
type ReceiptInput struct {
	ID                    string
	Kind                  entities.ReceiptKind
	Amount                int64
	LinkedID              string
	ProviderTransactionID string
	PaidAt                time.Time
	Label                 string
}

// ReceiptRecorder writes the append-only audit trail of reconciled payments.

type ReceiptRecorder struct {
	repo     interfaces.IReceiptRepository
	currency string
	now      func() time.Time
}

func NewReceiptRecorder(repo interfaces.IReceiptRepository, currency string) *ReceiptRecorder {
	return &ReceiptRecorder{repo: repo, currency: currency, now: time.Now}
}

// ReceiptID derives the stable receipt id of a payment, so that every
// delivery of the same provider transaction for the same record maps to one
// receipt.
func ReceiptID(kind entities.ReceiptKind, linkedID, providerTxnID string) string {
	name := strings.Join([]string{string(kind), linkedID, providerTxnID}, "|")
	return uuid.NewSHA1(receiptNamespace, []byte(name)).String()
}

// Record inserts the receipt. When it was already recorded by an earlier
// delivery the stored receipt is returned unchanged.
func (r *ReceiptRecorder) Record(ctx context.Context, in ReceiptInput) (entities.Receipt, error) {
	id := in.ID
	if id == "" {
		id = ReceiptID(in.Kind, in.LinkedID, in.ProviderTransactionID)
	}
	now := r.now().UTC()
	paidAt := in.PaidAt.UTC()
	if in.PaidAt.IsZero() {
		paidAt = now
	}

	rcpt := entities.Receipt{
		ID:                    id,
		Kind:                  in.Kind,
		Amount:                in.Amount,
		LinkedID:              in.LinkedID,
		ProviderTransactionID: in.ProviderTransactionID,
		PaidAt:                paidAt,
		Description:           r.describe(in),
		CreatedAt:             now,
	}

	created, err := r.repo.Insert(ctx, rcpt)
	if err == nil {
		log.Printf("[reconcile][receipt] recorded receipt_id=%s kind=%s linked_id=%s provider_txn_id=%s amount=%d", id, in.Kind, in.LinkedID, in.ProviderTransactionID, in.Amount)
		return created, nil
	}
	if !errors.Is(err, interfaces.ErrAlreadyExists) {
		log.Printf("[reconcile][receipt] insert failed receipt_id=%s err=%v", id, err)
		return entities.Receipt{}, err
	}

	existing, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Receipt{}, err
	}
	if existing.ID == "" {
		return entities.Receipt{}, fmt.Errorf("receipt %s reported as existing but not readable", id)
	}
	log.Printf("[reconcile][receipt] already recorded receipt_id=%s", id)
	return existing, nil
}

func (r *ReceiptRecorder) describe(in ReceiptInput) string {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		switch in.Kind {
		case entities.ReceiptKindInstallment:
			label = "Installment " + in.LinkedID
		case entities.ReceiptKindServiceRequest:
			label = "Service request " + in.LinkedID
		default:
			label = "Payment " + in.LinkedID
		}
	}
	return fmt.Sprintf("%s payment of %s", label, pkg.FormatAmount(in.Amount, r.currency))
}

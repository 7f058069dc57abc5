package workers

import (
	"context"
	"log"
	"time"

	"github.com/viratcollections/virat-api/gateway"
	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
)

const sweepBatchSize = 100

// Settler converts a draft whose payment completed into a real order.
type Settler interface {
	SettleDraft(ctx context.Context, draft *models.PaymentDraft) (*models.Order, error)
}

// ReconciliationWorker sweeps abandoned payment drafts: a customer may
// pay at the gateway and never come back to verify, or walk away without
// paying. The worker settles the former and expires the latter after the
// TTL, so no draft lingers forever.
type ReconciliationWorker struct {
	drafts     repo.DraftRepo
	gateway    gateway.PaymentGateway
	settler    Settler
	interval   time.Duration
	sweepAfter time.Duration
	ttl        time.Duration
}

func NewReconciliationWorker(drafts repo.DraftRepo, gw gateway.PaymentGateway, settler Settler, interval, sweepAfter, ttl time.Duration) *ReconciliationWorker {
	return &ReconciliationWorker{
		drafts:     drafts,
		gateway:    gw,
		settler:    settler,
		interval:   interval,
		sweepAfter: sweepAfter,
		ttl:        ttl,
	}
}

func (w *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Println("Payment reconciliation worker started.")

	for {
		select {
		case <-ctx.Done():
			log.Println("Payment reconciliation worker stopped.")
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				log.Printf("Reconciliation sweep failed: %v", err)
			}
		}
	}
}

// Sweep processes one batch of drafts that have gone unverified longer
// than sweepAfter.
func (w *ReconciliationWorker) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-w.sweepAfter)
	drafts, err := w.drafts.ListPendingBefore(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return err
	}

	for _, draft := range drafts {
		state, err := w.gateway.GetStatus(ctx, draft.TransactionID)
		if err != nil {
			log.Printf("Failed to check status for draft %s: %v", draft.TransactionID, err)
			continue
		}

		switch {
		case state == gateway.StateCompleted:
			// The customer paid but never verified; settle for them.
			if _, err := w.settler.SettleDraft(ctx, &draft); err != nil {
				log.Printf("Failed to settle draft %s: %v", draft.TransactionID, err)
			} else {
				log.Printf("Settled abandoned paid draft %s.", draft.TransactionID)
			}
		case state == gateway.StateFailed:
			if err := w.drafts.DeleteByTransactionID(ctx, draft.TransactionID); err != nil {
				log.Printf("Failed to discard failed draft %s: %v", draft.TransactionID, err)
			}
		case time.Since(draft.CreatedAt) > w.ttl:
			// Still pending past the TTL: the customer abandoned it.
			if err := w.drafts.DeleteByTransactionID(ctx, draft.TransactionID); err != nil {
				log.Printf("Failed to expire draft %s: %v", draft.TransactionID, err)
			} else {
				log.Printf("Expired abandoned draft %s.", draft.TransactionID)
			}
		}
	}
	return nil
}

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viratcollections/virat-api/gateway"
	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
)

type stubDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]*models.PaymentDraft
}

func newStubDraftRepo() *stubDraftRepo {
	return &stubDraftRepo{drafts: make(map[string]*models.PaymentDraft)}
}

func (r *stubDraftRepo) add(transactionID string, age time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft := &models.PaymentDraft{TransactionID: transactionID, UserID: 1, Amount: 1050}
	draft.CreatedAt = time.Now().Add(-age)
	r.drafts[transactionID] = draft
}

func (r *stubDraftRepo) has(transactionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.drafts[transactionID]
	return ok
}

func (r *stubDraftRepo) Create(ctx context.Context, draft *models.PaymentDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *draft
	r.drafts[draft.TransactionID] = &stored
	return nil
}

func (r *stubDraftRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[transactionID]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (r *stubDraftRepo) Consume(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[transactionID]
	if !ok || draft.Consumed {
		return false, nil
	}
	draft.Consumed = true
	return true, nil
}

func (r *stubDraftRepo) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.PaymentDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var drafts []models.PaymentDraft
	for _, draft := range r.drafts {
		if !draft.Consumed && draft.CreatedAt.Before(cutoff) {
			drafts = append(drafts, *draft)
			if len(drafts) == limit {
				break
			}
		}
	}
	return drafts, nil
}

func (r *stubDraftRepo) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, transactionID)
	return nil
}

type stubGateway struct {
	states    map[string]gateway.PaymentState
	statusErr error
}

func (g *stubGateway) CreatePayment(ctx context.Context, amount int64, transactionID string, userID uint) (string, error) {
	return "https://gateway.test/pay/" + transactionID, nil
}

func (g *stubGateway) GetStatus(ctx context.Context, transactionID string) (gateway.PaymentState, error) {
	if g.statusErr != nil {
		return "", g.statusErr
	}
	state, ok := g.states[transactionID]
	if !ok {
		return gateway.StatePending, nil
	}
	return state, nil
}

type stubSettler struct {
	mu      sync.Mutex
	settled []string
	err     error
}

func (s *stubSettler) SettleDraft(ctx context.Context, draft *models.PaymentDraft) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.settled = append(s.settled, draft.TransactionID)
	return &models.Order{TransactionID: draft.TransactionID}, nil
}

func newSweepFixture() (*stubDraftRepo, *stubGateway, *stubSettler, *ReconciliationWorker) {
	drafts := newStubDraftRepo()
	gw := &stubGateway{states: make(map[string]gateway.PaymentState)}
	settler := &stubSettler{}
	worker := NewReconciliationWorker(drafts, gw, settler, time.Minute, 15*time.Minute, 24*time.Hour)
	return drafts, gw, settler, worker
}

func TestSweepSettlesAbandonedPaidDraft(t *testing.T) {
	drafts, gw, settler, worker := newSweepFixture()
	drafts.add("TXN-paid", time.Hour)
	gw.states["TXN-paid"] = gateway.StateCompleted

	require.NoError(t, worker.Sweep(context.Background()))
	assert.Equal(t, []string{"TXN-paid"}, settler.settled)
}

func TestSweepDiscardsFailedDraft(t *testing.T) {
	drafts, gw, settler, worker := newSweepFixture()
	drafts.add("TXN-failed", time.Hour)
	gw.states["TXN-failed"] = gateway.StateFailed

	require.NoError(t, worker.Sweep(context.Background()))
	assert.False(t, drafts.has("TXN-failed"))
	assert.Empty(t, settler.settled)
}

func TestSweepExpiresPendingPastTTL(t *testing.T) {
	drafts, _, settler, worker := newSweepFixture()
	drafts.add("TXN-stale", 25*time.Hour)

	require.NoError(t, worker.Sweep(context.Background()))
	assert.False(t, drafts.has("TXN-stale"))
	assert.Empty(t, settler.settled)
}

func TestSweepKeepsPendingWithinTTL(t *testing.T) {
	drafts, _, settler, worker := newSweepFixture()
	drafts.add("TXN-recent", time.Hour)

	require.NoError(t, worker.Sweep(context.Background()))
	assert.True(t, drafts.has("TXN-recent"))
	assert.Empty(t, settler.settled)
}

func TestSweepSkipsFreshDrafts(t *testing.T) {
	drafts, gw, settler, worker := newSweepFixture()
	// Fresher than sweepAfter: the customer may still be at the gateway.
	drafts.add("TXN-fresh", time.Minute)
	gw.states["TXN-fresh"] = gateway.StateCompleted

	require.NoError(t, worker.Sweep(context.Background()))
	assert.True(t, drafts.has("TXN-fresh"))
	assert.Empty(t, settler.settled)
}

func TestSweepContinuesPastStatusErrors(t *testing.T) {
	drafts, gw, settler, worker := newSweepFixture()
	drafts.add("TXN-unreachable", time.Hour)
	gw.statusErr = errors.New("gateway timeout")

	// Status failures are logged and skipped, never fatal to the sweep.
	require.NoError(t, worker.Sweep(context.Background()))
	assert.True(t, drafts.has("TXN-unreachable"))
	assert.Empty(t, settler.settled)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	_, _, _, worker := newSweepFixture()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

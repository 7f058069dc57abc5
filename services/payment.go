package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/viratcollections/virat-api/gateway"
	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
	"gorm.io/gorm"
)

// PaymentService runs the external-gateway flow: it parks the would-be
// order in a server-side draft while the customer is redirected to the
// gateway, then converts the draft through the same finalize step as a
// COD checkout once the gateway confirms payment.
type PaymentService struct {
	db       TxRunner
	checkout *CheckoutService
	drafts   repo.DraftRepo
	orders   repo.OrderRepo
	carts    repo.CartRepo
	gateway  gateway.PaymentGateway
}

func NewPaymentService(db TxRunner, checkout *CheckoutService, drafts repo.DraftRepo, orders repo.OrderRepo, carts repo.CartRepo, gw gateway.PaymentGateway) *PaymentService {
	return &PaymentService{
		db:       db,
		checkout: checkout,
		drafts:   drafts,
		orders:   orders,
		carts:    carts,
		gateway:  gw,
	}
}

// Initiate snapshots the cart into a payment draft and asks the gateway
// for a redirect URL. The cart itself stays untouched until the payment
// is verified.
func (s *PaymentService) Initiate(ctx context.Context, userID uint, address models.Address) (redirectURL, transactionID string, err error) {
	items, amount, err := s.checkout.Snapshot(ctx, userID)
	if err != nil {
		return "", "", err
	}

	rawItems, err := json.Marshal(items)
	if err != nil {
		return "", "", wrap(KindStorage, "failed to encode draft items", err)
	}
	rawAddress, err := json.Marshal(address)
	if err != nil {
		return "", "", wrap(KindStorage, "failed to encode draft address", err)
	}

	transactionID = "TXN-" + uuid.NewString()
	draft := &models.PaymentDraft{
		TransactionID: transactionID,
		UserID:        userID,
		Items:         rawItems,
		Address:       rawAddress,
		Amount:        amount,
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return "", "", wrap(KindStorage, "failed to store payment draft", err)
	}

	redirectURL, err = s.gateway.CreatePayment(ctx, amount, transactionID, userID)
	if err != nil {
		if delErr := s.drafts.DeleteByTransactionID(ctx, transactionID); delErr != nil {
			log.Printf("failed to discard draft %s after gateway error: %v", transactionID, delErr)
		}
		return "", "", wrap(KindUpstream, "payment gateway rejected the request", err)
	}
	return redirectURL, transactionID, nil
}

// Verify asks the gateway for the transaction's state and, on confirmed
// success, converts the draft into a real order. Verifying an already
// converted transaction returns the existing order instead of creating a
// second one.
func (s *PaymentService) Verify(ctx context.Context, userID uint, transactionID string) (*models.Order, error) {
	draft, err := s.drafts.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to look up payment draft", err)
	}
	if draft == nil {
		return nil, NewError(KindNotFound, "unknown transaction")
	}
	if draft.UserID != userID {
		return nil, NewError(KindAuthorization, "transaction belongs to another user")
	}
	if draft.Consumed {
		return s.existingOrder(ctx, transactionID)
	}

	state, err := s.gateway.GetStatus(ctx, transactionID)
	if err != nil {
		// One bounded retry before surfacing the upstream failure.
		state, err = s.gateway.GetStatus(ctx, transactionID)
	}
	if err != nil {
		return nil, wrap(KindUpstream, "failed to check payment status", err)
	}
	if state != gateway.StateCompleted {
		return nil, ErrPaymentNotCompleted
	}

	return s.SettleDraft(ctx, draft)
}

// SettleDraft converts a draft whose payment is known to have completed.
// The consume guard makes settlement exactly-once: the loser of a double
// submission gets the winner's order back.
func (s *PaymentService) SettleDraft(ctx context.Context, draft *models.PaymentDraft) (*models.Order, error) {
	var items []models.OrderItem
	if err := json.Unmarshal(draft.Items, &items); err != nil {
		return nil, wrap(KindStorage, "corrupt draft items", err)
	}
	var address models.Address
	if err := json.Unmarshal(draft.Address, &address); err != nil {
		return nil, wrap(KindStorage, "corrupt draft address", err)
	}

	order := &models.Order{
		UserID:        draft.UserID,
		Items:         items,
		Address:       address,
		Amount:        draft.Amount,
		PaymentMethod: models.PaymentPhonePe,
		Payment:       true,
		Status:        models.StatusOrderPlaced,
		TransactionID: draft.TransactionID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		won, err := s.drafts.Consume(ctx, tx, draft.TransactionID)
		if err != nil {
			return err
		}
		if !won {
			return ErrAlreadyProcessed
		}
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}
		// Only the lines captured in the draft are removed: settlement
		// may run long after initiation (the reconciliation sweep), and
		// anything the customer added since belongs to their next order.
		return s.carts.RemoveLines(ctx, tx, draft.UserID, items)
	})
	if errors.Is(err, ErrAlreadyProcessed) {
		return s.existingOrder(ctx, draft.TransactionID)
	}
	if err != nil {
		return nil, wrap(KindStorage, "failed to settle payment", err)
	}
	return order, nil
}

func (s *PaymentService) existingOrder(ctx context.Context, transactionID string) (*models.Order, error) {
	order, err := s.orders.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to look up settled order", err)
	}
	if order == nil {
		return nil, ErrAlreadyProcessed
	}
	return order, nil
}

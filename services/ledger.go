package services

import (
	"context"

	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
)

// statusTransitions is the allow-list of status edges. Delivered and
// Cancelled are terminal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusOrderPlaced:    {models.StatusPacking, models.StatusCancelled},
	models.StatusPacking:        {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:        {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validStatus(status models.OrderStatus) bool {
	switch status {
	case models.StatusOrderPlaced, models.StatusPacking, models.StatusShipped,
		models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}

// LedgerService is the append-mostly collection of placed orders. Order
// cores are immutable after creation; only status and payment move.
type LedgerService struct {
	orders repo.OrderRepo
}

func NewLedgerService(orders repo.OrderRepo) *LedgerService {
	return &LedgerService{orders: orders}
}

func (s *LedgerService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to fetch order", err)
	}
	if order == nil {
		return nil, NewError(KindNotFound, "order not found")
	}
	return order, nil
}

func (s *LedgerService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to fetch orders", err)
	}
	return orders, nil
}

// ListAll pages through the full ledger, most recent first, and returns
// the total alongside the page.
func (s *LedgerService) ListAll(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	total, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, 0, wrap(KindStorage, "failed to count orders", err)
	}
	orders, err := s.orders.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, wrap(KindStorage, "failed to fetch orders", err)
	}
	return orders, total, nil
}

// SetStatus moves an order along the allow-listed status edges. A write
// off the table fails with a conflict and leaves the order untouched.
func (s *LedgerService) SetStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	if !validStatus(status) {
		return NewError(KindValidation, "unknown order status")
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !canTransition(order.Status, status) {
		return NewError(KindConflict, "order cannot move from "+string(order.Status)+" to "+string(status))
	}
	// The write is guarded on the status we validated against, so a
	// concurrent transition makes the stale writer lose instead of
	// persisting a forbidden edge.
	moved, err := s.orders.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return wrap(KindStorage, "failed to update order status", err)
	}
	if !moved {
		return NewError(KindConflict, "order status changed concurrently")
	}
	return nil
}

// Cancel is the user-facing cancellation: only the order's owner, and
// only while the order is still at "Order Placed".
func (s *LedgerService) Cancel(ctx context.Context, userID, orderID uint) error {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return NewError(KindAuthorization, "order belongs to another user")
	}
	if order.Status != models.StatusOrderPlaced {
		return NewError(KindConflict, "order is already being processed or delivered")
	}
	cancelled, err := s.orders.UpdateStatus(ctx, orderID, models.StatusOrderPlaced, models.StatusCancelled)
	if err != nil {
		return wrap(KindStorage, "failed to cancel order", err)
	}
	if !cancelled {
		return NewError(KindConflict, "order is already being processed or delivered")
	}
	return nil
}

// Delete hard-removes an order. Admin only; there is no soft delete.
func (s *LedgerService) Delete(ctx context.Context, orderID uint) error {
	rows, err := s.orders.Delete(ctx, orderID)
	if err != nil {
		return wrap(KindStorage, "failed to delete order", err)
	}
	if rows == 0 {
		return NewError(KindNotFound, "order not found")
	}
	return nil
}

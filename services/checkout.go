package services

import (
	"context"
	"strconv"

	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
	"gorm.io/gorm"
)

const (
	// DeliveryFee is charged unless the subtotal reaches the free
	// delivery threshold. Both are in the smallest currency unit.
	DeliveryFee           int64 = 50
	FreeDeliveryThreshold int64 = 1999
)

// CheckoutService converts a cart into an order: it re-validates every
// line against the live catalog, snapshots prices, computes the total
// server-side and commits the order together with the cart clear. The
// client-submitted amount is never read.
type CheckoutService struct {
	db      TxRunner
	catalog *CatalogService
	carts   repo.CartRepo
	orders  repo.OrderRepo
}

func NewCheckoutService(db TxRunner, catalog *CatalogService, carts repo.CartRepo, orders repo.OrderRepo) *CheckoutService {
	return &CheckoutService{db: db, catalog: catalog, carts: carts, orders: orders}
}

// PlaceOrder places a cash-on-delivery order. Gateway-paid orders go
// through PaymentService, which funnels into the same Finalize step.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, address models.Address, method models.PaymentMethod) (*models.Order, error) {
	if method != models.PaymentCOD {
		return nil, NewError(KindValidation, "only COD orders are placed directly; use payment initiation for gateway payments")
	}

	items, amount, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		Items:         items,
		Address:       address,
		Amount:        amount,
		PaymentMethod: models.PaymentCOD,
		Payment:       false,
		Status:        models.StatusOrderPlaced,
	}
	if err := s.Finalize(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Snapshot reads the caller's cart and freezes it into order lines with
// the current catalog prices, plus the computed total. All-or-nothing: a
// single unavailable line fails the whole snapshot.
func (s *CheckoutService) Snapshot(ctx context.Context, userID uint) ([]models.OrderItem, int64, error) {
	lines, err := s.carts.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, 0, wrap(KindStorage, "failed to read cart", err)
	}

	var items []models.OrderItem
	var subtotal int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		product, err := s.catalog.find(ctx, line.ProductID)
		if err != nil {
			return nil, 0, err
		}
		if product == nil {
			return nil, 0, ProductUnavailable("#" + strconv.FormatUint(uint64(line.ProductID), 10))
		}
		if !product.InStock || !product.HasSize(line.Size) {
			return nil, 0, ProductUnavailable(product.Name)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Size:      line.Size,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		subtotal += product.Price * int64(line.Quantity)
	}

	if len(items) == 0 {
		return nil, 0, ErrEmptyCart
	}

	amount := subtotal
	if subtotal < FreeDeliveryThreshold {
		amount += DeliveryFee
	}
	return items, amount, nil
}

// Finalize writes the order and clears the owner's cart as one
// transaction, so a placed order can never leave behind a cart that
// could be checked out again.
func (s *CheckoutService) Finalize(ctx context.Context, order *models.Order) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}
		return s.carts.ClearUser(ctx, tx, order.UserID)
	})
	if err != nil {
		return wrap(KindStorage, "failed to place order", err)
	}
	return nil
}

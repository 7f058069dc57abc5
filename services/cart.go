package services

import (
	"context"

	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
)

// CartService owns the per-user (productId, size) -> quantity mapping.
// It deliberately does not validate lines against the catalog: a cart may
// hold entries for products that were since removed or pulled from stock,
// and checkout re-validates every line at purchase time.
type CartService struct {
	carts repo.CartRepo
}

func NewCartService(carts repo.CartRepo) *CartService {
	return &CartService{carts: carts}
}

// Add increments the quantity for (productID, size) by one, starting at
// one for a new line. The increment happens at the storage layer so
// concurrent adds from multiple tabs never lose an update.
func (s *CartService) Add(ctx context.Context, userID, productID uint, size string) error {
	if size == "" {
		return NewError(KindValidation, "size is required")
	}
	if err := s.carts.IncrementItem(ctx, userID, productID, size); err != nil {
		return wrap(KindStorage, "failed to add item to cart", err)
	}
	return nil
}

// SetQuantity writes an absolute quantity. Zero removes the line, and the
// repository's row-per-line layout means an emptied product can never
// linger as an orphan container.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, size string, quantity int) error {
	if size == "" {
		return NewError(KindValidation, "size is required")
	}
	if quantity < 0 {
		return NewError(KindValidation, "quantity cannot be negative")
	}
	if err := s.carts.SetItemQuantity(ctx, userID, productID, size, quantity); err != nil {
		return wrap(KindStorage, "failed to update cart", err)
	}
	return nil
}

// Get returns the cart as productId -> size -> quantity. A user with no
// cart activity gets an empty mapping, never an error.
func (s *CartService) Get(ctx context.Context, userID uint) (models.CartData, error) {
	items, err := s.carts.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to fetch cart", err)
	}

	data := models.CartData{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if data[item.ProductID] == nil {
			data[item.ProductID] = map[string]int{}
		}
		data[item.ProductID][item.Size] = item.Quantity
	}
	return data, nil
}

// Clear empties the cart. Idempotent.
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.carts.ClearUser(ctx, nil, userID); err != nil {
		return wrap(KindStorage, "failed to clear cart", err)
	}
	return nil
}

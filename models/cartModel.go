package models

import "gorm.io/gorm"

// CartItem is one (user, product, size) line. Quantity is always > 0;
// a quantity reaching zero deletes the row instead of persisting it.
type CartItem struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"uniqueIndex:idx_cart_user_product_size"`
	ProductID uint   `json:"productId" gorm:"uniqueIndex:idx_cart_user_product_size"`
	Size      string `json:"size" gorm:"size:32;uniqueIndex:idx_cart_user_product_size"`
	Quantity  int    `json:"quantity"`
}

// CartData is the wire shape of a user's cart: productId -> size -> quantity.
type CartData map[uint]map[string]int

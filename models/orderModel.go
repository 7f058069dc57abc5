package models

import "gorm.io/gorm"

type OrderStatus string

const (
	StatusOrderPlaced    OrderStatus = "Order Placed"
	StatusPacking        OrderStatus = "Packing"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPhonePe PaymentMethod = "PhonePe"
)

type Address struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Order is an immutable snapshot of a checkout; only Status and Payment
// change after creation. Amount is in the smallest currency unit and is
// always computed server-side.
type Order struct {
	gorm.Model
	UserID        uint          `json:"userId" gorm:"index"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Address       Address       `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"size:20"`
	Payment       bool          `json:"payment"`
	Status        OrderStatus   `json:"status" gorm:"size:32"`
	TransactionID string        `json:"transactionId,omitempty" gorm:"index"`
}

// OrderItem freezes the product attributes at purchase time so later
// catalog edits never drift a placed order.
type OrderItem struct {
	gorm.Model
	OrderID   uint   `json:"orderId"`
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

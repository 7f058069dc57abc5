package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentDraft holds the would-be order between the gateway redirect and
// the verification callback. It lives server-side, keyed by the merchant
// transaction id, and is consumed exactly once on confirmed payment.
type PaymentDraft struct {
	gorm.Model
	TransactionID string         `json:"transactionId" gorm:"uniqueIndex;size:64"`
	UserID        uint           `json:"userId" gorm:"index"`
	Items         datatypes.JSON `json:"items"`
	Address       datatypes.JSON `json:"address"`
	Amount        int64          `json:"amount"`
	Consumed      bool           `json:"consumed"`
}

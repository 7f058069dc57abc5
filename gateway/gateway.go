package gateway

import "context"

type PaymentState string

const (
	StatePending   PaymentState = "PENDING"
	StateCompleted PaymentState = "COMPLETED"
	StateFailed    PaymentState = "FAILED"
)

// PaymentGateway is the external payment collaborator. Amounts are in the
// smallest currency unit. Both calls are bounded by the client timeout.
type PaymentGateway interface {
	// CreatePayment registers the transaction with the gateway and returns
	// the URL the customer is redirected to for payment.
	CreatePayment(ctx context.Context, amount int64, transactionID string, userID uint) (string, error)
	// GetStatus reports the terminal or in-flight state of a transaction.
	GetStatus(ctx context.Context, transactionID string) (PaymentState, error)
}

package consts

// Canonical payment statuses. Gateway statuses outside this set are stored
// as-is (the gateway does not publish an exhaustive status list).
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusPaid      = "paid"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusUnknown   = "unknown"
)

// IsSettled reports whether a status marks the payment as settled.
func IsSettled(status string) bool {
	return status == PaymentStatusCompleted || status == PaymentStatusPaid
}

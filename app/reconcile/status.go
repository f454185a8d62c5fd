package reconcile

import (
	"time"

	"github.com/ordane/paygate/app/consts"
	"github.com/ordane/paygate/app/gateway"
	"github.com/ordane/paygate/app/models"
)

// ResolveStatus maps a matched feed entry to the system's canonical status.
// Field precedence and the "unknown" default live in the gateway alias
// tables; unrecognized status strings pass through as opaque values.
func ResolveStatus(entry gateway.Entry) string {
	return entry.Status()
}

// ApplyStatus is the pure state-transition step: it returns the record with
// the new status applied, without touching storage.
//
// Transition rules:
//   - settling into completed/paid stamps paidAt once; re-applying the same
//     settled status later leaves paidAt untouched
//   - a settled record is never demoted back to pending
//   - refunded is accepted from any prior state (matches the refund
//     endpoint's historical behavior)
//   - anything else is stored verbatim
func ApplyStatus(payment *models.Payment, status string, now time.Time) *models.Payment {
	if status == consts.PaymentStatusPending && consts.IsSettled(payment.Status) {
		return payment
	}

	payment.Status = status

	if consts.IsSettled(status) && !payment.PaidAt.Valid {
		payment.PaidAt.Time = now
		payment.PaidAt.Valid = true
	}

	return payment
}

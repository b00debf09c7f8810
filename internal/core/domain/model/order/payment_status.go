package order

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order independently of its
// fulfillment status. An order can be cancelled while paid (leading to a
// refund) or shipped while the payment is still pending (cash on delivery).
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no successful charge has been recorded yet.
	PaymentPending

	// PaymentPaid means the charge succeeded.
	PaymentPaid

	// PaymentFailed means the charge was attempted and declined.
	PaymentFailed

	// PaymentRefunded means a previously captured charge was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "Unknown",
		PaymentPending:  "Pending",
		PaymentPaid:     "Paid",
		PaymentFailed:   "Failed",
		PaymentRefunded: "Refunded",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:  "Pending",
		PaymentPaid:     "Paid",
		PaymentFailed:   "Failed",
		PaymentRefunded: "Refunded",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", int(s)),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

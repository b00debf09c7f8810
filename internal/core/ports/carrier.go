package ports

import "context"

// CarrierOutcome classifies the shipping carrier's response to a cancellation.
type CarrierOutcome int

const (
	// OutcomeUnknown represents an unclassified carrier response.
	OutcomeUnknown CarrierOutcome = iota

	// OutcomeCancelled means the carrier accepted the cancellation.
	OutcomeCancelled

	// OutcomeAlreadyCancelled means the carrier had already cancelled the
	// shipment, typically through another channel. Callers treat this as
	// success (idempotent semantics).
	OutcomeAlreadyCancelled

	// OutcomeError means the cancellation did not reach the carrier or was
	// rejected. Never fatal to the caller: internal order state has already
	// committed and a reconciliation job re-drives the call.
	OutcomeError
)

// String returns the human-readable name of the outcome.
func (o CarrierOutcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeAlreadyCancelled:
		return "already_cancelled"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether the carrier side is consistent with an internal
// cancellation (either it cancelled now or it already had).
func (o CarrierOutcome) IsSuccess() bool {
	return o == OutcomeCancelled || o == OutcomeAlreadyCancelled
}

// CarrierClient is the outbound contract to the external shipping carrier.
//
// Implementations must use a bounded timeout and must never be invoked while
// holding a lock on the order or the inventory store: the call happens after
// the internal transition has committed.
type CarrierClient interface {
	// CancelShipment asks the carrier to cancel the shipment identified by
	// trackingCode, attaching a free-text note. The outcome classifies the
	// raw carrier response; err carries transport/protocol detail and is
	// non-nil only when outcome is OutcomeError.
	CancelShipment(ctx context.Context, trackingCode string, note string) (CarrierOutcome, error)
}

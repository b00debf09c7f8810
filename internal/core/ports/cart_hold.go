package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
)

// CartHoldStore tracks advisory, session-scoped soft holds against
// (variant, branch) stock cells. Holds exist only to give a session early
// "available to add" feedback before the authoritative reservation runs at
// order placement. They carry no lock, never block other sessions, and expire
// on their own.
type CartHoldStore interface {
	// Hold adds quantity to the session's soft hold on a cell and refreshes
	// its expiry. Returns the session's total held quantity for the cell.
	Hold(ctx context.Context, sessionID string, variantID kernel.UUID, branchID kernel.UUID, quantity int) (int, error)

	// Held returns the session's currently held quantity for a cell,
	// zero when no hold exists or it has expired.
	Held(ctx context.Context, sessionID string, variantID kernel.UUID, branchID kernel.UUID) (int, error)

	// Release drops the session's hold on a cell.
	Release(ctx context.Context, sessionID string, variantID kernel.UUID, branchID kernel.UUID) error
}

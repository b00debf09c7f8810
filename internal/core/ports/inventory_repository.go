package ports

import (
	"context"

	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the branch inventory
// store. The store is the single source of truth for stock: every mutation of a
// (variant, branch) cell is an atomic read-modify-write, so concurrent
// reservations of the last unit can never both succeed.
type InventoryRepository interface {
	// GetVariant retrieves a variant with its per-branch stock cells.
	GetVariant(ctx context.Context, id kernel.UUID) (*inventory.Variant, error)

	// ReserveStock atomically decrements one stock cell by quantity, guarded by
	// available >= quantity. Returns *inventory.InsufficientStockError when the
	// guard fails; the cell is left untouched in that case. This is the
	// authoritative stock commitment, performed at order placement.
	ReserveStock(ctx context.Context, variantID kernel.UUID, branchID kernel.UUID, quantity int) error

	// RestoreStock atomically increments one stock cell by quantity.
	// Safe to call concurrently with ReserveStock against the same cell.
	RestoreStock(ctx context.Context, variantID kernel.UUID, branchID kernel.UUID, quantity int) error
}

package services

import (
	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
)

// BranchAllocator is a domain service responsible for deciding which branch
// fulfills a requested variant quantity.
//
// Key responsibilities:
//   - Validating the variant before allocation
//   - Selecting the fulfilling branch deterministically
//   - Never splitting one quantity across branches
//
// Business rules:
//   - Only branches able to cover the whole quantity qualify
//   - Among qualifying branches, the one with the greatest availability wins
//   - Ties break to the lowest branch identifier
//
// The allocator only decides; the authoritative decrement is a separate,
// atomic operation against the inventory store, so a decision made on a stale
// snapshot can still fail there without overselling.
//
// Example usage:
//
//	allocator := services.NewBranchAllocator()
//	branchID, err := allocator.Allocate(variant, 4)
//	if errors.Is(err, inventory.ErrInsufficientStock) {
//	    // No single branch can fulfill the quantity
//	    return
//	}
type BranchAllocator struct{}

// NewBranchAllocator creates a new BranchAllocator instance.
func NewBranchAllocator() BranchAllocator {
	return BranchAllocator{}
}

// Allocate picks the branch that fulfills the requested quantity of a variant.
//
// Returns:
//   - the chosen branch identifier on success
//   - *inventory.InsufficientStockError when no single branch can cover the
//     quantity, even if the sum across branches would suffice
func (a BranchAllocator) Allocate(variant *inventory.Variant, quantity int) (kernel.UUID, error) {
	if err := variant.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	return variant.SelectBranch(quantity)
}

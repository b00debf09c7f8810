// Package inventory provides the Variant aggregate: a purchasable product
// configuration with branch-partitioned stock.
//
// The package includes:
//   - Variant: aggregate root with per-branch availability and selection rules
//   - BranchStock: one (variant, branch) stock cell
//   - InsufficientStockError: typed failure for unfulfillable reservations
//
// Key business rules:
//   - availability is never negative
//   - a reservation draws from exactly one branch; quantities are never split
//   - branch selection is deterministic: greatest availability, ties to the
//     lowest branch identifier
//
// The aggregate is a read model for allocation decisions. The authoritative,
// concurrency-safe decrement is performed by the inventory store with an
// atomic conditional update per cell.
package inventory

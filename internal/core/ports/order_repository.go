package ports

import (
	"context"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"shop/internal/pkg/errs"
)

// ErrConcurrentModification is returned when an order update carries a version
// that no longer matches the stored record. Exactly one of two racing writers
// commits; the loser must re-read and may retry.
var ErrConcurrentModification = fmt.Errorf(
	"concurrent modification: %w", errs.ErrVersionIsInvalid,
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities,
// with optimistic concurrency on updates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, guarded by the
	// expected pre-mutation version. Returns ErrConcurrentModification when
	// the stored version differs from expectedVersion.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with line items and carrier state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders that have not reached a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllAwaitingCarrierSync retrieves cancelled orders whose carrier-side
	// cancellation has not been acknowledged yet.
	GetAllAwaitingCarrierSync(ctx context.Context) ([]*order.Order, error)
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
)

// ErrCarrierSyncFailed wraps a carrier cancellation that did not go through.
// It is only ever attached to an otherwise successful result as a warning;
// the internal transition has already committed when the carrier is called.
var ErrCarrierSyncFailed = errors.New("carrier sync failed")

// ChangeOrderStatusResult is the outcome of a successful status change.
// CarrierWarning is non-nil when the internal transition committed but the
// shipping carrier could not be notified; the caller's request still succeeded.
type ChangeOrderStatusResult struct {
	Order          *order.Order
	CarrierWarning error
}

// ChangeOrderStatusCommandHandler executes order status transitions.
//
// The whole internal effect of a transition commits atomically in one unit of
// work: status update, stock restoration (for cancellations and returns,
// guarded by the order's at-most-once marker) and version bump. A stale
// version loses the optimistic-concurrency check and is retried once against
// a fresh read before the conflict is surfaced.
//
// The shipping carrier is contacted only after the commit, with no lock held:
// internal state is the source of truth and the carrier is eventually
// consistent with it. A carrier failure flags the order for reconciliation
// and is reported as a warning, never as a request failure.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierClient
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// Requires a UoWFactory spanning orders and inventory, and the carrier client.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory, carrier ports.CarrierClient) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
	}
}

// Handle processes the status change command.
//
// Returns the updated order on success, possibly with a CarrierWarning.
// Error kinds surfaced to the caller:
//   - *order.InvalidTransitionError: the edge is not in the status graph
//   - order.ErrReasonIsRequired: cancel/return without a reason
//   - ports.ErrConcurrentModification: lost the version race twice
//   - errs.ObjectNotFoundError: unknown order
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	updated, err := h.transition(ctx, cmd)
	if errors.Is(err, ports.ErrConcurrentModification) {
		// One transparent retry against a fresh read, then give up.
		updated, err = h.transition(ctx, cmd)
	}
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	result := ChangeOrderStatusResult{Order: updated}

	if cmd.TargetStatus() == order.Cancelled && updated.TrackingCode() != nil {
		result.CarrierWarning = h.cancelShipment(ctx, updated)
	}

	return result, nil
}

// transition performs one atomic attempt: read, mutate, version-checked write.
func (h *ChangeOrderStatusCommandHandler) transition(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expectedVersion := aggregate.Version()

	if err = aggregate.TransitionTo(cmd.TargetStatus(), cmd.Reason()); err != nil {
		return nil, err
	}

	if cmd.TargetStatus().RestoresStock() && aggregate.MarkStockRestored() {
		for _, item := range aggregate.Items() {
			if err = uow.InventoryRepository().RestoreStock(
				ctx, item.VariantID(), item.BranchID(), item.Quantity(),
			); err != nil {
				return nil, err
			}
		}
	}

	// A cancellation with a shipment is flagged for carrier reconciliation in
	// the same commit; the flag is cleared once the carrier acknowledges.
	if cmd.TargetStatus() == order.Cancelled && aggregate.TrackingCode() != nil {
		aggregate.MarkCarrierSyncPending()
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// cancelShipment notifies the carrier after the internal commit and clears the
// reconciliation flag on acknowledgement. Returns a warning on failure.
func (h *ChangeOrderStatusCommandHandler) cancelShipment(ctx context.Context, aggregate *order.Order) error {
	outcome, err := h.carrier.CancelShipment(ctx, *aggregate.TrackingCode(), aggregate.StatusReason())
	if outcome.IsSuccess() {
		// Best effort: if clearing fails, the reconciliation job re-drives the
		// (idempotent) carrier cancel and clears the flag then.
		_ = h.markCarrierSynced(ctx, aggregate)
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrCarrierSyncFailed, err)
	}
	return fmt.Errorf("%w: outcome %s", ErrCarrierSyncFailed, outcome)
}

func (h *ChangeOrderStatusCommandHandler) markCarrierSynced(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	fresh, err := uow.OrderRepository().Get(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	expectedVersion := fresh.Version()
	fresh.MarkCarrierSynced()

	if err = uow.OrderRepository().Update(ctx, fresh, expectedVersion); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

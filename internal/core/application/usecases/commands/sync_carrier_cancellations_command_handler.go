package commands

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/ports"
)

// SyncCarrierCancellationsCommandHandler re-drives carrier cancellation for
// cancelled orders still flagged as awaiting carrier acknowledgement.
//
// The carrier treats a repeated cancel of the same shipment as
// already-cancelled, so re-driving is idempotent. Orders whose carrier call
// fails again simply stay flagged for the next pass; internal state is never
// touched by a carrier failure.
type SyncCarrierCancellationsCommandHandler struct {
	uowFactory OrderUoWFactory
	carrier    ports.CarrierClient
}

// NewSyncCarrierCancellationsCommandHandler creates a reconciliation handler.
func NewSyncCarrierCancellationsCommandHandler(
	uowFactory OrderUoWFactory,
	carrier ports.CarrierClient,
) SyncCarrierCancellationsCommandHandler {
	return SyncCarrierCancellationsCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
	}
}

// Handle performs one reconciliation pass.
// Returns ErrNoOrdersAwaitingSync when nothing was flagged; otherwise returns
// the joined carrier errors of the orders that still could not be synced
// (nil when every flagged order was acknowledged).
func (h *SyncCarrierCancellationsCommandHandler) Handle(ctx context.Context, cmd SyncCarrierCancellationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	pending, err := uow.OrderRepository().GetAllAwaitingCarrierSync(ctx)
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(pending) == 0 {
		return ErrNoOrdersAwaitingSync
	}

	var failures error
	for _, aggregate := range pending {
		if aggregate.TrackingCode() == nil {
			continue
		}

		outcome, carrierErr := h.carrier.CancelShipment(ctx, *aggregate.TrackingCode(), aggregate.StatusReason())
		if !outcome.IsSuccess() {
			failures = errors.Join(failures, carrierErr)
			continue
		}

		if ackErr := h.acknowledge(ctx, aggregate.ID()); ackErr != nil {
			failures = errors.Join(failures, ackErr)
		}
	}

	return failures
}

// acknowledge clears the reconciliation flag in its own short transaction,
// re-reading the order so the flag clear never clobbers a concurrent mutation.
func (h *SyncCarrierCancellationsCommandHandler) acknowledge(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !aggregate.CarrierSyncPending() {
		return nil
	}

	expectedVersion := aggregate.Version()
	aggregate.MarkCarrierSynced()

	if err = uow.OrderRepository().Update(ctx, aggregate, expectedVersion); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

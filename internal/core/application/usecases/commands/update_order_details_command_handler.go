package commands

import (
	"context"

	"shop/internal/core/domain/model/order"
)

// UpdateOrderDetailsCommandHandler applies administrative patches to an
// order's non-status fields. It shares the optimistic-concurrency discipline
// of status transitions, so a patch racing a transition loses cleanly instead
// of overwriting it.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDetailsCommandHandler creates a handler for order detail patches.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the patch command and returns the updated order.
// A shipping-address patch is rejected with order.ErrAddressIsLocked once the
// order is shipping or terminal.
func (h *UpdateOrderDetailsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderDetailsCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

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

	if cmd.Note() != nil {
		aggregate.ChangeNote(*cmd.Note())
	}

	if cmd.Address() != nil {
		if err = aggregate.ChangeShippingAddress(*cmd.Address()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

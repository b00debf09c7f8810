package commands

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
	"shop/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// For every requested item it allocates a fulfilling branch and performs the
// authoritative stock decrement; on any failure every already-committed
// reservation is rolled back with a compensating restore, and the whole
// operation fails naming the offending variant.
//
// The stock decrements are individual atomic cell operations against the
// inventory store (not part of the order transaction), so no lock is held
// across items; the order itself is persisted transactionally afterwards.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(inventoryRepo, allocator, uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, inventory.ErrInsufficientStock) {
//	    // no single branch could fulfill one of the requested quantities
//	}
type PlaceOrderCommandHandler struct {
	inventoryRepo ports.InventoryRepository
	allocator     services.BranchAllocator
	uowFactory    OrderUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires the (non-transactional) inventory repository for atomic stock
// operations and an OrderUoWFactory for persisting the order.
func NewPlaceOrderCommandHandler(
	inventoryRepo ports.InventoryRepository,
	allocator services.BranchAllocator,
	uowFactory OrderUoWFactory,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		inventoryRepo: inventoryRepo,
		allocator:     allocator,
		uowFactory:    uowFactory,
	}
}

// reservation records one committed stock decrement so it can be compensated.
type reservation struct {
	variantID kernel.UUID
	branchID  kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// Handle processes the order placement command.
//
// Sequence per item: load the variant, let the allocator choose a branch,
// atomically decrement that branch's cell. If allocation or decrement fails,
// all prior decrements are restored and the error is returned unchanged
// (an *inventory.InsufficientStockError names the offending variant).
//
// On success a Pending order is persisted with a line item per reserved
// (variant, branch, quantity), unit prices snapshotted from the catalog.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reserved := make([]reservation, 0, len(cmd.Items()))

	for _, spec := range cmd.Items() {
		variant, err := h.inventoryRepo.GetVariant(ctx, spec.VariantID)
		if err != nil {
			return nil, h.compensate(ctx, reserved, err)
		}

		branchID, err := h.allocator.Allocate(variant, spec.Quantity)
		if err != nil {
			return nil, h.compensate(ctx, reserved, err)
		}

		if err = h.inventoryRepo.ReserveStock(ctx, spec.VariantID, branchID, spec.Quantity); err != nil {
			return nil, h.compensate(ctx, reserved, err)
		}

		reserved = append(reserved, reservation{
			variantID: spec.VariantID,
			branchID:  branchID,
			quantity:  spec.Quantity,
			unitPrice: variant.Price(),
		})
	}

	items := make([]order.LineItem, 0, len(reserved))
	for _, r := range reserved {
		item, err := order.NewLineItem(r.variantID, r.branchID, r.quantity, r.unitPrice)
		if err != nil {
			return nil, h.compensate(ctx, reserved, err)
		}
		items = append(items, item)
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		items,
		cmd.Address(),
		cmd.Tax(),
		cmd.ShippingFee(),
		cmd.Discount(),
		cmd.Note(),
	)
	if err != nil {
		return nil, h.compensate(ctx, reserved, err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, h.compensate(ctx, reserved, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, h.compensate(ctx, reserved, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, h.compensate(ctx, reserved, err)
	}

	return placed, nil
}

// compensate restores every stock decrement committed so far and returns the
// original failure. Restore errors are joined onto it: a failed compensation
// must never be silent.
func (h *PlaceOrderCommandHandler) compensate(ctx context.Context, reserved []reservation, cause error) error {
	for _, r := range reserved {
		if err := h.inventoryRepo.RestoreStock(ctx, r.variantID, r.branchID, r.quantity); err != nil {
			cause = errors.Join(cause, err)
		}
	}
	return cause
}

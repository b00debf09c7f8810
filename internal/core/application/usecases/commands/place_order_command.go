package commands

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// OrderItemSpec is one requested line of a placement request:
// a variant and the desired quantity. The fulfilling branch is not part of the
// request; the allocator chooses it.
type OrderItemSpec struct {
	VariantID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a validated request to place a new order.
// Encapsulates the requested items, the shipping address snapshot and the
// externally computed charges (tax, shipping fee, voucher discount).
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, items, address, tax, fee, discount, "leave at door")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(inventoryRepo, uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	items       []OrderItemSpec
	address     kernel.Address
	tax         kernel.Money
	shippingFee kernel.Money
	discount    kernel.Money
	note        string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, at least one item is requested, every
// item has a valid variant and positive quantity, and the address is constructed.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	items []OrderItemSpec,
	address kernel.Address,
	tax kernel.Money,
	shippingFee kernel.Money,
	discount kernel.Money,
	note string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		tax:         tax,
		shippingFee: shippingFee,
		discount:    discount,
		note:        note,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setAddress(address),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the order to create.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the requested items.
func (c PlaceOrderCommand) Items() []OrderItemSpec {
	items := make([]OrderItemSpec, len(c.items))
	copy(items, c.items)
	return items
}

// Address returns the shipping address snapshot.
func (c PlaceOrderCommand) Address() kernel.Address {
	return c.address
}

// Tax returns the externally computed tax amount.
func (c PlaceOrderCommand) Tax() kernel.Money {
	return c.tax
}

// ShippingFee returns the externally computed shipping fee.
func (c PlaceOrderCommand) ShippingFee() kernel.Money {
	return c.shippingFee
}

// Discount returns the voucher discount amount.
func (c PlaceOrderCommand) Discount() kernel.Money {
	return c.discount
}

// Note returns the free-text order note.
func (c PlaceOrderCommand) Note() string {
	return c.note
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []OrderItemSpec) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.VariantID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			)
		}
	}

	c.items = make([]OrderItemSpec, len(items))
	copy(c.items, items)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
		"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
	)
	ErrNothingToUpdate = errors.New("at least one field must be patched")
)

// UpdateOrderDetailsCommand represents an administrative partial patch of an
// order's non-status fields: the note and/or the shipping address. Status is
// deliberately not patchable here; the state machine is the sole status mutator.
//
// Nil fields are left untouched.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	note    *string
	address *kernel.Address

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand creates a patch command.
// At least one of note/address must be provided; a provided address must be
// properly constructed.
func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID,
	note *string,
	address *kernel.Address,
) (UpdateOrderDetailsCommand, error) {
	cmd := UpdateOrderDetailsCommand{
		note:    note,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	if note == nil && address == nil {
		return UpdateOrderDetailsCommand{}, ErrNothingToUpdate
	}

	if address != nil {
		if err := address.Validate(); err != nil {
			return UpdateOrderDetailsCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to patch.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Note returns the replacement note, nil when the note is not patched.
func (c UpdateOrderDetailsCommand) Note() *string {
	return c.note
}

// Address returns the replacement shipping address, nil when not patched.
func (c UpdateOrderDetailsCommand) Address() *kernel.Address {
	return c.address
}

func (c *UpdateOrderDetailsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

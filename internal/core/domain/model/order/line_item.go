package order

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through the NewLineItem factory method.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a value object binding a purchased variant quantity to the single
// branch that fulfills it. The branch assignment is made exactly once, when the
// order is placed, and is immutable thereafter: restoring stock on cancellation
// must credit exactly the branch the quantity was drawn from.
//
// The unit price is a snapshot taken at order time, so catalog price changes
// never alter an existing order's totals.
type LineItem struct {
	variantID kernel.UUID
	branchID  kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item bound to a fulfilling branch.
// Variant and branch identifiers must be valid and quantity must be positive.
func NewLineItem(variantID kernel.UUID, branchID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setVariantID(variantID),
		item.setBranchID(branchID),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem was properly constructed through NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// VariantID returns the purchased variant's identifier.
func (i LineItem) VariantID() kernel.UUID {
	return i.variantID
}

// BranchID returns the identifier of the branch the quantity was drawn from.
func (i LineItem) BranchID() kernel.UUID {
	return i.branchID
}

// Quantity returns the purchased quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot taken at order time.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price multiplied by quantity.
func (i LineItem) Subtotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *LineItem) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	i.variantID = variantID
	return nil
}

func (i *LineItem) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	i.branchID = branchID
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

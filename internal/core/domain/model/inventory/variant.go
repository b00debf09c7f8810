package inventory

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrVariantIsNotConstructed is returned when a Variant instance was not created
	// through the NewVariant factory method.
	ErrVariantIsNotConstructed = errors.New("Variant must be created via NewVariant constructor")

	// ErrInsufficientStock is the sentinel for reservation requests no single
	// branch can fulfill. Use errors.Is to classify; the concrete error names
	// the variant.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateBranch is returned when a variant is constructed with two
	// stock cells for the same branch.
	ErrDuplicateBranch = errors.New("duplicate branch in variant stock")
)

// InsufficientStockError reports that no single branch holds enough stock of a
// variant to cover the requested quantity. Quantities are never split across
// branches, so the aggregate across branches is irrelevant.
type InsufficientStockError struct {
	VariantID kernel.UUID
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: variant %s, requested %d", e.VariantID, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// BranchStock is one stock cell: the available quantity of a variant at one branch.
type BranchStock struct {
	branchID  kernel.UUID
	available int
}

// NewBranchStock creates a stock cell. Availability must not be negative.
func NewBranchStock(branchID kernel.UUID, available int) (BranchStock, error) {
	if err := branchID.Validate(); err != nil {
		return BranchStock{}, err
	}
	if available < 0 {
		return BranchStock{}, errs.NewValueIsInvalidErrorWithCause(
			"available is invalid",
			fmt.Errorf("%d is negative", available),
		)
	}
	return BranchStock{branchID: branchID, available: available}, nil
}

// BranchID returns the branch identifier of the cell.
func (s BranchStock) BranchID() kernel.UUID {
	return s.branchID
}

// Available returns the available quantity at the branch.
func (s BranchStock) Available() int {
	return s.available
}

// Variant represents a purchasable product configuration together with its
// branch-partitioned stock. It is the read model the allocator works against;
// the authoritative, concurrency-safe decrement lives in the inventory store.
//
// Variant follows these invariants:
//   - Must have a valid unique identifier, non-empty SKU and name
//   - Every stock cell has a distinct branch and non-negative availability
//   - Can only be created through NewVariant
type Variant struct {
	id    kernel.UUID
	sku   string
	name  string
	price kernel.Money
	stock []BranchStock

	isConstructed bool
}

// NewVariant creates a Variant with validation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - sku: stock keeping unit (must not be empty)
//   - name: display name (must not be empty)
//   - price: current unit price
//   - stock: per-branch availability cells (branches must be distinct)
func NewVariant(id kernel.UUID, sku string, name string, price kernel.Money, stock []BranchStock) (*Variant, error) {
	variant := &Variant{
		price:         price,
		isConstructed: true,
	}

	if err := errors.Join(
		variant.setID(id),
		variant.setSKU(sku),
		variant.setName(name),
		variant.setStock(stock),
	); err != nil {
		return nil, err
	}

	return variant, nil
}

// Validate ensures the Variant instance was properly constructed through NewVariant.
func (v *Variant) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVariantIsNotConstructed
	}
	return nil
}

// ID returns the variant's unique identifier.
func (v *Variant) ID() kernel.UUID {
	return v.id
}

// SKU returns the variant's stock keeping unit.
func (v *Variant) SKU() string {
	return v.sku
}

// Name returns the variant's display name.
func (v *Variant) Name() string {
	return v.name
}

// Price returns the variant's current unit price.
func (v *Variant) Price() kernel.Money {
	return v.price
}

// Stock returns a copy of the per-branch stock cells.
func (v *Variant) Stock() []BranchStock {
	stock := make([]BranchStock, len(v.stock))
	copy(stock, v.stock)
	return stock
}

// Available returns the availability at one branch, zero when the branch
// holds no stock of this variant.
func (v *Variant) Available(branchID kernel.UUID) int {
	for _, cell := range v.stock {
		if cell.branchID.IsEqual(branchID) {
			return cell.available
		}
	}
	return 0
}

// TotalAvailable returns the availability summed across branches.
// Display only: reservations never draw from more than one branch.
func (v *Variant) TotalAvailable() int {
	total := 0
	for _, cell := range v.stock {
		total += cell.available
	}
	return total
}

// SelectBranch chooses the branch that fulfills the requested quantity.
//
// Selection rules:
//   - only branches with available >= quantity qualify; quantities are never
//     split across branches, even when the aggregate would suffice
//   - among qualifying branches the one with the greatest availability wins
//   - ties break to the lowest branch identifier, for determinism
//
// Returns *InsufficientStockError when no single branch qualifies.
func (v *Variant) SelectBranch(quantity int) (kernel.UUID, error) {
	if quantity <= 0 {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	var chosen *BranchStock
	for i := range v.stock {
		cell := &v.stock[i]
		if cell.available < quantity {
			continue
		}
		if chosen == nil ||
			cell.available > chosen.available ||
			(cell.available == chosen.available && cell.branchID.String() < chosen.branchID.String()) {
			chosen = cell
		}
	}

	if chosen == nil {
		return kernel.UUID{}, &InsufficientStockError{VariantID: v.id, Requested: quantity}
	}

	return chosen.branchID, nil
}

// Reserve decrements the availability of one branch cell.
// Fails with *InsufficientStockError when the branch cannot cover the quantity,
// so a cell can never go negative.
func (v *Variant) Reserve(branchID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	for i := range v.stock {
		if !v.stock[i].branchID.IsEqual(branchID) {
			continue
		}
		if v.stock[i].available < quantity {
			return &InsufficientStockError{VariantID: v.id, Requested: quantity}
		}
		v.stock[i].available -= quantity
		return nil
	}

	return errs.NewObjectNotFoundError("branch", branchID.String())
}

// Restore increments the availability of one branch cell.
func (v *Variant) Restore(branchID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	for i := range v.stock {
		if v.stock[i].branchID.IsEqual(branchID) {
			v.stock[i].available += quantity
			return nil
		}
	}

	return errs.NewObjectNotFoundError("branch", branchID.String())
}

func (v *Variant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Variant) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	v.sku = sku
	return nil
}

func (v *Variant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *Variant) setStock(stock []BranchStock) error {
	seen := make(map[kernel.UUID]struct{}, len(stock))
	for _, cell := range stock {
		if err := cell.branchID.Validate(); err != nil {
			return err
		}
		if _, ok := seen[cell.branchID]; ok {
			return ErrDuplicateBranch
		}
		seen[cell.branchID] = struct{}{}
	}

	v.stock = make([]BranchStock, len(stock))
	copy(v.stock, stock)
	return nil
}

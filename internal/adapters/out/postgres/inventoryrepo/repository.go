package inventoryrepo

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
//
// Reservation is a conditional single-statement decrement. The database's row
// lock serializes racing writers, so of two concurrent reservations of the
// last unit exactly one sees the availability guard hold.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add saves a new variant with its stock cells to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, variant *inventory.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := fromDomain(variant)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetVariant retrieves a variant with its per-branch stock cells.
func (r *GormInventoryRepository) GetVariant(ctx context.Context, id kernel.UUID) (*inventory.Variant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VariantDTO
	err := r.db.WithContext(ctx).Preload("Stock").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("variant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ReserveStock atomically decrements one stock cell, guarded by availability.
// Returns *inventory.InsufficientStockError when the branch does not hold
// enough stock; the cell is left untouched in that case.
func (r *GormInventoryRepository) ReserveStock(
	ctx context.Context,
	variantID kernel.UUID,
	branchID kernel.UUID,
	quantity int,
) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE branch_stocks
		SET available = available - ?
		WHERE variant_id = ? AND branch_id = ? AND available >= ?
	`, quantity, variantID.Bytes(), branchID.Bytes(), quantity)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return &inventory.InsufficientStockError{
			VariantID: variantID,
			Requested: quantity,
		}
	}

	return nil
}

// RestoreStock atomically increments one stock cell.
// Returns errs.ErrObjectNotFound when the cell does not exist; restoration
// must never silently invent stock cells.
func (r *GormInventoryRepository) RestoreStock(
	ctx context.Context,
	variantID kernel.UUID,
	branchID kernel.UUID,
	quantity int,
) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE branch_stocks
		SET available = available + ?
		WHERE variant_id = ? AND branch_id = ?
	`, quantity, variantID.Bytes(), branchID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch stock", variantID.String())
	}

	return nil
}

// Package inventoryrepo persists variants and their branch-partitioned stock.
// Stock mutations are single-row atomic updates so concurrent reservations of
// the last unit resolve in the database, not in application code.
package inventoryrepo

import (
	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// VariantDTO represents the database structure for persisting variants.
type VariantDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU   string    `gorm:"column:sku;uniqueIndex"`
	Name  string
	Price int64

	Stock []BranchStockDTO `gorm:"foreignKey:VariantID;references:ID"`
}

// TableName specifies the database table name for variant entities.
func (VariantDTO) TableName() string {
	return "variants"
}

// BranchStockDTO is one (variant, branch) stock cell.
type BranchStockDTO struct {
	VariantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Available int
}

// TableName specifies the database table name for stock cells.
func (BranchStockDTO) TableName() string {
	return "branch_stocks"
}

// fromDomain converts a variant domain aggregate to its database representation.
func fromDomain(variant *inventory.Variant) VariantDTO {
	stock := make([]BranchStockDTO, 0, len(variant.Stock()))
	for _, cell := range variant.Stock() {
		stock = append(stock, BranchStockDTO{
			VariantID: variant.ID().Bytes(),
			BranchID:  cell.BranchID().Bytes(),
			Available: cell.Available(),
		})
	}

	return VariantDTO{
		ID:    variant.ID().Bytes(),
		SKU:   variant.SKU(),
		Name:  variant.Name(),
		Price: variant.Price().Amount(),
		Stock: stock,
	}
}

// toDomain converts a database DTO to a variant domain aggregate.
func toDomain(dto VariantDTO) (*inventory.Variant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stock := make([]inventory.BranchStock, 0, len(dto.Stock))
	for _, cellDTO := range dto.Stock {
		branchID, cellErr := kernel.UUIDFromBytes(cellDTO.BranchID[:])
		if cellErr != nil {
			return nil, cellErr
		}

		cell, cellErr := inventory.NewBranchStock(branchID, cellDTO.Available)
		if cellErr != nil {
			return nil, cellErr
		}

		stock = append(stock, cell)
	}

	return inventory.NewVariant(id, dto.SKU, dto.Name, kernel.RestoreMoney(dto.Price), stock)
}

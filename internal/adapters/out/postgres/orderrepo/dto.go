// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The address snapshot and money breakdown are flattened into columns; line
// items live in their own table and are loaded with the order.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status        int       `gorm:"index"`
	StatusReason  string
	PaymentStatus int
	TrackingCode  *string
	Note          string

	Recipient string
	Phone     string
	Street    string
	Ward      string
	District  string
	City      string

	Subtotal    int64
	Tax         int64
	ShippingFee int64
	Discount    int64
	TotalPrice  int64
	FinalPrice  int64

	StockRestored      bool
	CarrierSyncPending bool `gorm:"index"`
	Version            int

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one purchased line of an order, bound to the branch
// that fulfills it. Rows are written once at placement and never updated.
type OrderItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	VariantID uuid.UUID `gorm:"type:uuid"`
	BranchID  uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			VariantID: item.VariantID().Bytes(),
			BranchID:  item.BranchID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        int(aggregate.Status()),
		StatusReason:  aggregate.StatusReason(),
		PaymentStatus: int(aggregate.PaymentStatus()),
		TrackingCode:  aggregate.TrackingCode(),
		Note:          aggregate.Note(),

		Recipient: aggregate.ShippingAddress().Recipient(),
		Phone:     aggregate.ShippingAddress().Phone(),
		Street:    aggregate.ShippingAddress().Street(),
		Ward:      aggregate.ShippingAddress().Ward(),
		District:  aggregate.ShippingAddress().District(),
		City:      aggregate.ShippingAddress().City(),

		Subtotal:    aggregate.Subtotal().Amount(),
		Tax:         aggregate.Tax().Amount(),
		ShippingFee: aggregate.ShippingFee().Amount(),
		Discount:    aggregate.Discount().Amount(),
		TotalPrice:  aggregate.TotalPrice().Amount(),
		FinalPrice:  aggregate.FinalPrice().Amount(),

		StockRestored:      aggregate.StockRestored(),
		CarrierSyncPending: aggregate.CarrierSyncPending(),
		Version:            aggregate.Version(),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),

		Items: items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Recipient,
		dto.Phone,
		dto.Street,
		dto.Ward,
		dto.District,
		dto.City,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		variantID, itemErr := kernel.UUIDFromBytes(itemDTO.VariantID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		branchID, itemErr := kernel.UUIDFromBytes(itemDTO.BranchID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(
			variantID,
			branchID,
			itemDTO.Quantity,
			kernel.RestoreMoney(itemDTO.UnitPrice),
		)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		items,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		address,
		kernel.RestoreMoney(dto.Tax),
		kernel.RestoreMoney(dto.ShippingFee),
		kernel.RestoreMoney(dto.Discount),
		dto.TrackingCode,
		dto.StatusReason,
		dto.Note,
		dto.StockRestored,
		dto.CarrierSyncPending,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order straight from the database, bypassing
// the aggregate. Read models carry the denormalized money breakdown so the
// HTTP layer can render them without recomputing totals.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order with its line items.
// Returns errs.ErrObjectNotFound when no such order exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var status, paymentStatus int
	var trackingCode sql.NullString
	var subtotal, tax, shippingFee, discount, totalPrice, finalPrice int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			status_reason,
			payment_status,
			tracking_code,
			note,
			recipient,
			phone,
			street,
			ward,
			district,
			city,
			subtotal,
			tax,
			shipping_fee,
			discount,
			total_price,
			final_price,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&status,
		&resp.StatusReason,
		&paymentStatus,
		&trackingCode,
		&resp.Note,
		&resp.Recipient,
		&resp.Phone,
		&resp.Street,
		&resp.Ward,
		&resp.District,
		&resp.City,
		&subtotal,
		&tax,
		&shippingFee,
		&discount,
		&totalPrice,
		&finalPrice,
		&resp.Version,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Status = order.Status(status).String()
	resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()

	if trackingCode.Valid {
		resp.TrackingCode = &trackingCode.String
	}

	resp.Subtotal = kernel.RestoreMoney(subtotal)
	resp.Tax = kernel.RestoreMoney(tax)
	resp.ShippingFee = kernel.RestoreMoney(shippingFee)
	resp.Discount = kernel.RestoreMoney(discount)
	resp.TotalPrice = kernel.RestoreMoney(totalPrice)
	resp.FinalPrice = kernel.RestoreMoney(finalPrice)

	resp.Items, err = h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryItemResponse, error) {
	items := make([]GetOrderQueryItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			variant_id,
			branch_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY variant_id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItemResponse
		var variantID, branchID uuid.UUID
		var unitPrice int64

		err = rows.Scan(
			&variantID,
			&branchID,
			&item.Quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, err
		}

		item.VariantID, err = kernel.UUIDFromBytes(variantID[:])
		if err != nil {
			return nil, err
		}

		item.BranchID, err = kernel.UUIDFromBytes(branchID[:])
		if err != nil {
			return nil, err
		}

		item.UnitPrice = kernel.RestoreMoney(unitPrice)
		item.Subtotal = item.UnitPrice.Multiply(item.Quantity)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

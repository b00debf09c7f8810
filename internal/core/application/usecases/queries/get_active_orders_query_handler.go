package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves non-terminal orders from the database.
// Delivered, Cancelled and Returned orders are excluded; everything else is
// still someone's work item.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all active orders.
// Results are sorted by creation time, oldest first, so the longest-waiting
// orders surface at the top of dashboards.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.payment_status,
			o.recipient,
			o.city,
			o.final_price,
			COUNT(i.id) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status NOT IN (?, ?, ?)
		GROUP BY o.id, o.status, o.payment_status, o.recipient, o.city, o.final_price, o.created_at
		ORDER BY o.created_at
	`, order.Delivered, order.Cancelled, order.Returned).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var status, paymentStatus int
		var finalPrice int64

		err = rows.Scan(
			&id,
			&status,
			&paymentStatus,
			&orderResp.Recipient,
			&orderResp.City,
			&finalPrice,
			&orderResp.ItemCount,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderResp.Status = order.Status(status).String()
		orderResp.PaymentStatus = order.PaymentStatus(paymentStatus).String()

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.FinalPrice = kernel.RestoreMoney(finalPrice)
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

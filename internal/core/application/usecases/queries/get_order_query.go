package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its line items.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", detail.ID, detail.Status)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// GetOrderQueryResponse is the full read model of one order, including the
// money breakdown, the address snapshot and every line item.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Status        string
	StatusReason  string
	PaymentStatus string
	TrackingCode  *string
	Note          string

	Recipient string
	Phone     string
	Street    string
	Ward      string
	District  string
	City      string

	Subtotal    kernel.Money
	Tax         kernel.Money
	ShippingFee kernel.Money
	Discount    kernel.Money
	TotalPrice  kernel.Money
	FinalPrice  kernel.Money

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []GetOrderQueryItemResponse
}

// GetOrderQueryItemResponse is one line of the order read model.
type GetOrderQueryItemResponse struct {
	VariantID kernel.UUID
	BranchID  kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

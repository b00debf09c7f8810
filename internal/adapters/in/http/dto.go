package http

import (
	"time"

	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type addressRequest struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	City      string `json:"city"`
}

type placeOrderItemRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	Items       []placeOrderItemRequest `json:"items"`
	Address     addressRequest          `json:"address"`
	Tax         int64                   `json:"tax"`
	ShippingFee int64                   `json:"shippingFee"`
	Discount    int64                   `json:"discount"`
	Note        string                  `json:"note"`
}

type changeStatusRequest struct {
	TargetStatus string `json:"targetStatus"`
	Reason       string `json:"reason"`
}

type updateOrderRequest struct {
	Note    *string         `json:"note"`
	Address *addressRequest `json:"address"`
}

type cartHoldRequest struct {
	SessionID string `json:"sessionId"`
	VariantID string `json:"variantId"`
	BranchID  string `json:"branchId"`
	Quantity  int    `json:"quantity"`
}

type cartHoldResponse struct {
	SessionID string `json:"sessionId"`
	VariantID string `json:"variantId"`
	BranchID  string `json:"branchId"`
	Held      int    `json:"held"`
}

type addressResponse struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Ward      string `json:"ward,omitempty"`
	District  string `json:"district,omitempty"`
	City      string `json:"city,omitempty"`
}

type orderItemResponse struct {
	VariantID string `json:"variantId"`
	BranchID  string `json:"branchId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	StatusReason  string              `json:"statusReason,omitempty"`
	PaymentStatus string              `json:"paymentStatus"`
	TrackingCode  *string             `json:"trackingCode,omitempty"`
	Note          string              `json:"note,omitempty"`
	Address       addressResponse     `json:"address"`
	Items         []orderItemResponse `json:"items"`
	Subtotal      int64               `json:"subtotal"`
	Tax           int64               `json:"tax"`
	ShippingFee   int64               `json:"shippingFee"`
	Discount      int64               `json:"discount"`
	TotalPrice    int64               `json:"totalPrice"`
	FinalPrice    int64               `json:"finalPrice"`
	Version       int                 `json:"version"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	CarrierWarning string `json:"carrierWarning,omitempty"`
}

type activeOrderResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Recipient     string    `json:"recipient"`
	City          string    `json:"city"`
	FinalPrice    int64     `json:"finalPrice"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type branchAvailabilityResponse struct {
	BranchID  string `json:"branchId"`
	Available int    `json:"available"`
	Held      int    `json:"held"`
	Effective int    `json:"effective"`
}

type variantAvailabilityResponse struct {
	VariantID string                       `json:"variantId"`
	Branches  []branchAvailabilityResponse `json:"branches"`
}

// orderToResponse renders an order aggregate for the API.
func orderToResponse(aggregate *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, orderItemResponse{
			VariantID: item.VariantID().String(),
			BranchID:  item.BranchID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
			Subtotal:  item.Subtotal().Amount(),
		})
	}

	return orderResponse{
		ID:            aggregate.ID().String(),
		Status:        aggregate.Status().String(),
		StatusReason:  aggregate.StatusReason(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		TrackingCode:  aggregate.TrackingCode(),
		Note:          aggregate.Note(),
		Address: addressResponse{
			Recipient: aggregate.ShippingAddress().Recipient(),
			Phone:     aggregate.ShippingAddress().Phone(),
			Street:    aggregate.ShippingAddress().Street(),
			Ward:      aggregate.ShippingAddress().Ward(),
			District:  aggregate.ShippingAddress().District(),
			City:      aggregate.ShippingAddress().City(),
		},
		Items:       items,
		Subtotal:    aggregate.Subtotal().Amount(),
		Tax:         aggregate.Tax().Amount(),
		ShippingFee: aggregate.ShippingFee().Amount(),
		Discount:    aggregate.Discount().Amount(),
		TotalPrice:  aggregate.TotalPrice().Amount(),
		FinalPrice:  aggregate.FinalPrice().Amount(),
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// orderProjectionToResponse renders the read-model projection of an order.
func orderProjectionToResponse(projection queries.GetOrderQueryResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(projection.Items))
	for _, item := range projection.Items {
		items = append(items, orderItemResponse{
			VariantID: item.VariantID.String(),
			BranchID:  item.BranchID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
			Subtotal:  item.Subtotal.Amount(),
		})
	}

	return orderResponse{
		ID:            projection.ID.String(),
		Status:        projection.Status,
		StatusReason:  projection.StatusReason,
		PaymentStatus: projection.PaymentStatus,
		TrackingCode:  projection.TrackingCode,
		Note:          projection.Note,
		Address: addressResponse{
			Recipient: projection.Recipient,
			Phone:     projection.Phone,
			Street:    projection.Street,
			Ward:      projection.Ward,
			District:  projection.District,
			City:      projection.City,
		},
		Items:       items,
		Subtotal:    projection.Subtotal.Amount(),
		Tax:         projection.Tax.Amount(),
		ShippingFee: projection.ShippingFee.Amount(),
		Discount:    projection.Discount.Amount(),
		TotalPrice:  projection.TotalPrice.Amount(),
		FinalPrice:  projection.FinalPrice.Amount(),
		Version:     projection.Version,
		CreatedAt:   projection.CreatedAt,
		UpdatedAt:   projection.UpdatedAt,
	}
}

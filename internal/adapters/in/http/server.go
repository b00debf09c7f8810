// Package http exposes the order and inventory operations over an echo server.
// Handlers translate between the wire representation and the application's
// commands and queries; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler         commands.PlaceOrderCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getAvailabilityHandler queries.GetVariantAvailabilityQueryHandler

	// Cart soft holds
	cartHolds ports.CartHoldStore
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAvailabilityHandler queries.GetVariantAvailabilityQueryHandler,
	cartHolds ports.CartHoldStore,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		updateOrderDetailsHandler: updateOrderDetailsHandler,
		getOrderHandler:           getOrderHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getAvailabilityHandler:    getAvailabilityHandler,
		cartHolds:                 cartHolds,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.PATCH("/orders/:id", s.UpdateOrderDetails)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/variants/:id/availability", s.GetVariantAvailability)
	api.POST("/carts/holds", s.HoldCartItem)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	address, err := kernel.NewAddress(
		req.Address.Recipient,
		req.Address.Phone,
		req.Address.Street,
		req.Address.Ward,
		req.Address.District,
		req.Address.City,
	)
	if err != nil {
		return badRequest(ctx, "Invalid address: "+err.Error())
	}

	items := make([]commands.OrderItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		variantID, idErr := kernel.UUIDFromString(item.VariantID)
		if idErr != nil {
			return badRequest(ctx, "Invalid variant id: "+item.VariantID)
		}
		items = append(items, commands.OrderItemSpec{
			VariantID: variantID,
			Quantity:  item.Quantity,
		})
	}

	tax, err := kernel.NewMoney(req.Tax)
	if err != nil {
		return badRequest(ctx, "Invalid tax: "+err.Error())
	}
	shippingFee, err := kernel.NewMoney(req.ShippingFee)
	if err != nil {
		return badRequest(ctx, "Invalid shipping fee: "+err.Error())
	}
	discount, err := kernel.NewMoney(req.Discount)
	if err != nil {
		return badRequest(ctx, "Invalid discount: "+err.Error())
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		items,
		address,
		tax,
		shippingFee,
		discount,
		req.Note,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - drives the order
// state machine. A carrier failure during a cancellation is reported in the
// response body as a warning; the transition itself has already committed.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req changeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+req.TargetStatus)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := orderToResponse(result.Order)
	if result.CarrierWarning != nil {
		resp.CarrierWarning = result.CarrierWarning.Error()
	}

	return ctx.JSON(http.StatusOK, resp)
}

// UpdateOrderDetails handles PATCH /api/v1/orders/:id - patches the note
// and/or shipping address. Status is never patchable here.
func (s *Server) UpdateOrderDetails(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req updateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var address *kernel.Address
	if req.Address != nil {
		built, addrErr := kernel.NewAddress(
			req.Address.Recipient,
			req.Address.Phone,
			req.Address.Street,
			req.Address.Ward,
			req.Address.District,
			req.Address.City,
		)
		if addrErr != nil {
			return badRequest(ctx, "Invalid address: "+addrErr.Error())
		}
		address = &built
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID, req.Note, address)
	if err != nil {
		return badRequest(ctx, "Invalid patch: "+err.Error())
	}

	updated, err := s.updateOrderDetailsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	projection, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderProjectionToResponse(projection))
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all orders
// that have not reached a terminal status.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]activeOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, activeOrderResponse{
			ID:            o.ID.String(),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Recipient:     o.Recipient,
			City:          o.City,
			FinalPrice:    o.FinalPrice.Amount(),
			ItemCount:     o.ItemCount,
			CreatedAt:     o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetVariantAvailability handles GET /api/v1/variants/:id/availability.
// The optional session query parameter overlays the session's cart holds.
func (s *Server) GetVariantAvailability(ctx echo.Context) error {
	variantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid variant id")
	}

	query, err := queries.NewGetVariantAvailabilityQuery(variantID, ctx.QueryParam("session"))
	if err != nil {
		return badRequest(ctx, "Invalid variant id")
	}

	availability, err := s.getAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	branches := make([]branchAvailabilityResponse, 0, len(availability.Branches))
	for _, branch := range availability.Branches {
		branches = append(branches, branchAvailabilityResponse{
			BranchID:  branch.BranchID.String(),
			Available: branch.Available,
			Held:      branch.Held,
			Effective: branch.Effective,
		})
	}

	return ctx.JSON(http.StatusOK, variantAvailabilityResponse{
		VariantID: availability.VariantID.String(),
		Branches:  branches,
	})
}

// HoldCartItem handles POST /api/v1/carts/holds - places an advisory soft
// hold for a cart session. Holds never block other sessions and expire on
// their own; the authoritative stock check happens at order placement.
func (s *Server) HoldCartItem(ctx echo.Context) error {
	var req cartHoldRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if req.SessionID == "" || req.Quantity <= 0 {
		return badRequest(ctx, "Session id and a positive quantity are required")
	}

	variantID, err := kernel.UUIDFromString(req.VariantID)
	if err != nil {
		return badRequest(ctx, "Invalid variant id")
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return badRequest(ctx, "Invalid branch id")
	}

	held, err := s.cartHolds.Hold(ctx.Request().Context(), req.SessionID, variantID, branchID, req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartHoldResponse{
		SessionID: req.SessionID,
		VariantID: req.VariantID,
		BranchID:  req.BranchID,
		Held:      held,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes:
// missing reason and validation errors to 400, unknown objects to 404,
// business conflicts (illegal transition, insufficient stock, lost
// concurrency race) to 409, everything else to 500.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, order.ErrReasonIsRequired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, order.ErrAddressIsLocked):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, ports.ErrConcurrentModification):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

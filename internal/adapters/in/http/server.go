// Package http is the inbound HTTP adapter. It translates REST requests into
// commands and queries and maps domain errors onto status codes. The adapter
// stays thin: no business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitCartHandler     commands.SubmitCartCommandHandler
	setOrderStatusHandler commands.SetOrderStatusCommandHandler
	deleteOrderHandler    commands.DeleteOrderCommandHandler
	resetSalesDataHandler commands.ResetSalesDataCommandHandler

	getOpenOrderHandler   queries.GetOpenOrderQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	getSalesReportHandler queries.GetSalesReportQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	submitCartHandler commands.SubmitCartCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	resetSalesDataHandler commands.ResetSalesDataCommandHandler,
	getOpenOrderHandler queries.GetOpenOrderQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getSalesReportHandler queries.GetSalesReportQueryHandler,
) *Server {
	return &Server{
		submitCartHandler:     submitCartHandler,
		setOrderStatusHandler: setOrderStatusHandler,
		deleteOrderHandler:    deleteOrderHandler,
		resetSalesDataHandler: resetSalesDataHandler,
		getOpenOrderHandler:   getOpenOrderHandler,
		getOrderHandler:       getOrderHandler,
		getSalesReportHandler: getSalesReportHandler,
	}
}

// RegisterRoutes attaches every route of the order API to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/tables/:table/cart", s.SubmitCart)
	api.GET("/tables/:table/order", s.GetOpenOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.SetOrderStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.DELETE("/orders", s.ResetSalesData)
	api.GET("/reports/sales", s.GetSalesReport)
}

// ErrorResponse is the JSON error body shared by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CartLineRequest is one position of a submitted cart.
type CartLineRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// SubmitCartRequest is the body of POST /tables/:table/cart.
type SubmitCartRequest struct {
	Items []CartLineRequest `json:"items"`
}

// SubmitCartResponse returns the identifier of the order the cart landed in.
type SubmitCartResponse struct {
	OrderID string `json:"orderId"`
}

// SetOrderStatusRequest is the body of PATCH /orders/:id/status.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
}

// LineItemResponse is the JSON shape of one order position.
type LineItemResponse struct {
	ID         string `json:"id"`
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Subtotal   string `json:"subtotal"`
}

// OrderResponse is the JSON shape of an order with its line items.
type OrderResponse struct {
	ID          string             `json:"id"`
	TableNumber int                `json:"tableNumber"`
	Status      string             `json:"status"`
	Total       string             `json:"total"`
	Items       []LineItemResponse `json:"items"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

// SalesReportResponse is the JSON shape of GET /reports/sales.
type SalesReportResponse struct {
	TotalOrders      int    `json:"totalOrders"`
	NewOrders        int    `json:"newOrders"`
	InProgressOrders int    `json:"inProgressOrders"`
	FulfilledOrders  int    `json:"fulfilledOrders"`
	FulfilledRevenue string `json:"fulfilledRevenue"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitCart handles POST /api/v1/tables/:table/cart. Depending on the
// table's open order the cart either merges into it or starts a new one; the
// response names the order it ended up in.
func (s *Server) SubmitCart(ctx echo.Context) error {
	tableNumber, err := strconv.Atoi(ctx.Param("table"))
	if err != nil {
		return badRequest(ctx, "table number must be an integer")
	}

	var req SubmitCartRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	lines := make([]commands.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return badRequest(ctx, "invalid menu item id: "+item.MenuItemID)
		}
		lines = append(lines, commands.CartLine{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewSubmitCartCommand(tableNumber, lines)
	if err != nil {
		return domainError(ctx, err)
	}

	orderID, err := s.submitCartHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitCartResponse{OrderID: orderID.String()})
}

// GetOpenOrder handles GET /api/v1/tables/:table/order.
func (s *Server) GetOpenOrder(ctx echo.Context) error {
	tableNumber, err := strconv.Atoi(ctx.Param("table"))
	if err != nil {
		return badRequest(ctx, "table number must be an integer")
	}

	query, err := queries.NewGetOpenOrderQuery(tableNumber)
	if err != nil {
		return domainError(ctx, err)
	}

	resp, err := s.getOpenOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req SetOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "invalid status: "+req.Status)
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, status)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResetSalesData handles DELETE /api/v1/orders: the period close-out wipe.
func (s *Server) ResetSalesData(ctx echo.Context) error {
	cmd := commands.NewResetSalesDataCommand()

	if err := s.resetSalesDataHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSalesReport handles GET /api/v1/reports/sales.
func (s *Server) GetSalesReport(ctx echo.Context) error {
	resp, err := s.getSalesReportHandler.Handle(ctx.Request().Context(), queries.NewGetSalesReportQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SalesReportResponse{
		TotalOrders:      resp.TotalOrders,
		NewOrders:        resp.NewOrders,
		InProgressOrders: resp.InProgressOrders,
		FulfilledOrders:  resp.FulfilledOrders,
		FulfilledRevenue: resp.FulfilledRevenue.String(),
	})
}

func toOrderResponse(resp queries.OrderResponse) OrderResponse {
	items := make([]LineItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, LineItemResponse{
			ID:         item.ID.String(),
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			Subtotal:   item.Subtotal.String(),
		})
	}

	return OrderResponse{
		ID:          resp.ID.String(),
		TableNumber: resp.TableNumber,
		Status:      resp.Status,
		Total:       resp.Total.String(),
		Items:       items,
		CreatedAt:   resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain and validation errors onto status codes: unknown
// objects are 404, business rule violations are 422, malformed input is 400,
// anything else is a 500.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrQuantityIsInvalid),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, commands.ErrItemUnavailable):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrTableNumberIsInvalid),
		errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, queries.ErrQueryTableNumberIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

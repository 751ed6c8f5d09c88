package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	MenuItemID *uuid.UUID `json:"menu_item_id"`
	Name       string     `json:"name"`
	UnitPrice  float64    `json:"unit_price"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	Notes      string     `json:"notes"`
}

func toItemInputs(items []orderItemRequest) []service.OrderItemInput {
	inputs := make([]service.OrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.OrderItemInput{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}
	return inputs
}

// Place handles order placement from a guest table session
func (h *OrderHandler) Place(c *gin.Context) {
	tableID := GetTableID(c)
	if tableID == nil {
		response.Unauthorized(c, "Table session required")
		return
	}

	var req struct {
		Items       []orderItemRequest `json:"items" binding:"required,min=1,dive"`
		PromoCode   string             `json:"promo_code"`
		FreeItemIDs []uuid.UUID        `json:"free_item_ids"`
		Notes       string             `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), &service.PlaceOrderInput{
		TableID:     *tableID,
		CustomerID:  GetCustomerID(c),
		Items:       toItemInputs(req.Items),
		PromoCode:   req.PromoCode,
		FreeItemIDs: req.FreeItemIDs,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", order)
}

// AddItems handles adding items to an open order. Guests may only touch
// the order bound to their own table session.
func (h *OrderHandler) AddItems(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if tableID := GetTableID(c); tableID != nil {
		existing, err := h.orderService.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if existing.TableID != *tableID {
			response.Forbidden(c, "Order belongs to another table")
			return
		}
	}

	order, err := h.orderService.AddItems(c.Request.Context(), orderID, toItemInputs(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items added successfully", order)
}

// MyOrder returns the open order for the guest's table
func (h *OrderHandler) MyOrder(c *gin.Context) {
	tableID := GetTableID(c)
	if tableID == nil {
		response.Unauthorized(c, "Table session required")
		return
	}

	order, err := h.orderService.GetOpenOrderForTable(c.Request.Context(), *tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Get handles retrieving a single order with its items and tickets
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: paginationParams(c),
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sort_by", "created_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Unknown order status")
			return
		}
		params.Status = &status
	}
	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if tableID, err := uuid.Parse(tableIDStr); err == nil {
			params.TableID = &tableID
		}
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			end = end.Add(24*time.Hour - time.Second)
			params.EndDate = &end
		}
	}

	orders, pg, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully",
		pagination.NewPaginatedResult(orders, pg))
}

// Cancel handles cancelling an open order
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// MarkPaid handles marking a billed order as paid
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.MarkPaid(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order marked as paid", nil)
}

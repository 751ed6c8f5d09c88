package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// KitchenHandler handles kitchen ticket HTTP requests
type KitchenHandler struct {
	kitchenService *service.KitchenService
}

// NewKitchenHandler creates a new kitchen handler
func NewKitchenHandler(kitchenService *service.KitchenService) *KitchenHandler {
	return &KitchenHandler{kitchenService: kitchenService}
}

// ListTickets handles listing kitchen tickets with filters
func (h *KitchenHandler) ListTickets(c *gin.Context) {
	params := &repository.KOTFilterParams{
		Pagination: paginationParams(c),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ItemStatus(statusStr)
		if !status.Valid() {
			response.BadRequest(c, "Unknown ticket status")
			return
		}
		params.Status = &status
	}
	if tableStr := c.Query("table"); tableStr != "" {
		if table, err := strconv.Atoi(tableStr); err == nil {
			params.TableNumber = &table
		}
	}
	if sinceStr := c.Query("since"); sinceStr != "" {
		if since, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			params.Since = &since
		}
	}

	tickets, pg, err := h.kitchenService.ListTickets(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully",
		pagination.NewPaginatedResult(tickets, pg))
}

// GetTicket handles retrieving a single ticket with its items
func (h *KitchenHandler) GetTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.kitchenService.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", ticket)
}

// UpdateItemStatus handles advancing a single item's preparation status
func (h *KitchenHandler) UpdateItemStatus(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status := enum.ItemStatus(req.Status)
	if !status.Valid() {
		response.BadRequest(c, "Unknown item status")
		return
	}

	ticket, err := h.kitchenService.UpdateItemStatus(c.Request.Context(), itemID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item status updated", ticket)
}

// UpdateTicketStatus handles advancing a whole ticket, bumping every
// item that lags behind the target status
func (h *KitchenHandler) UpdateTicketStatus(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status := enum.ItemStatus(req.Status)
	if !status.Valid() {
		response.BadRequest(c, "Unknown ticket status")
		return
	}

	ticket, err := h.kitchenService.UpdateTicketStatus(c.Request.Context(), ticketID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket status updated", ticket)
}

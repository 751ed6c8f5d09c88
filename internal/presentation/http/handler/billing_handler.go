package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
)

// BillingHandler handles bill preview and settlement HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

type billRequest struct {
	DiscountPct float64 `json:"discount_pct"`
}

// Preview handles computing a bill without changing the order
func (h *BillingHandler) Preview(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req billRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.billingService.PreviewBill(c.Request.Context(), orderID, req.DiscountPct)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill computed successfully", result)
}

// Settle handles finalising the bill and marking the order as billed
func (h *BillingHandler) Settle(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req billRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.billingService.SettleBill(c.Request.Context(), orderID, req.DiscountPct)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill settled successfully", result)
}

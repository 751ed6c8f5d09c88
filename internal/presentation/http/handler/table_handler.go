package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
)

// TableHandler handles dining table HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

type tableRequest struct {
	Number   int  `json:"number" binding:"required,min=1"`
	Capacity int  `json:"capacity"`
	Active   bool `json:"active"`
}

// Create handles creating a table
func (h *TableHandler) Create(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), &service.TableInput{
		Number:   req.Number,
		Capacity: req.Capacity,
		Active:   req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created successfully", table)
}

// Update handles updating a table
func (h *TableHandler) Update(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), tableID, &service.TableInput{
		Number:   req.Number,
		Capacity: req.Capacity,
		Active:   req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}

// RegenerateQR handles rotating a table's QR token, invalidating any
// QR codes printed from the old one
func (h *TableHandler) RegenerateQR(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	table, err := h.tableService.RegenerateQRToken(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "QR token regenerated", table)
}

// Delete handles deleting a table
func (h *TableHandler) Delete(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), tableID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table deleted successfully", nil)
}

// Get handles retrieving a single table
func (h *TableHandler) Get(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved successfully", table)
}

// List handles listing tables
func (h *TableHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	tables, err := h.tableService.ListTables(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved successfully", tables)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles tax and restaurant settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type taxSettingRequest struct {
	Name         string  `json:"name" binding:"required"`
	Rate         float64 `json:"rate" binding:"min=0"`
	Active       bool    `json:"active"`
	DisplayOrder int     `json:"display_order"`
}

// CreateTax handles adding a tax component
func (h *SettingsHandler) CreateTax(c *gin.Context) {
	var req taxSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.settingsService.CreateTaxSetting(c.Request.Context(), &service.TaxSettingInput{
		Name:         req.Name,
		Rate:         req.Rate,
		Active:       req.Active,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax setting created successfully", tax)
}

// UpdateTax handles updating a tax component
func (h *SettingsHandler) UpdateTax(c *gin.Context) {
	taxID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tax setting ID")
		return
	}

	var req taxSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.settingsService.UpdateTaxSetting(c.Request.Context(), taxID, &service.TaxSettingInput{
		Name:         req.Name,
		Rate:         req.Rate,
		Active:       req.Active,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax setting updated successfully", tax)
}

// DeleteTax handles removing a tax component
func (h *SettingsHandler) DeleteTax(c *gin.Context) {
	taxID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tax setting ID")
		return
	}

	if err := h.settingsService.DeleteTaxSetting(c.Request.Context(), taxID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax setting deleted successfully", nil)
}

// ListTaxes handles listing tax components
func (h *SettingsHandler) ListTaxes(c *gin.Context) {
	taxes, err := h.settingsService.ListTaxSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax settings retrieved successfully", taxes)
}

// GetRestaurant handles retrieving the restaurant settings
func (h *SettingsHandler) GetRestaurant(c *gin.Context) {
	settings, err := h.settingsService.GetRestaurantSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateRestaurant handles updating the restaurant settings
func (h *SettingsHandler) UpdateRestaurant(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
		GSTIN    string `json:"gstin"`
		Currency string `json:"currency"`
		TaxMode  string `json:"tax_mode" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	taxMode, err := enum.ParseTaxMode(req.TaxMode)
	if err != nil {
		response.BadRequest(c, "Tax mode must be exclusive or inclusive")
		return
	}

	settings, err := h.settingsService.UpdateRestaurantSettings(c.Request.Context(), &service.RestaurantSettingsInput{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		GSTIN:    req.GSTIN,
		Currency: req.Currency,
		TaxMode:  taxMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

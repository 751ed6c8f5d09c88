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

// OfferHandler handles offer management HTTP requests
type OfferHandler struct {
	offerService *service.OfferService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService *service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

type offerItemRequest struct {
	MenuItemID *uuid.UUID `json:"menu_item_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	Role       string     `json:"role" binding:"required"`
}

type offerRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Type        string             `json:"type" binding:"required"`
	Priority    int                `json:"priority"`
	Active      bool               `json:"active"`
	StartDate   *time.Time         `json:"start_date"`
	EndDate     *time.Time         `json:"end_date"`
	HoursStart  string             `json:"hours_start"`
	HoursEnd    string             `json:"hours_end"`
	ValidDays   []string           `json:"valid_days"`
	PromoCode   string             `json:"promo_code"`
	UsageLimit  int                `json:"usage_limit"`
	Conditions  map[string]any     `json:"conditions"`
	Benefits    map[string]any     `json:"benefits"`
	Items       []offerItemRequest `json:"items"`
}

func (r *offerRequest) toInput() *service.SaveOfferInput {
	items := make([]service.OfferItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.OfferItemInput{
			MenuItemID: item.MenuItemID,
			CategoryID: item.CategoryID,
			Role:       item.Role,
		})
	}
	return &service.SaveOfferInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        enum.OfferType(r.Type),
		Priority:    r.Priority,
		Active:      r.Active,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		HoursStart:  r.HoursStart,
		HoursEnd:    r.HoursEnd,
		ValidDays:   r.ValidDays,
		PromoCode:   r.PromoCode,
		UsageLimit:  r.UsageLimit,
		Conditions:  r.Conditions,
		Benefits:    r.Benefits,
		Items:       items,
	}
}

// Create handles creating an offer
func (h *OfferHandler) Create(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Offer created successfully", offer)
}

// Update handles updating an offer
func (h *OfferHandler) Update(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid offer ID")
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	offer, err := h.offerService.UpdateOffer(c.Request.Context(), offerID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offer updated successfully", offer)
}

// Delete handles deleting an offer
func (h *OfferHandler) Delete(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid offer ID")
		return
	}

	if err := h.offerService.DeleteOffer(c.Request.Context(), offerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offer deleted successfully", nil)
}

// Get handles retrieving a single offer with its scope items
func (h *OfferHandler) Get(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid offer ID")
		return
	}

	offer, err := h.offerService.GetOffer(c.Request.Context(), offerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offer retrieved successfully", offer)
}

// List handles listing offers with filters
func (h *OfferHandler) List(c *gin.Context) {
	params := &repository.OfferFilterParams{
		Pagination: paginationParams(c),
		Search:     c.Query("search"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		offerType := enum.OfferType(typeStr)
		if !offerType.Valid() {
			response.BadRequest(c, "Unknown offer type")
			return
		}
		params.Type = &offerType
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		params.Active = &active
	}

	offers, pg, err := h.offerService.ListOffers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Offers retrieved successfully",
		pagination.NewPaginatedResult(offers, pg))
}

// Redemptions handles listing redemptions recorded against an offer
func (h *OfferHandler) Redemptions(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid offer ID")
		return
	}

	redemptions, pg, err := h.offerService.ListRedemptions(c.Request.Context(), offerID, paginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Redemptions retrieved successfully",
		pagination.NewPaginatedResult(redemptions, pg))
}

// Suggest returns the best offer for the guest's current cart
func (h *OfferHandler) Suggest(c *gin.Context) {
	var req struct {
		Items     []orderItemRequest `json:"items" binding:"required,min=1,dive"`
		PromoCode string             `json:"promo_code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	suggestion, err := h.offerService.Suggest(c.Request.Context(), &service.SuggestInput{
		Items:      toItemInputs(req.Items),
		CustomerID: GetCustomerID(c),
		PromoCode:  req.PromoCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Suggestion computed successfully", suggestion)
}

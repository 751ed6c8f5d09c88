package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// MenuHandler handles category and menu item HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

type categoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
	Active       bool   `json:"active"`
}

// CreateCategory handles creating a category
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles updating a category
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), categoryID, &service.CategoryInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}

// ListCategories handles listing categories
func (h *MenuHandler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	categories, err := h.menuService.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

type menuItemRequest struct {
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	Vegetarian  bool      `json:"vegetarian"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"image_url"`
}

func (r *menuItemRequest) toInput() *service.MenuItemInput {
	return &service.MenuItemInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Vegetarian:  r.Vegetarian,
		Available:   r.Available,
		ImageURL:    r.ImageURL,
	}
}

// CreateItem handles creating a menu item
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// UpdateItem handles updating a menu item
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), itemID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// DeleteItem handles deleting a menu item
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}

// GetItem handles retrieving a single menu item
func (h *MenuHandler) GetItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	item, err := h.menuService.GetMenuItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// ListItems handles listing menu items with filters. Guests hit this
// endpoint too, with available=true forced by the public route.
func (h *MenuHandler) ListItems(c *gin.Context) {
	h.listItems(c, c.Query("available") == "true")
}

// PublicMenu lists only available items for the guest-facing menu
func (h *MenuHandler) PublicMenu(c *gin.Context) {
	h.listItems(c, true)
}

func (h *MenuHandler) listItems(c *gin.Context, availableOnly bool) {
	params := &repository.MenuItemFilterParams{
		Pagination:    paginationParams(c),
		Search:        c.Query("search"),
		AvailableOnly: availableOnly,
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}
	if vegStr := c.Query("vegetarian"); vegStr != "" {
		veg := vegStr == "true"
		params.Vegetarian = &veg
	}

	items, pg, err := h.menuService.ListMenuItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Menu items retrieved successfully",
		pagination.NewPaginatedResult(items, pg))
}

// SetAvailability handles toggling a menu item's availability
func (h *MenuHandler) SetAvailability(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.menuService.SetAvailability(c.Request.Context(), itemID, *req.Available); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Availability updated successfully", nil)
}

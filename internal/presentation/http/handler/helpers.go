package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// GetUserID extracts the staff user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the staff role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetTableID extracts the table ID from a guest session context
func GetTableID(c *gin.Context) *uuid.UUID {
	tableIDVal, exists := c.Get("table_id")
	if !exists {
		return nil
	}
	tableID, ok := tableIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &tableID
}

// GetCustomerID extracts the verified customer ID from a guest session
// context, nil for anonymous sessions
func GetCustomerID(c *gin.Context) *uuid.UUID {
	customerIDVal, exists := c.Get("customer_id")
	if !exists {
		return nil
	}
	customerID, ok := customerIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &customerID
}

// parseIDParam parses a UUID path parameter, replying 400 on failure
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// paginationParams reads page/per_page query parameters
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

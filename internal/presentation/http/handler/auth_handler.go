package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
)

// AuthHandler handles staff authentication and guest table sessions
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}

// Refresh reissues the staff access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", result)
}

// Me returns the authenticated staff user
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// CreateUser handles staff account creation (admin only)
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// ScanTable exchanges a table QR token for an anonymous guest session
func (h *AuthHandler) ScanTable(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, "QR token is required")
		return
	}

	session, err := h.authService.ScanTable(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table session started", session)
}

// RequestOTP sends a verification code to the guest's phone
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Verification code sent", nil)
}

// VerifyOTP verifies the code and upgrades the table session with the
// guest's customer identity
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	tableID := GetTableID(c)
	if tableID == nil {
		response.Unauthorized(c, "Table session required")
		return
	}

	var req struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
		Name  string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.VerifyOTP(c.Request.Context(), *tableID, req.Phone, req.Code, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Phone verified", session)
}

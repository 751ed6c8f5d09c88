package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

type customerView struct {
	*entity.Customer
	Type enum.CustomerType `json:"type"`
}

// Get handles retrieving a customer with their loyalty classification
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customerView{
		Customer: customer,
		Type:     service.Classify(customer.OrderCount),
	})
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, pg, err := h.customerService.ListCustomers(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]customerView, 0, len(customers))
	for i := range customers {
		views = append(views, customerView{
			Customer: &customers[i],
			Type:     service.Classify(customers[i].OrderCount),
		})
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully",
		pagination.NewPaginatedResult(views, pg))
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// Order-count boundaries for customer classification. A guest becomes
// returning after the first completed order and loyal from the fifth.
const (
	returningMinOrders = 1
	loyaltyMinOrders   = 5
)

// CustomerService handles guest customer records
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetCustomer returns one customer
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, *pagination.Pagination, error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, nil, err
	}

	return customers, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// Classify maps a customer's completed order count to a type
func Classify(orderCount int) enum.CustomerType {
	switch {
	case orderCount >= loyaltyMinOrders:
		return enum.CustomerLoyalty
	case orderCount >= returningMinOrders:
		return enum.CustomerReturning
	default:
		return enum.CustomerFirstTime
	}
}

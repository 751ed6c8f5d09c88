package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	CountKOTs(ctx context.Context, orderID uuid.UUID) (int64, error)

	// PlaceWithItems persists the order, its items, the KOT batch and
	// the optional offer redemption in a single transaction.
	PlaceWithItems(ctx context.Context, order *entity.Order, kot *entity.KOT, redemption *entity.OfferRedemption) error
	// AddItemsWithKOT appends items to an open order under a new KOT
	// batch and updates the order totals atomically.
	AddItemsWithKOT(ctx context.Context, order *entity.Order, items []entity.OrderItem, kot *entity.KOT) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	TableID    *uuid.UUID
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderItemRepository defines the interface for order item data operations
type OrderItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error
}

// KOTRepository defines the interface for kitchen ticket data operations
type KOTRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.KOT, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.KOT, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.KOT, error)
	List(ctx context.Context, params *KOTFilterParams) ([]entity.KOT, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error
}

// KOTFilterParams contains filtering parameters for kitchen ticket queries
type KOTFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      *enum.ItemStatus
	TableNumber *int
	Since       *time.Time
}

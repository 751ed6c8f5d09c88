package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	domainRepo "github.com/ochiengk/dineqr-api/internal/domain/repository"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Table").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "order_no = ?", orderNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Table").
		Preload("Customer").
		Preload("Items").
		Preload("AppliedOffer").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("table_id = ? AND status = ?", tableID, enum.OrderStatusOpen).
		Order("created_at DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("order_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Table").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) CountKOTs(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.KOT{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

func (r *orderRepository) PlaceWithItems(ctx context.Context, order *entity.Order, kot *entity.KOT, redemption *entity.OfferRedemption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(kot).Error; err != nil {
			return err
		}

		for i := range order.Items {
			order.Items[i].KOTID = &kot.ID
			order.Items[i].KOTNumber = kot.Number
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if redemption != nil {
			redemption.OrderID = order.ID
			if err := tx.Create(redemption).Error; err != nil {
				return err
			}
			if err := tx.Model(&entity.Offer{}).
				Where("id = ?", redemption.OfferID).
				Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) AddItemsWithKOT(ctx context.Context, order *entity.Order, items []entity.OrderItem, kot *entity.KOT) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(kot).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			items[i].KOTID = &kot.ID
			items[i].KOTNumber = kot.Number
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{
				"total_items":     order.TotalItems,
				"sub_total":       order.SubTotal,
				"discount_amount": order.DiscountAmount,
				"total_tax":       order.TotalTax,
				"total":           order.Total,
				"tax_breakdown":   order.TaxBreakdown,
			}).Error
	})
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error {
	return r.db.WithContext(ctx).Model(&entity.OrderItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type kotRepository struct {
	db *gorm.DB
}

// NewKOTRepository creates a new kitchen ticket repository
func NewKOTRepository(db *gorm.DB) domainRepo.KOTRepository {
	return &kotRepository{db: db}
}

func (r *kotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	var kot entity.KOT
	err := r.db.WithContext(ctx).First(&kot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &kot, err
}

func (r *kotRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	var kot entity.KOT
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&kot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &kot, err
}

func (r *kotRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.KOT, error) {
	var kots []entity.KOT
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		Order("number ASC").
		Find(&kots).Error
	return kots, err
}

func (r *kotRepository) List(ctx context.Context, params *domainRepo.KOTFilterParams) ([]entity.KOT, int64, error) {
	var kots []entity.KOT
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.KOT{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.TableNumber != nil {
		query = query.Where("table_number = ?", *params.TableNumber)
	}

	if params.Since != nil {
		query = query.Where("created_at >= ?", *params.Since)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at ASC").
		Find(&kots).Error

	return kots, total, err
}

func (r *kotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error {
	return r.db.WithContext(ctx).Model(&entity.KOT{}).
		Where("id = ?", id).
		Update("status", status).Error
}

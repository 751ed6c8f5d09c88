package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	domainRepo "github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) domainRepo.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offer entity.Offer
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&offer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &offer, err
}

func (r *offerRepository) GetByPromoCode(ctx context.Context, code string) (*entity.Offer, error) {
	var offer entity.Offer
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&offer, "promo_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &offer, err
}

func (r *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Offer{}, "id = ?", id).Error
}

func (r *offerRepository) List(ctx context.Context, params *domainRepo.OfferFilterParams) ([]entity.Offer, int64, error) {
	var offers []entity.Offer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Offer{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("priority DESC, created_at DESC").
		Find(&offers).Error

	return offers, total, err
}

func (r *offerRepository) ListActive(ctx context.Context) ([]entity.Offer, error) {
	var offers []entity.Offer
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("active = ?", true).
		Order("priority DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Offer{}).
		Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}

func (r *offerRepository) ReplaceItems(ctx context.Context, offerID uuid.UUID, items []entity.OfferItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.OfferItem{}, "offer_id = ?", offerID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OfferID = offerID
		}
		return tx.Create(&items).Error
	})
}

func (r *offerRepository) ListRedemptions(ctx context.Context, offerID uuid.UUID, params *pagination.PaginationParams) ([]entity.OfferRedemption, int64, error) {
	var redemptions []entity.OfferRedemption
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.OfferRedemption{}).
		Where("offer_id = ?", offerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&redemptions).Error

	return redemptions, total, err
}

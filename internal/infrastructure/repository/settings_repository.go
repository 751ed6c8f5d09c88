package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	domainRepo "github.com/ochiengk/dineqr-api/internal/domain/repository"
)

type taxSettingRepository struct {
	db *gorm.DB
}

// NewTaxSettingRepository creates a new tax setting repository
func NewTaxSettingRepository(db *gorm.DB) domainRepo.TaxSettingRepository {
	return &taxSettingRepository{db: db}
}

func (r *taxSettingRepository) Create(ctx context.Context, setting *entity.TaxSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *taxSettingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxSetting, error) {
	var setting entity.TaxSetting
	err := r.db.WithContext(ctx).First(&setting, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &setting, err
}

func (r *taxSettingRepository) Update(ctx context.Context, setting *entity.TaxSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *taxSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxSetting{}, "id = ?", id).Error
}

func (r *taxSettingRepository) List(ctx context.Context) ([]entity.TaxSetting, error) {
	var settings []entity.TaxSetting
	err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&settings).Error
	return settings, err
}

func (r *taxSettingRepository) ListActive(ctx context.Context) ([]entity.TaxSetting, error) {
	var settings []entity.TaxSetting
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&settings).Error
	return settings, err
}

type restaurantSettingsRepository struct {
	db *gorm.DB
}

// NewRestaurantSettingsRepository creates a new restaurant settings repository
func NewRestaurantSettingsRepository(db *gorm.DB) domainRepo.RestaurantSettingsRepository {
	return &restaurantSettingsRepository{db: db}
}

func (r *restaurantSettingsRepository) Get(ctx context.Context) (*entity.RestaurantSettings, error) {
	var settings entity.RestaurantSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *restaurantSettingsRepository) Upsert(ctx context.Context, settings *entity.RestaurantSettings) error {
	var existing entity.RestaurantSettings
	err := r.db.WithContext(ctx).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.WithContext(ctx).Save(settings).Error
}

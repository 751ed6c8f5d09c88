package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
)

// TaxSettingRepository defines the interface for tax setting data operations
type TaxSettingRepository interface {
	Create(ctx context.Context, setting *entity.TaxSetting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxSetting, error)
	Update(ctx context.Context, setting *entity.TaxSetting) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.TaxSetting, error)
	ListActive(ctx context.Context) ([]entity.TaxSetting, error)
}

// RestaurantSettingsRepository defines the interface for the settings singleton
type RestaurantSettingsRepository interface {
	Get(ctx context.Context) (*entity.RestaurantSettings, error)
	Upsert(ctx context.Context, settings *entity.RestaurantSettings) error
}

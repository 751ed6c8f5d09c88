package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// SettingsService manages tax components and restaurant configuration
type SettingsService struct {
	taxRepo      repository.TaxSettingRepository
	settingsRepo repository.RestaurantSettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(taxRepo repository.TaxSettingRepository, settingsRepo repository.RestaurantSettingsRepository) *SettingsService {
	return &SettingsService{
		taxRepo:      taxRepo,
		settingsRepo: settingsRepo,
	}
}

// TaxSettingInput represents the create/update tax setting input
type TaxSettingInput struct {
	Name         string
	Rate         float64
	Active       bool
	DisplayOrder int
}

// CreateTaxSetting adds a tax component
func (s *SettingsService) CreateTaxSetting(ctx context.Context, input *TaxSettingInput) (*entity.TaxSetting, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Tax name is required")
	}
	if input.Rate < 0 {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	setting := &entity.TaxSetting{
		ID:           utils.NewUUID(),
		Name:         input.Name,
		Rate:         input.Rate,
		Active:       input.Active,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.taxRepo.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// UpdateTaxSetting updates a tax component
func (s *SettingsService) UpdateTaxSetting(ctx context.Context, id uuid.UUID, input *TaxSettingInput) (*entity.TaxSetting, error) {
	setting, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperror.NewNotFoundError("Tax setting")
	}
	if input.Rate < 0 {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	setting.Name = input.Name
	setting.Rate = input.Rate
	setting.Active = input.Active
	setting.DisplayOrder = input.DisplayOrder

	if err := s.taxRepo.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// DeleteTaxSetting removes a tax component
func (s *SettingsService) DeleteTaxSetting(ctx context.Context, id uuid.UUID) error {
	setting, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if setting == nil {
		return apperror.NewNotFoundError("Tax setting")
	}
	return s.taxRepo.Delete(ctx, id)
}

// ListTaxSettings returns all tax components
func (s *SettingsService) ListTaxSettings(ctx context.Context) ([]entity.TaxSetting, error) {
	return s.taxRepo.List(ctx)
}

// RestaurantSettingsInput represents the update settings input
type RestaurantSettingsInput struct {
	Name     string
	Address  string
	Phone    string
	GSTIN    string
	Currency string
	TaxMode  enum.TaxMode
}

// GetRestaurantSettings returns the settings singleton
func (s *SettingsService) GetRestaurantSettings(ctx context.Context) (*entity.RestaurantSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Restaurant settings")
	}
	return settings, nil
}

// UpdateRestaurantSettings replaces the settings singleton. Switching
// the tax mode only affects bills computed afterwards; settled orders
// keep their stored figures.
func (s *SettingsService) UpdateRestaurantSettings(ctx context.Context, input *RestaurantSettingsInput) (*entity.RestaurantSettings, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Restaurant name is required")
	}

	settings := &entity.RestaurantSettings{
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		GSTIN:    input.GSTIN,
		Currency: input.Currency,
		TaxMode:  input.TaxMode,
	}
	if settings.Currency == "" {
		settings.Currency = "INR"
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// MenuService manages categories and menu items
type MenuService struct {
	categoryRepo repository.CategoryRepository
	menuItemRepo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(categoryRepo repository.CategoryRepository, menuItemRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
	}
}

// CategoryInput represents the create/update category input
type CategoryInput struct {
	Name         string
	DisplayOrder int
	Active       bool
}

// CreateCategory creates a new category
func (s *MenuService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.Category{
		ID:           utils.NewUUID(),
		Name:         input.Name,
		Slug:         utils.Slugify(input.Name),
		DisplayOrder: input.DisplayOrder,
		Active:       input.Active,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = input.Name
	category.Slug = utils.Slugify(input.Name)
	category.DisplayOrder = input.DisplayOrder
	category.Active = input.Active

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories returns all categories in display order
func (s *MenuService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

// MenuItemInput represents the create/update menu item input
type MenuItemInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Price       float64
	Vegetarian  bool
	Available   bool
	ImageURL    string
}

// CreateMenuItem creates a new menu item
func (s *MenuService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := s.validateItem(ctx, input); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		ID:          utils.NewUUID(),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
		Price:       toCents(input.Price),
		Vegetarian:  input.Vegetarian,
		Available:   input.Available,
		ImageURL:    input.ImageURL,
	}
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.menuItemRepo.GetByID(ctx, item.ID)
}

// UpdateMenuItem updates an existing menu item
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	if err := s.validateItem(ctx, input); err != nil {
		return nil, err
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	item.Slug = utils.Slugify(input.Name)
	item.Description = input.Description
	item.Price = toCents(input.Price)
	item.Vegetarian = input.Vegetarian
	item.Available = input.Available
	item.ImageURL = input.ImageURL

	if err := s.menuItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.menuItemRepo.GetByID(ctx, id)
}

// DeleteMenuItem removes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuItemRepo.Delete(ctx, id)
}

// GetMenuItem returns one menu item
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenuItems returns menu items matching the filter with pagination
func (s *MenuService) ListMenuItems(ctx context.Context, params *repository.MenuItemFilterParams) ([]entity.MenuItem, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	items, total, err := s.menuItemRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return items, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// SetAvailability flips whether a menu item can be ordered
func (s *MenuService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuItemRepo.SetAvailability(ctx, id, available)
}

func (s *MenuService) validateItem(ctx context.Context, input *MenuItemInput) error {
	if input.Name == "" {
		return apperror.NewBadRequestError("Menu item name is required")
	}
	if input.Price <= 0 {
		return apperror.NewBadRequestError("Menu item price must be positive")
	}
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/offer"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// OfferService manages promotional offers and powers cart suggestions
type OfferService struct {
	offerRepo    repository.OfferRepository
	menuItemRepo repository.MenuItemRepository
	customerRepo repository.CustomerRepository
}

// NewOfferService creates a new offer service
func NewOfferService(
	offerRepo repository.OfferRepository,
	menuItemRepo repository.MenuItemRepository,
	customerRepo repository.CustomerRepository,
) *OfferService {
	return &OfferService{
		offerRepo:    offerRepo,
		menuItemRepo: menuItemRepo,
		customerRepo: customerRepo,
	}
}

// OfferItemInput ties a menu item or category into the offer's scope
type OfferItemInput struct {
	MenuItemID *uuid.UUID
	CategoryID *uuid.UUID
	Role       string
}

// SaveOfferInput represents the create/update offer input
type SaveOfferInput struct {
	Name        string
	Description string
	Type        enum.OfferType
	Priority    int
	Active      bool
	StartDate   *time.Time
	EndDate     *time.Time
	HoursStart  string
	HoursEnd    string
	ValidDays   []string
	PromoCode   string
	UsageLimit  int
	Conditions  map[string]any
	Benefits    map[string]any
	Items       []OfferItemInput
}

// CreateOffer validates and stores a new offer. The conditions and
// benefits are parsed against the offer type here, so a saved offer
// can always be turned into an evaluation rule later.
func (s *OfferService) CreateOffer(ctx context.Context, input *SaveOfferInput) (*entity.Offer, error) {
	o, err := s.buildOffer(uuid.Nil, input)
	if err != nil {
		return nil, err
	}

	if err := s.offerRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.offerRepo.GetByID(ctx, o.ID)
}

// UpdateOffer validates and replaces an existing offer's definition
func (s *OfferService) UpdateOffer(ctx context.Context, id uuid.UUID, input *SaveOfferInput) (*entity.Offer, error) {
	existing, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Offer")
	}

	o, err := s.buildOffer(id, input)
	if err != nil {
		return nil, err
	}
	o.UsageCount = existing.UsageCount
	o.CreatedAt = existing.CreatedAt

	if err := s.offerRepo.ReplaceItems(ctx, id, o.Items); err != nil {
		return nil, err
	}
	items := o.Items
	o.Items = nil
	if err := s.offerRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	o.Items = items

	return s.offerRepo.GetByID(ctx, id)
}

// DeleteOffer removes an offer
func (s *OfferService) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	existing, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Offer")
	}
	return s.offerRepo.Delete(ctx, id)
}

// GetOffer returns one offer with its scope items
func (s *OfferService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	o, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NewNotFoundError("Offer")
	}
	return o, nil
}

// ListOffers returns offers matching the filter with pagination
func (s *OfferService) ListOffers(ctx context.Context, params *repository.OfferFilterParams) ([]entity.Offer, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	offers, total, err := s.offerRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return offers, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// ListRedemptions returns an offer's redemption history
func (s *OfferService) ListRedemptions(ctx context.Context, offerID uuid.UUID, params *pagination.PaginationParams) ([]entity.OfferRedemption, *pagination.Pagination, error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	redemptions, total, err := s.offerRepo.ListRedemptions(ctx, offerID, params)
	if err != nil {
		return nil, nil, err
	}

	return redemptions, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// SuggestInput represents a cart to compute an upsell suggestion for
type SuggestInput struct {
	Items      []OrderItemInput
	CustomerID *uuid.UUID
	PromoCode  string
}

// Suggest returns the single best offer to surface for the cart:
// either one it already unlocks or the one it is closest to
// unlocking, or nil when nothing is worth showing.
func (s *OfferService) Suggest(ctx context.Context, input *SuggestInput) (*offer.Suggestion, error) {
	cart, err := s.buildCart(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	offers, err := s.offerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]offer.Rule, 0, len(offers))
	for i := range offers {
		rule, err := offers[i].ToRule()
		if err != nil {
			log.Printf("Warning: skipping malformed offer %s: %v", offers[i].ID, err)
			continue
		}
		rules = append(rules, rule)
	}

	env := offer.Env{Now: time.Now(), PromoCode: input.PromoCode}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			env.GuestOrderCount = customer.OrderCount
		}
	}

	return offer.Suggest(cart, rules, env, offer.SuggestOptions{}), nil
}

func (s *OfferService) buildOffer(id uuid.UUID, input *SaveOfferInput) (*entity.Offer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Offer name is required")
	}
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Unknown offer type")
	}
	if (input.HoursStart == "") != (input.HoursEnd == "") {
		return nil, apperror.NewBadRequestError("Hours window needs both a start and an end")
	}

	if id == uuid.Nil {
		id = utils.NewUUID()
	}

	o := &entity.Offer{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Priority:    input.Priority,
		Active:      input.Active,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		HoursStart:  input.HoursStart,
		HoursEnd:    input.HoursEnd,
		ValidDays:   strings.ToLower(strings.Join(input.ValidDays, ",")),
		PromoCode:   input.PromoCode,
		UsageLimit:  input.UsageLimit,
		Conditions:  input.Conditions,
		Benefits:    input.Benefits,
	}

	for _, item := range input.Items {
		if item.MenuItemID == nil && item.CategoryID == nil {
			return nil, apperror.NewBadRequestError("Offer item needs a menu item or a category")
		}
		o.Items = append(o.Items, entity.OfferItem{
			ID:         utils.NewUUID(),
			OfferID:    id,
			MenuItemID: item.MenuItemID,
			CategoryID: item.CategoryID,
			Role:       item.Role,
		})
	}

	// Reject definitions the evaluator could not use
	if _, err := o.ToRule(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	return o, nil
}

// buildCart prices a requested cart against the menu for evaluation
func (s *OfferService) buildCart(ctx context.Context, inputs []OrderItemInput) (offer.Cart, error) {
	menuIDs := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.MenuItemID != nil {
			menuIDs = append(menuIDs, *in.MenuItemID)
		}
	}

	menuItems, err := s.menuItemRepo.GetByIDs(ctx, menuIDs)
	if err != nil {
		return offer.Cart{}, err
	}
	menuMap := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		menuMap[menuItems[i].ID] = &menuItems[i]
	}

	cart := offer.Cart{}
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return offer.Cart{}, apperror.NewBadRequestError("Item quantity must be positive")
		}

		ci := offer.CartItem{Quantity: in.Quantity}
		if in.MenuItemID != nil {
			menuItem, ok := menuMap[*in.MenuItemID]
			if !ok {
				return offer.Cart{}, apperror.NewNotFoundError("Menu item")
			}
			ci.MenuItemID = menuItem.ID
			ci.CategoryID = menuItem.CategoryID
			ci.Name = menuItem.Name
			ci.UnitPrice = menuItem.PriceDecimal()
		} else {
			ci.Name = in.Name
			ci.UnitPrice = in.UnitPrice
		}
		ci.TotalPrice = ci.UnitPrice * float64(ci.Quantity)

		cart.Items = append(cart.Items, ci)
		cart.Total += ci.TotalPrice
	}

	return cart, nil
}

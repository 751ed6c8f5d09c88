package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	GetByPromoCode(ctx context.Context, code string) (*entity.Offer, error)
	Update(ctx context.Context, offer *entity.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OfferFilterParams) ([]entity.Offer, int64, error)
	// ListActive returns all active offers with their scope items
	// preloaded, for evaluation against a cart.
	ListActive(ctx context.Context) ([]entity.Offer, error)
	// IncrementUsage bumps the usage counter. Returns the repository's
	// not-found sentinel behavior (nil, no rows) when the offer is gone.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	ReplaceItems(ctx context.Context, offerID uuid.UUID, items []entity.OfferItem) error
	ListRedemptions(ctx context.Context, offerID uuid.UUID, params *pagination.PaginationParams) ([]entity.OfferRedemption, int64, error)
}

// OfferFilterParams contains filtering parameters for offer queries
type OfferFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.OfferType
	Active     *bool
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/kot"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
)

// KitchenService drives the kitchen display: listing tickets and
// moving items through their preparation statuses.
type KitchenService struct {
	kotRepo       repository.KOTRepository
	orderItemRepo repository.OrderItemRepository
}

// NewKitchenService creates a new kitchen service
func NewKitchenService(kotRepo repository.KOTRepository, orderItemRepo repository.OrderItemRepository) *KitchenService {
	return &KitchenService{
		kotRepo:       kotRepo,
		orderItemRepo: orderItemRepo,
	}
}

// ListTickets returns kitchen tickets matching the filter, oldest first
func (s *KitchenService) ListTickets(ctx context.Context, params *repository.KOTFilterParams) ([]entity.KOT, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	kots, total, err := s.kotRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return kots, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// GetTicket returns one ticket with its items
func (s *KitchenService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	ticket, err := s.kotRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Kitchen ticket")
	}
	return ticket, nil
}

// UpdateItemStatus advances one item and refreshes its ticket's
// aggregate status. Items only move forward; a served item cannot go
// back to preparing.
func (s *KitchenService) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enum.ItemStatus) (*entity.KOT, error) {
	item, err := s.orderItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Order item")
	}
	if item.KOTID == nil {
		return nil, apperror.NewBadRequestError("Item is not on a kitchen ticket")
	}
	if !kot.CanTransition(item.Status, status) {
		return nil, apperror.NewConflictError("Item cannot move from " + string(item.Status) + " to " + string(status))
	}

	if err := s.orderItemRepo.UpdateStatus(ctx, itemID, status); err != nil {
		return nil, err
	}

	return s.refreshTicket(ctx, *item.KOTID)
}

// UpdateTicketStatus bumps every item on a ticket that can still move
// to the target status, then recomputes the aggregate. Items already
// past the target are left alone.
func (s *KitchenService) UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status enum.ItemStatus) (*entity.KOT, error) {
	ticket, err := s.kotRepo.GetWithItems(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Kitchen ticket")
	}
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Unknown item status")
	}

	for _, item := range ticket.Items {
		if item.Status.Rank() >= status.Rank() {
			continue
		}
		if err := s.orderItemRepo.UpdateStatus(ctx, item.ID, status); err != nil {
			return nil, err
		}
	}

	return s.refreshTicket(ctx, ticketID)
}

// refreshTicket recomputes a ticket's aggregate status from its items
// and persists it.
func (s *KitchenService) refreshTicket(ctx context.Context, ticketID uuid.UUID) (*entity.KOT, error) {
	ticket, err := s.kotRepo.GetWithItems(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Kitchen ticket")
	}

	aggregate := kot.ComputeStatus(ticket.ItemStatuses())
	if aggregate != ticket.Status {
		if err := s.kotRepo.UpdateStatus(ctx, ticketID, aggregate); err != nil {
			return nil, err
		}
		ticket.Status = aggregate
	}
	return ticket, nil
}

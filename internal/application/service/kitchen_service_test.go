package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
)

type fakeKOTRepo struct {
	repository.KOTRepository
	kot   *entity.KOT
	items map[uuid.UUID]*entity.OrderItem
}

func (f *fakeKOTRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	if f.kot == nil || f.kot.ID != id {
		return nil, nil
	}
	out := *f.kot
	out.Items = nil
	for _, it := range f.kot.Items {
		out.Items = append(out.Items, *f.items[it.ID])
	}
	return &out, nil
}

func (f *fakeKOTRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error {
	f.kot.Status = status
	return nil
}

type fakeOrderItemRepo struct {
	repository.OrderItemRepository
	items map[uuid.UUID]*entity.OrderItem
}

func (f *fakeOrderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	out := *it
	return &out, nil
}

func (f *fakeOrderItemRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ItemStatus) error {
	f.items[id].Status = status
	return nil
}

func newKitchenFixture(statuses ...enum.ItemStatus) (*KitchenService, *entity.KOT, []uuid.UUID) {
	kotID := uuid.New()
	ticket := &entity.KOT{ID: kotID, Number: 1, TableNumber: 4, Status: enum.ItemStatusPlaced}
	items := make(map[uuid.UUID]*entity.OrderItem, len(statuses))
	ids := make([]uuid.UUID, 0, len(statuses))

	for _, st := range statuses {
		id := uuid.New()
		item := &entity.OrderItem{ID: id, KOTID: &kotID, KOTNumber: 1, Quantity: 1, Status: st}
		items[id] = item
		ticket.Items = append(ticket.Items, *item)
		ids = append(ids, id)
	}

	kotRepo := &fakeKOTRepo{kot: ticket, items: items}
	itemRepo := &fakeOrderItemRepo{items: items}
	return NewKitchenService(kotRepo, itemRepo), ticket, ids
}

func TestUpdateItemStatusAggregates(t *testing.T) {
	svc, _, ids := newKitchenFixture(enum.ItemStatusPlaced, enum.ItemStatusPlaced)

	ticket, err := svc.UpdateItemStatus(context.Background(), ids[0], enum.ItemStatusPreparing)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	// One item still placed keeps the whole ticket at placed
	if ticket.Status != enum.ItemStatusPlaced {
		t.Errorf("ticket status = %v, want placed", ticket.Status)
	}

	ticket, err = svc.UpdateItemStatus(context.Background(), ids[1], enum.ItemStatusPreparing)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if ticket.Status != enum.ItemStatusPreparing {
		t.Errorf("ticket status = %v, want preparing", ticket.Status)
	}
}

func TestUpdateItemStatusAllServed(t *testing.T) {
	svc, _, ids := newKitchenFixture(enum.ItemStatusServed, enum.ItemStatusReady)

	ticket, err := svc.UpdateItemStatus(context.Background(), ids[1], enum.ItemStatusServed)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if ticket.Status != enum.ItemStatusServed {
		t.Errorf("ticket status = %v, want served", ticket.Status)
	}
}

func TestUpdateItemStatusRejectsBackward(t *testing.T) {
	svc, _, ids := newKitchenFixture(enum.ItemStatusServed)

	_, err := svc.UpdateItemStatus(context.Background(), ids[0], enum.ItemStatusPreparing)
	if err == nil {
		t.Fatal("expected error moving served item back to preparing")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 409 {
		t.Errorf("error code = %d, want 409", appErr.Code)
	}
}

func TestUpdateItemStatusUnknownItem(t *testing.T) {
	svc, _, _ := newKitchenFixture(enum.ItemStatusPlaced)

	_, err := svc.UpdateItemStatus(context.Background(), uuid.New(), enum.ItemStatusReady)
	if err == nil {
		t.Fatal("expected not found error")
	}
}

func TestUpdateTicketStatusBumpsLaggingItemsOnly(t *testing.T) {
	svc, ticket, ids := newKitchenFixture(enum.ItemStatusPlaced, enum.ItemStatusServed)

	got, err := svc.UpdateTicketStatus(context.Background(), ticket.ID, enum.ItemStatusReady)
	if err != nil {
		t.Fatalf("UpdateTicketStatus: %v", err)
	}

	for _, it := range got.Items {
		switch it.ID {
		case ids[0]:
			if it.Status != enum.ItemStatusReady {
				t.Errorf("lagging item status = %v, want ready", it.Status)
			}
		case ids[1]:
			// Already past the target, untouched
			if it.Status != enum.ItemStatusServed {
				t.Errorf("served item status = %v, want served", it.Status)
			}
		}
	}
	if got.Status != enum.ItemStatusReady {
		t.Errorf("ticket status = %v, want ready", got.Status)
	}
}

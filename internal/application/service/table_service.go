package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// TableService manages dining tables and their QR tokens
type TableService struct {
	tableRepo repository.TableRepository
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository) *TableService {
	return &TableService{tableRepo: tableRepo}
}

// TableInput represents the create/update table input
type TableInput struct {
	Number   int
	Capacity int
	Active   bool
}

// CreateTable creates a table with a fresh QR token
func (s *TableService) CreateTable(ctx context.Context, input *TableInput) (*entity.DiningTable, error) {
	if input.Number <= 0 {
		return nil, apperror.NewBadRequestError("Table number must be positive")
	}

	existing, err := s.tableRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Table number already in use")
	}

	token, err := utils.GenerateQRToken()
	if err != nil {
		return nil, err
	}

	table := &entity.DiningTable{
		ID:       utils.NewUUID(),
		Number:   input.Number,
		Capacity: input.Capacity,
		QRToken:  token,
		Active:   input.Active,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// UpdateTable updates a table's number, capacity and active flag
func (s *TableService) UpdateTable(ctx context.Context, id uuid.UUID, input *TableInput) (*entity.DiningTable, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if input.Number != table.Number {
		existing, err := s.tableRepo.GetByNumber(ctx, input.Number)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Table number already in use")
		}
	}

	table.Number = input.Number
	table.Capacity = input.Capacity
	table.Active = input.Active

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// RegenerateQRToken invalidates a table's printed QR code by issuing
// a new token. Existing guest sessions keep working until they expire.
func (s *TableService) RegenerateQRToken(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	token, err := utils.GenerateQRToken()
	if err != nil {
		return nil, err
	}
	table.QRToken = token

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable removes a table
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}
	return s.tableRepo.Delete(ctx, id)
}

// GetTable returns one table
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// ListTables returns tables ordered by number
func (s *TableService) ListTables(ctx context.Context, activeOnly bool) ([]entity.DiningTable, error) {
	return s.tableRepo.List(ctx, activeOnly)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
)

// TableRepository defines the interface for dining table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.DiningTable) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error)
	GetByNumber(ctx context.Context, number int) (*entity.DiningTable, error)
	GetByQRToken(ctx context.Context, token string) (*entity.DiningTable, error)
	Update(ctx context.Context, table *entity.DiningTable) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.DiningTable, error)
}

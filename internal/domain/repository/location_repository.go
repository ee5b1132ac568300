package repository

import (
	"context"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas.
// GetByID devuelve (nil, nil) cuando no existe.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListActive(ctx context.Context) ([]*entity.Warehouse, error)
	ListByLocation(ctx context.Context, locationPrefix string) ([]*entity.Warehouse, error)
}

// BranchRepository define el puerto de persistencia para sucursales.
// GetByID devuelve (nil, nil) cuando no existe.
type BranchRepository interface {
	Create(ctx context.Context, b *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, b *entity.Branch) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListActive(ctx context.Context) ([]*entity.Branch, error)
	ListByLocation(ctx context.Context, locationPrefix string) ([]*entity.Branch, error)
}

package repository

import (
	"context"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// ItemListFilter filtros para el listado paginado de ítems de catálogo.
type ItemListFilter struct {
	Search string // ILIKE sobre nombre
	Sort   string // az | za | price-asc | price-desc | category
	Limit  int
	Offset int
}

// ItemRepository define el puerto de persistencia del catálogo.
// Los métodos Get* devuelven (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, name string) (*entity.InventoryItem, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	SoftDelete(ctx context.Context, sku string) error
	List(ctx context.Context, f ItemListFilter) ([]*entity.InventoryItem, error)
	Count(ctx context.Context, search string) (int, error)
}

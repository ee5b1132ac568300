package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var validSorts = map[string]bool{
	"":           true,
	"az":         true,
	"za":         true,
	"price-asc":  true,
	"price-desc": true,
	"category":   true,
}

// UseCase maneja el catálogo de ítems de inventario. El SKU es la identidad
// estable del ítem y es inmutable tras la creación.
type UseCase struct {
	itemRepo repository.ItemRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo}
}

// Create da de alta un ítem de catálogo. El SKU lo asigna el caller y debe
// ser único entre ítems no borrados.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: skuid y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() || in.MinRequired.IsNegative() {
		return nil, fmt.Errorf("%w: cost y min_required no pueden ser negativos", domain.ErrInvalidInput)
	}

	// Los borrados también cuentan: el skuid es la clave primaria y la fila
	// soft-deleted la conserva, así que el SKU queda ocupado para siempre.
	existing, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: skuid %s", domain.ErrDuplicate, sku)
	}

	now := time.Now()
	item := &entity.InventoryItem{
		SKU:             sku,
		Name:            name,
		Category:        strings.TrimSpace(in.Category),
		UnitMeasurement: strings.TrimSpace(in.UnitMeasurement),
		Cost:            in.Cost,
		MinRequired:     in.MinRequired,
		Description:     in.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetBySKU busca un ítem por su SKU. Los borrados no se exponen.
func (uc *UseCase) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, sku)
	}
	return item, nil
}

// ListByCategory lista los ítems activos de una categoría.
func (uc *UseCase) ListByCategory(ctx context.Context, category string) ([]*entity.InventoryItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.ListByCategory(ctx, category)
}

// List devuelve una página del catálogo con búsqueda por nombre y orden
// az | za | price-asc | price-desc | category.
func (uc *UseCase) List(ctx context.Context, search, sort string, limit, offset int) ([]*entity.InventoryItem, int, error) {
	sort = strings.ToLower(strings.TrimSpace(sort))
	if !validSorts[sort] {
		return nil, 0, fmt.Errorf("%w: orden %q", domain.ErrInvalidInput, sort)
	}
	search = strings.TrimSpace(search)
	total, err := uc.itemRepo.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	list, err := uc.itemRepo.List(ctx, repository.ItemListFilter{
		Search: search,
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update aplica una actualización parcial. El SKU no se toca.
func (uc *UseCase) Update(ctx context.Context, sku string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.UnitMeasurement != nil {
		item.UnitMeasurement = strings.TrimSpace(*in.UnitMeasurement)
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost negativo", domain.ErrInvalidInput)
		}
		item.Cost = *in.Cost
	}
	if in.MinRequired != nil {
		if in.MinRequired.IsNegative() {
			return nil, fmt.Errorf("%w: min_required negativo", domain.ErrInvalidInput)
		}
		item.MinRequired = *in.MinRequired
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SoftDelete marca un ítem como borrado. Su historial de movimientos se
// conserva intacto.
func (uc *UseCase) SoftDelete(ctx context.Context, sku string) error {
	if _, err := uc.GetBySKU(ctx, sku); err != nil {
		return err
	}
	return uc.itemRepo.SoftDelete(ctx, sku)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// CreateItemRequest body para POST /item/create.
type CreateItemRequest struct {
	SKU             string          `json:"skuid"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitMeasurement string          `json:"unit_measurement"`
	Cost            decimal.Decimal `json:"cost"`
	MinRequired     decimal.Decimal `json:"min_required"`
	Description     string          `json:"description,omitempty"`
}

// UpdateItemRequest body para POST /item/update (actualización parcial; el SKU es inmutable).
type UpdateItemRequest struct {
	Name            *string          `json:"name,omitempty"`
	Category        *string          `json:"category,omitempty"`
	UnitMeasurement *string          `json:"unit_measurement,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	MinRequired     *decimal.Decimal `json:"min_required,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// ItemResponse forma de un ítem de catálogo en respuestas.
type ItemResponse struct {
	SKU             string          `json:"skuid"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitMeasurement string          `json:"unit_measurement"`
	Cost            decimal.Decimal `json:"cost"`
	MinRequired     decimal.Decimal `json:"min_required"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToItemResponse mapea la entidad a la forma de respuesta.
func ToItemResponse(item *entity.InventoryItem) *ItemResponse {
	return &ItemResponse{
		SKU:             item.SKU,
		Name:            item.Name,
		Category:        item.Category,
		UnitMeasurement: item.UnitMeasurement,
		Cost:            item.Cost,
		MinRequired:     item.MinRequired,
		Description:     item.Description,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToItemResponses mapea un listado completo.
func ToItemResponses(list []*entity.InventoryItem) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, ToItemResponse(item))
	}
	return out
}

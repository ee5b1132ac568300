package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// TransferLineRequest una línea en la creación de traslados.
type TransferLineRequest struct {
	ItemSKU  string          `json:"inventory_item_id"`
	Quantity decimal.Decimal `json:"qty"`
}

// CreateTransferRequest body para POST /transfer/create. Exactamente uno de
// to_warehouse/to_branch debe venir; el estado inicial siempre es PENDING.
type CreateTransferRequest struct {
	FromWarehouse   string                `json:"from_warehouse"`
	ToWarehouse     *string               `json:"to_warehouse,omitempty"`
	ToBranch        *string               `json:"to_branch,omitempty"`
	Items           []TransferLineRequest `json:"items"`
	ExpectedArrival *time.Time            `json:"expected_arrival,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

// LocationSummary par {id, name} de una bodega o sucursal en respuestas.
type LocationSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransferItemSummary ítem dentro de una línea de traslado.
type TransferItemSummary struct {
	SKU  string `json:"skuid"`
	Name string `json:"name"`
}

// TransferItemResponse una línea de traslado en respuestas.
type TransferItemResponse struct {
	ID       string              `json:"id"`
	Quantity decimal.Decimal     `json:"quantity"`
	Cost     decimal.Decimal     `json:"cost"`
	Item     TransferItemSummary `json:"inventory_item"`
}

// TransferResponse forma completa de una solicitud de traslado. Los
// dashboards externos dependen de los nombres de campo.
type TransferResponse struct {
	ID              string                 `json:"id"`
	FromWarehouse   *LocationSummary       `json:"from_warehouse"`
	ToWarehouse     *LocationSummary       `json:"to_warehouse,omitempty"`
	ToBranch        *LocationSummary       `json:"to_branch,omitempty"`
	Status          string                 `json:"status"`
	TotalCost       decimal.Decimal        `json:"total_cost"`
	ExpectedArrival *time.Time             `json:"expected_arrival,omitempty"`
	ActualArrival   *time.Time             `json:"actual_arrival,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Items           []TransferItemResponse `json:"transfer_item"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ToTransferResponse mapea la entidad a la forma de respuesta.
func ToTransferResponse(t *entity.TransferRequest) *TransferResponse {
	resp := &TransferResponse{
		ID:              t.ID,
		FromWarehouse:   &LocationSummary{ID: t.FromWarehouseID, Name: t.FromWarehouseName},
		Status:          t.Status,
		TotalCost:       t.TotalCost,
		ExpectedArrival: t.ExpectedArrival,
		ActualArrival:   t.ActualArrival,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
	if t.ToWarehouseID != nil {
		resp.ToWarehouse = &LocationSummary{ID: *t.ToWarehouseID, Name: t.ToWarehouseName}
	}
	if t.ToBranchID != nil {
		resp.ToBranch = &LocationSummary{ID: *t.ToBranchID, Name: t.ToBranchName}
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, TransferItemResponse{
			ID:       it.ID,
			Quantity: it.Quantity,
			Cost:     it.Cost,
			Item:     TransferItemSummary{SKU: it.ItemSKU, Name: it.ItemName},
		})
	}
	return resp
}

// ToTransferResponses mapea un listado completo.
func ToTransferResponses(list []*entity.TransferRequest) []*TransferResponse {
	out := make([]*TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransferResponse(t))
	}
	return out
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// ProcessInputRequest body para POST /inventory/process-input: entrada manual
// de stock sobre un registro existente.
type ProcessInputRequest struct {
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ProcessTransferRequest body para POST /inventory/process-transfer.
type ProcessTransferRequest struct {
	ID string `json:"id"`
}

// CreateStockRecordRequest body para POST /inventory/create: alta directa de
// un registro de stock (la cantidad inicial entra como INPUT al ledger).
type CreateStockRecordRequest struct {
	ItemSKU     string          `json:"inventory_item_id"`
	WarehouseID *string         `json:"warehouse_id,omitempty"`
	BranchID    *string         `json:"branch_id,omitempty"`
	Quantity    decimal.Decimal `json:"qty"`
}

// ReceiveOrderLineRequest una línea de recepción de orden de compra. Name o
// SKU identifican el ítem; UnitDescriptor ("50 kg") solo se usa al auto-crear.
type ReceiveOrderLineRequest struct {
	SKU            string          `json:"skuid,omitempty"`
	Name           string          `json:"name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	UnitDescriptor string          `json:"unit_descriptor,omitempty"`
}

// ReceiveOrderRequest body para POST /inventory/receive-order.
type ReceiveOrderRequest struct {
	WarehouseID *string                   `json:"warehouse_id,omitempty"`
	BranchID    *string                   `json:"branch_id,omitempty"`
	Lines       []ReceiveOrderLineRequest `json:"lines"`
}

// StockRecordResponse forma de un registro de stock en respuestas.
type StockRecordResponse struct {
	ID          string          `json:"id"`
	ItemSKU     string          `json:"skuid"`
	WarehouseID *string         `json:"warehouse_id,omitempty"`
	BranchID    *string         `json:"branch_id,omitempty"`
	Quantity    decimal.Decimal `json:"qty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToStockRecordResponse mapea la entidad a la forma de respuesta.
func ToStockRecordResponse(rec *entity.StockRecord) *StockRecordResponse {
	return &StockRecordResponse{
		ID:          rec.ID,
		ItemSKU:     rec.ItemSKU,
		WarehouseID: rec.WarehouseID,
		BranchID:    rec.BranchID,
		Quantity:    rec.Quantity,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// ReceiveOrderLineResult resultado por línea de una recepción. Las líneas son
// independientes: una que falla no revierte las demás.
type ReceiveOrderLineResult struct {
	SKU      string          `json:"skuid,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Created  bool            `json:"item_created"`
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
}

// ReceiveOrderResponse resumen de una recepción de orden.
type ReceiveOrderResponse struct {
	Received int                      `json:"received"`
	Failed   int                      `json:"failed"`
	Lines    []ReceiveOrderLineResult `json:"lines"`
}

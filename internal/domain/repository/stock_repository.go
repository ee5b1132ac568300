package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// StockView es el modelo de lectura de un registro de stock con su ítem y
// ubicación resueltos (los listados por bodega/sucursal exponen esta forma).
type StockView struct {
	ID              string          `json:"id"`
	Quantity        decimal.Decimal `json:"qty"`
	ItemSKU         string          `json:"skuid"`
	ItemName        string          `json:"name"`
	ItemCategory    string          `json:"category"`
	ItemUnit        string          `json:"unit_measurement"`
	ItemCost        decimal.Decimal `json:"cost"`
	WarehouseID     *string         `json:"warehouse_id,omitempty"`
	WarehouseName   string          `json:"warehouse_name,omitempty"`
	BranchID        *string         `json:"branch_id,omitempty"`
	BranchName      string          `json:"branch_name,omitempty"`
	LocationAddress string          `json:"location,omitempty"`
}

// StockRepository define el puerto para consultar/actualizar stock por
// (ítem, ubicación). Get y GetForUpdate devuelven (nil, nil) cuando el
// registro no existe; GetForUpdate bloquea la fila (SELECT FOR UPDATE) para
// serializar la secuencia leer-validar-escribir del apply-delta.
type StockRepository interface {
	Get(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error)
	GetForUpdate(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error)
	GetByID(ctx context.Context, id string) (*entity.StockRecord, error)
	// Upsert inserta o actualiza por (ítem, ubicación); en inserción rellena rec.ID.
	Upsert(ctx context.Context, rec *entity.StockRecord) error
	SoftDelete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*StockView, error)
	ListByLocation(ctx context.Context, loc entity.LocationRef, search string, limit, offset int) ([]*StockView, error)
	CountByLocation(ctx context.Context, loc entity.LocationRef, search string) (int, error)
}

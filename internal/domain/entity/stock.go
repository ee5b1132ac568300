package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la cantidad disponible de un ítem en exactamente una
// ubicación (bodega XOR sucursal). A lo sumo existe un registro no borrado por
// par (ítem, ubicación): se hace upsert, nunca se duplica. La cantidad jamás
// baja de cero; la única vía de mutación es el apply-delta del ledger.
type StockRecord struct {
	ID          string
	ItemSKU     string
	WarehouseID *string
	BranchID    *string
	Quantity    decimal.Decimal
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location devuelve la referencia de ubicación del registro.
func (s *StockRecord) Location() LocationRef {
	return LocationRef{WarehouseID: s.WarehouseID, BranchID: s.BranchID}
}

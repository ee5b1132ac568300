package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa la definición de un ítem del catálogo.
// El SKU es la llave estable: único e inmutable una vez creado.
// Cost es el costo unitario estándar; el ledger lo lee, nunca lo recalcula.
type InventoryItem struct {
	SKU             string
	Name            string
	Category        string
	UnitMeasurement string
	Cost            decimal.Decimal
	MinRequired     decimal.Decimal // stock mínimo requerido (punto de reposición)
	Description     string
	IsDeleted       bool // soft-delete: nunca se borra físicamente
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

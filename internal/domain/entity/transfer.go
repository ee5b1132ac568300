package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de traslado. Camino feliz:
// PENDING → APPROVED → DELIVERED. REJECTED y CANCELLED son terminales
// alternativos desde PENDING. No existen transiciones hacia atrás.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusApproved  = "APPROVED"
	TransferStatusDelivered = "DELIVERED"
	TransferStatusRejected  = "REJECTED"
	TransferStatusCancelled = "CANCELLED"
)

// transferTransitions es la tabla de transiciones permitidas.
var transferTransitions = map[string][]string{
	TransferStatusPending:  {TransferStatusApproved, TransferStatusRejected, TransferStatusCancelled},
	TransferStatusApproved: {TransferStatusDelivered},
}

// ValidTransferStatus indica si s es un estado conocido.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved, TransferStatusDelivered,
		TransferStatusRejected, TransferStatusCancelled:
		return true
	}
	return false
}

// CanTransition indica si el paso from → to está permitido por la tabla.
func CanTransition(from, to string) bool {
	for _, next := range transferTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransferRequest representa un traslado solicitado de uno o más ítems desde
// una bodega origen hacia exactamente un destino (bodega XOR sucursal).
// Se crea una sola vez; la única mutación permitida es la transición de estado.
type TransferRequest struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   *string
	ToBranchID      *string
	// Nombres denormalizados por los listados (las respuestas exponen
	// {id, name} por cada extremo del traslado).
	FromWarehouseName string
	ToWarehouseName   string
	ToBranchName      string
	Status            string
	TotalCost         decimal.Decimal
	ExpectedArrival   *time.Time
	ActualArrival     *time.Time
	Notes             string
	Items             []TransferItem
	CreatedAt         time.Time
}

// Destination devuelve la referencia de ubicación destino.
func (t *TransferRequest) Destination() LocationRef {
	return LocationRef{WarehouseID: t.ToWarehouseID, BranchID: t.ToBranchID}
}

// TransferItem es una línea de traslado: ítem, cantidad y costo capturado al
// momento de la solicitud. Inmutable después de la creación.
type TransferItem struct {
	ID                string
	TransferRequestID string
	ItemSKU           string
	ItemName          string // denormalizado para respuestas y mensajes de error
	Quantity          decimal.Decimal
	Cost              decimal.Decimal // costo de línea = costo estándar × cantidad
}

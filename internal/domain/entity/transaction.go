package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un asiento del ledger.
const (
	TransactionSourceInput    = "INPUT"    // entrada manual o recepción de compras
	TransactionSourceOrder    = "ORDER"    // salida por despacho de pedidos
	TransactionSourceTransfer = "TRANSFER" // traslado entre ubicaciones
)

// Dirección de un asiento del ledger.
const (
	TransactionTypeIn  = "IN"
	TransactionTypeOut = "OUT"
)

// StockTransaction es un asiento inmutable del ledger: justifica exactamente
// un cambio de cantidad sobre un StockRecord. Nunca se actualiza ni se borra;
// la suma de los deltas de un registro debe igualar su cantidad actual.
type StockTransaction struct {
	ID                string
	StockRecordID     string
	ChangedQuantity   decimal.Decimal // signed: positivo IN, negativo OUT
	Source            string          // INPUT | ORDER | TRANSFER
	Type              string          // IN | OUT
	TransferRequestID *string
	CreatedAt         time.Time
}

// TypeForDelta devuelve la dirección que corresponde a un delta con signo.
func TypeForDelta(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return TransactionTypeOut
	}
	return TransactionTypeIn
}

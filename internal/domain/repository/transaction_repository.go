package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// TransactionFilter filtros del log de transacciones. Exactamente uno de
// WarehouseID/BranchID debe estar presente; Search aplica al nombre del ítem.
type TransactionFilter struct {
	WarehouseID *string
	BranchID    *string
	Search      string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// TransactionView es el modelo de lectura de un asiento del ledger con el
// registro de stock, el ítem y la ubicación resueltos (forma del reporte
// externo de logs de inventario).
type TransactionView struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"created_at"`
	Source            string          `json:"source"`
	Type              string          `json:"type"`
	ChangedQuantity   decimal.Decimal `json:"changed_quantity"`
	StockRecordID     string          `json:"stock_record_id"`
	RecordQuantity    decimal.Decimal `json:"qty"`
	ItemName          string          `json:"item_name"`
	ItemUnit          string          `json:"unit_measurement"`
	WarehouseID       *string         `json:"warehouse_id,omitempty"`
	WarehouseName     string          `json:"warehouse_name,omitempty"`
	BranchID          *string         `json:"branch_id,omitempty"`
	BranchName        string          `json:"branch_name,omitempty"`
	TransferRequestID *string         `json:"transfer_request_id,omitempty"`
	TransferStatus    string          `json:"transfer_status,omitempty"`
}

// StockTransactionRepository define el puerto del log append-only.
// No existe Update ni Delete: los asientos son inmutables.
type StockTransactionRepository interface {
	Create(ctx context.Context, txn *entity.StockTransaction) error
	List(ctx context.Context, f TransactionFilter) ([]*TransactionView, error)
	Count(ctx context.Context, f TransactionFilter) (int, error)
	// ListByRecord devuelve todos los asientos de un registro (reconciliación).
	ListByRecord(ctx context.Context, stockRecordID string) ([]*entity.StockTransaction, error)
}

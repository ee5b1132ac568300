package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del log append-only sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: los asientos nunca se tocan.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste un asiento del ledger.
func (r *StockTransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (id, stock_record_id, changed_quantity, source, type, transfer_request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.StockRecordID, txn.ChangedQuantity, txn.Source, txn.Type,
		txn.TransferRequestID, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

const transactionViewSelect = `
	SELECT st.id, st.created_at, st.source, st.type, st.changed_quantity,
	       sr.id, sr.qty, i.name, i.unit_measurement,
	       sr.warehouse_id, COALESCE(w.name, ''), sr.branch_id, COALESCE(b.name, ''),
	       st.transfer_request_id, COALESCE(tr.status, '')
	FROM stock_transactions st
	JOIN stock_records sr ON sr.id = st.stock_record_id
	JOIN inventory_items i ON i.skuid = sr.skuid
	LEFT JOIN warehouses w ON w.id = sr.warehouse_id
	LEFT JOIN branches b ON b.id = sr.branch_id
	LEFT JOIN transfer_requests tr ON tr.id = st.transfer_request_id`

// buildLogFilter arma las cláusulas WHERE comunes de List y Count.
func buildLogFilter(f repository.TransactionFilter) (string, []any) {
	var clause string
	var args []any
	if f.WarehouseID != nil {
		clause = " WHERE sr.warehouse_id = $1"
		args = append(args, *f.WarehouseID)
	} else {
		clause = " WHERE sr.branch_id = $1"
		args = append(args, *f.BranchID)
	}
	pos := 2
	if f.Search != "" {
		clause += fmt.Sprintf(" AND i.name ILIKE $%d", pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.From != nil {
		clause += fmt.Sprintf(" AND st.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		clause += fmt.Sprintf(" AND st.created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return clause, args
}

// List lista asientos del log, más recientes primero.
func (r *StockTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*repository.TransactionView, error) {
	clause, args := buildLogFilter(f)
	query := transactionViewSelect + clause
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY st.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*repository.TransactionView
	for rows.Next() {
		var v repository.TransactionView
		if err := rows.Scan(
			&v.ID, &v.CreatedAt, &v.Source, &v.Type, &v.ChangedQuantity,
			&v.StockRecordID, &v.RecordQuantity, &v.ItemName, &v.ItemUnit,
			&v.WarehouseID, &v.WarehouseName, &v.BranchID, &v.BranchName,
			&v.TransferRequestID, &v.TransferStatus,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Count cuenta los asientos que calzan con el filtro.
func (r *StockTransactionRepo) Count(ctx context.Context, f repository.TransactionFilter) (int, error) {
	clause, args := buildLogFilter(f)
	query := `
		SELECT COUNT(*)
		FROM stock_transactions st
		JOIN stock_records sr ON sr.id = st.stock_record_id
		JOIN inventory_items i ON i.skuid = sr.skuid` + clause
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return total, nil
}

// ListByRecord devuelve todos los asientos de un registro, del más antiguo al
// más reciente (reconciliación: la suma de los deltas debe dar la cantidad actual).
func (r *StockTransactionRepo) ListByRecord(ctx context.Context, stockRecordID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, stock_record_id, changed_quantity, source, type, transfer_request_id, created_at
		FROM stock_transactions
		WHERE stock_record_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, stockRecordID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by record: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var txn entity.StockTransaction
		if err := rows.Scan(
			&txn.ID, &txn.StockRecordID, &txn.ChangedQuantity, &txn.Source, &txn.Type,
			&txn.TransferRequestID, &txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &txn)
	}
	return list, rows.Err()
}

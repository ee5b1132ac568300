package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL
// (usable con pool o tx). Las lecturas hidratan líneas y nombres de
// bodega/sucursal en la misma pasada.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferSelect = `
	SELECT tr.id, tr.from_warehouse_id, COALESCE(fw.name, ''),
	       tr.to_warehouse_id, COALESCE(tw.name, ''),
	       tr.to_branch_id, COALESCE(tb.name, ''),
	       tr.status, tr.total_cost, tr.expected_arrival, tr.actual_arrival,
	       COALESCE(tr.notes, ''), tr.created_at
	FROM transfer_requests tr
	JOIN warehouses fw ON fw.id = tr.from_warehouse_id
	LEFT JOIN warehouses tw ON tw.id = tr.to_warehouse_id
	LEFT JOIN branches tb ON tb.id = tr.to_branch_id`

// Create persiste la solicitud y sus líneas. El caller decide la frontera transaccional.
func (r *TransferRepo) Create(ctx context.Context, t *entity.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (id, from_warehouse_id, to_warehouse_id, to_branch_id, status, total_cost, expected_arrival, actual_arrival, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.FromWarehouseID, t.ToWarehouseID, t.ToBranchID, t.Status,
		t.TotalCost, t.ExpectedArrival, t.ActualArrival, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer request: %w", err)
	}
	for i := range t.Items {
		item := &t.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO transfer_items (id, transfer_request_id, skuid, item_name, qty, cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, t.ID, item.ItemSKU, item.ItemName, item.Quantity, item.Cost,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una solicitud con sus líneas.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.TransferRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate obtiene la solicitud bloqueando su fila (SELECT FOR UPDATE)
// para serializar transiciones concurrentes del mismo traslado.
func (r *TransferRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *TransferRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.TransferRequest, error) {
	query := transferSelect + ` WHERE tr.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF tr`
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	if t == nil {
		return nil, nil
	}
	if err := r.loadItems(ctx, []*entity.TransferRequest{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus cambia el estado de una solicitud.
func (r *TransferRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE transfer_requests SET status = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// SetActualArrival estampa la llegada real de una solicitud.
func (r *TransferRepo) SetActualArrival(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE transfer_requests SET actual_arrival = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("set actual arrival: %w", err)
	}
	return nil
}

// ListByStatus lista solicitudes por estado, creación descendente.
func (r *TransferRepo) ListByStatus(ctx context.Context, status string) ([]*entity.TransferRequest, error) {
	query := transferSelect + ` WHERE tr.status = $1 ORDER BY tr.created_at DESC`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list transfers by status: %w", err)
	}
	return r.scanAndHydrate(ctx, rows)
}

// ListBySource lista paginado por bodega origen y estado, creación descendente.
func (r *TransferRepo) ListBySource(ctx context.Context, warehouseID, status string, limit, offset int) ([]*entity.TransferRequest, error) {
	query := transferSelect + `
		WHERE tr.from_warehouse_id = $1 AND tr.status = $2
		ORDER BY tr.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, warehouseID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers by source: %w", err)
	}
	return r.scanAndHydrate(ctx, rows)
}

// CountBySource cuenta solicitudes por bodega origen y estado.
func (r *TransferRepo) CountBySource(ctx context.Context, warehouseID, status string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transfer_requests WHERE from_warehouse_id = $1 AND status = $2`,
		warehouseID, status,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transfers by source: %w", err)
	}
	return total, nil
}

// ListByDestination lista paginado por destino (bodega o sucursal) y estado.
// DELIVERED ordena por llegada real descendente; el resto por creación.
func (r *TransferRepo) ListByDestination(ctx context.Context, locationID, status string, limit, offset int) ([]*entity.TransferRequest, error) {
	order := "tr.created_at DESC"
	if status == entity.TransferStatusDelivered {
		order = "tr.actual_arrival DESC NULLS LAST, tr.created_at DESC"
	}
	query := transferSelect + fmt.Sprintf(`
		WHERE (tr.to_warehouse_id = $1 OR tr.to_branch_id = $1) AND tr.status = $2
		ORDER BY %s
		LIMIT $3 OFFSET $4`, order)
	rows, err := r.q.Query(ctx, query, locationID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers by destination: %w", err)
	}
	return r.scanAndHydrate(ctx, rows)
}

// CountByDestination cuenta solicitudes por destino y estado.
func (r *TransferRepo) CountByDestination(ctx context.Context, locationID, status string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transfer_requests WHERE (to_warehouse_id = $1 OR to_branch_id = $1) AND status = $2`,
		locationID, status,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transfers by destination: %w", err)
	}
	return total, nil
}

func scanTransfer(row pgx.Row) (*entity.TransferRequest, error) {
	var t entity.TransferRequest
	err := row.Scan(
		&t.ID, &t.FromWarehouseID, &t.FromWarehouseName,
		&t.ToWarehouseID, &t.ToWarehouseName,
		&t.ToBranchID, &t.ToBranchName,
		&t.Status, &t.TotalCost, &t.ExpectedArrival, &t.ActualArrival,
		&t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// scanAndHydrate escanea un listado y carga las líneas de todas las
// solicitudes en una sola consulta.
func (r *TransferRepo) scanAndHydrate(ctx context.Context, rows pgx.Rows) ([]*entity.TransferRequest, error) {
	defer rows.Close()
	var list []*entity.TransferRequest
	for rows.Next() {
		var t entity.TransferRequest
		if err := rows.Scan(
			&t.ID, &t.FromWarehouseID, &t.FromWarehouseName,
			&t.ToWarehouseID, &t.ToWarehouseName,
			&t.ToBranchID, &t.ToBranchName,
			&t.Status, &t.TotalCost, &t.ExpectedArrival, &t.ActualArrival,
			&t.Notes, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *TransferRepo) loadItems(ctx context.Context, list []*entity.TransferRequest) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.TransferRequest, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_request_id, skuid, item_name, qty, cost
		FROM transfer_items
		WHERE transfer_request_id = ANY($1)
		ORDER BY item_name ASC`, ids)
	if err != nil {
		return fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.TransferItem
		if err := rows.Scan(&item.ID, &item.TransferRequestID, &item.ItemSKU, &item.ItemName, &item.Quantity, &item.Cost); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		if t, ok := byID[item.TransferRequestID]; ok {
			t.Items = append(t.Items, item)
		}
	}
	return rows.Err()
}

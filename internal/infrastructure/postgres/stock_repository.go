package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockRecordColumns = `id, skuid, warehouse_id, branch_id, qty, is_deleted, created_at, updated_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	err := row.Scan(
		&rec.ID, &rec.ItemSKU, &rec.WarehouseID, &rec.BranchID,
		&rec.Quantity, &rec.IsDeleted, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Get obtiene el registro de stock de un ítem en una ubicación.
func (r *StockRepo) Get(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error) {
	pred, arg := locationPredicate("", loc, 2)
	query := fmt.Sprintf(`
		SELECT %s FROM stock_records
		WHERE skuid = $1 AND %s AND is_deleted = false`, stockRecordColumns, pred)
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, itemSKU, arg))
	if err != nil {
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error) {
	pred, arg := locationPredicate("", loc, 2)
	query := fmt.Sprintf(`
		SELECT %s FROM stock_records
		WHERE skuid = $1 AND %s AND is_deleted = false
		FOR UPDATE`, stockRecordColumns, pred)
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, itemSKU, arg))
	if err != nil {
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return rec, nil
}

// GetByID obtiene un registro de stock por su id.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_records WHERE id = $1`, stockRecordColumns)
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock record by id: %w", err)
	}
	return rec, nil
}

// Upsert inserta el registro si no tiene id (y lo rellena) o actualiza su
// cantidad si ya existe.
func (r *StockRepo) Upsert(ctx context.Context, rec *entity.StockRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
		query := `
			INSERT INTO stock_records (id, skuid, warehouse_id, branch_id, qty, is_deleted, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, false, $6, $6)`
		_, err := r.q.Exec(ctx, query,
			rec.ID, rec.ItemSKU, rec.WarehouseID, rec.BranchID, rec.Quantity, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert stock record: %w", err)
		}
		return nil
	}
	query := `UPDATE stock_records SET qty = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.Quantity, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	return nil
}

// SoftDelete marca el registro como borrado. El historial de asientos queda intacto.
func (r *StockRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE stock_records SET is_deleted = true, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete stock record: %w", err)
	}
	return nil
}

const stockViewSelect = `
	SELECT sr.id, sr.qty, i.skuid, i.name, i.category, i.unit_measurement, i.cost,
	       sr.warehouse_id, COALESCE(w.name, ''), sr.branch_id, COALESCE(b.name, ''),
	       COALESCE(w.location, b.location, '')
	FROM stock_records sr
	JOIN inventory_items i ON i.skuid = sr.skuid
	LEFT JOIN warehouses w ON w.id = sr.warehouse_id
	LEFT JOIN branches b ON b.id = sr.branch_id
	WHERE sr.is_deleted = false AND i.is_deleted = false`

func scanStockViews(rows pgx.Rows) ([]*repository.StockView, error) {
	defer rows.Close()
	var list []*repository.StockView
	for rows.Next() {
		var v repository.StockView
		if err := rows.Scan(
			&v.ID, &v.Quantity, &v.ItemSKU, &v.ItemName, &v.ItemCategory, &v.ItemUnit, &v.ItemCost,
			&v.WarehouseID, &v.WarehouseName, &v.BranchID, &v.BranchName, &v.LocationAddress,
		); err != nil {
			return nil, fmt.Errorf("scan stock view: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListAll lista todos los registros activos con ítem y ubicación resueltos.
func (r *StockRepo) ListAll(ctx context.Context) ([]*repository.StockView, error) {
	rows, err := r.q.Query(ctx, stockViewSelect+` ORDER BY i.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return scanStockViews(rows)
}

// ListByLocation lista paginado los registros de una ubicación, con búsqueda
// por nombre de ítem.
func (r *StockRepo) ListByLocation(ctx context.Context, loc entity.LocationRef, search string, limit, offset int) ([]*repository.StockView, error) {
	pred, arg := locationPredicate("sr.", loc, 1)
	query := stockViewSelect + " AND " + pred
	args := []any{arg}
	pos := 2
	if search != "" {
		query += fmt.Sprintf(" AND i.name ILIKE $%d", pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY i.name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	return scanStockViews(rows)
}

// CountByLocation cuenta los registros activos de una ubicación.
func (r *StockRepo) CountByLocation(ctx context.Context, loc entity.LocationRef, search string) (int, error) {
	pred, arg := locationPredicate("sr.", loc, 1)
	query := `
		SELECT COUNT(*)
		FROM stock_records sr
		JOIN inventory_items i ON i.skuid = sr.skuid
		WHERE sr.is_deleted = false AND i.is_deleted = false AND ` + pred
	args := []any{arg}
	if search != "" {
		query += " AND i.name ILIKE $2"
		args = append(args, "%"+search+"%")
	}
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock by location: %w", err)
	}
	return total, nil
}

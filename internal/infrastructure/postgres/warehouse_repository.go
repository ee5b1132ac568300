package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, name, location, image_url, status, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, location, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Location, w.ImageURL, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por id.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := fmt.Sprintf(`SELECT %s FROM warehouses WHERE id = $1`, warehouseColumns)
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Location, &w.ImageURL, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza los datos de una bodega.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, image_url = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Location, w.ImageURL, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado ACTIVE/INACTIVE de una bodega.
func (r *WarehouseRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE warehouses SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update warehouse status: %w", err)
	}
	return nil
}

// ListActive lista las bodegas en estado ACTIVE, por nombre.
func (r *WarehouseRepo) ListActive(ctx context.Context) ([]*entity.Warehouse, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM warehouses WHERE status = $1 ORDER BY name ASC`, warehouseColumns)
	rows, err := r.q.Query(ctx, query, entity.LocationStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active warehouses: %w", err)
	}
	return scanWarehouses(rows)
}

// ListByLocation filtra bodegas por prefijo de ubicación geográfica.
func (r *WarehouseRepo) ListByLocation(ctx context.Context, locationPrefix string) ([]*entity.Warehouse, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM warehouses WHERE location ILIKE $1 ORDER BY name ASC`, warehouseColumns)
	rows, err := r.q.Query(ctx, query, locationPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list warehouses by location: %w", err)
	}
	return scanWarehouses(rows)
}

func scanWarehouses(rows pgx.Rows) ([]*entity.Warehouse, error) {
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.ImageURL, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

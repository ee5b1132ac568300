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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `skuid, name, category, unit_measurement, cost, min_required, description, is_deleted, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := row.Scan(
		&item.SKU, &item.Name, &item.Category, &item.UnitMeasurement,
		&item.Cost, &item.MinRequired, &item.Description, &item.IsDeleted,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create persiste un nuevo ítem de catálogo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (skuid, name, category, unit_measurement, cost, min_required, description, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.SKU, item.Name, item.Category, item.UnitMeasurement,
		item.Cost, item.MinRequired, item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetBySKU obtiene un ítem por su SKU, incluso si está borrado (el caller decide).
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE skuid = $1`, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByName obtiene un ítem activo por nombre exacto (case-insensitive).
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE lower(name) = lower($1) AND is_deleted = false`, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

// ListByCategory lista los ítems activos de una categoría, por nombre.
func (r *ItemRepo) ListByCategory(ctx context.Context, category string) ([]*entity.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE category = $1 AND is_deleted = false
		ORDER BY name ASC`, itemColumns)
	rows, err := r.q.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	return scanItems(rows)
}

// Update actualiza un ítem existente. El SKU es inmutable.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, unit_measurement = $4, cost = $5, min_required = $6, description = $7, updated_at = $8
		WHERE skuid = $1 AND is_deleted = false`
	_, err := r.q.Exec(ctx, query,
		item.SKU, item.Name, item.Category, item.UnitMeasurement,
		item.Cost, item.MinRequired, item.Description, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SoftDelete marca un ítem como borrado; sus movimientos históricos permanecen.
func (r *ItemRepo) SoftDelete(ctx context.Context, sku string) error {
	query := `UPDATE inventory_items SET is_deleted = true, updated_at = now() WHERE skuid = $1`
	_, err := r.q.Exec(ctx, query, sku)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

// orderBy traduce el orden del listado a una cláusula segura (whitelist, nunca input directo).
func orderBy(sort string) string {
	switch sort {
	case "za":
		return "name DESC"
	case "price-asc":
		return "cost ASC"
	case "price-desc":
		return "cost DESC"
	case "category":
		return "category ASC, name ASC"
	default: // az
		return "name ASC"
	}
}

// List lista ítems activos con búsqueda por nombre, orden y paginación.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemListFilter) ([]*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE is_deleted = false`, itemColumns)
	var args []any
	pos := 1
	if f.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy(f.Sort), pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return scanItems(rows)
}

// Count cuenta los ítems activos que calzan con la búsqueda.
func (r *ItemRepo) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_items WHERE is_deleted = false`
	var args []any
	if search != "" {
		query += " AND name ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := rows.Scan(
			&item.SKU, &item.Name, &item.Category, &item.UnitMeasurement,
			&item.Cost, &item.MinRequired, &item.Description, &item.IsDeleted,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de sucursales. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, name, location, image_url, status, created_at, updated_at`

// Create persiste una nueva sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, location, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Location, b.ImageURL, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por id.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE id = $1`, branchColumns)
	var b entity.Branch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Location, &b.ImageURL, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// Update actualiza los datos de una sucursal.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, location = $3, image_url = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.Name, b.Location, b.ImageURL, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado ACTIVE/INACTIVE de una sucursal.
func (r *BranchRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE branches SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update branch status: %w", err)
	}
	return nil
}

// ListActive lista las sucursales en estado ACTIVE, por nombre.
func (r *BranchRepo) ListActive(ctx context.Context) ([]*entity.Branch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM branches WHERE status = $1 ORDER BY name ASC`, branchColumns)
	rows, err := r.q.Query(ctx, query, entity.LocationStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active branches: %w", err)
	}
	return scanBranches(rows)
}

// ListByLocation filtra sucursales por prefijo de ubicación geográfica.
func (r *BranchRepo) ListByLocation(ctx context.Context, locationPrefix string) ([]*entity.Branch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM branches WHERE location ILIKE $1 ORDER BY name ASC`, branchColumns)
	rows, err := r.q.Query(ctx, query, locationPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list branches by location: %w", err)
	}
	return scanBranches(rows)
}

func scanBranches(rows pgx.Rows) ([]*entity.Branch, error) {
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.ImageURL, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

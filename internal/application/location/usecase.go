package location

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// UseCase administra bodegas y sucursales. Una ubicación INACTIVE conserva
// su stock y su historial pero rechaza nuevas operaciones.
type UseCase struct {
	warehouseRepo repository.WarehouseRepository
	branchRepo    repository.BranchRepository
}

// NewUseCase construye el caso de uso de ubicaciones.
func NewUseCase(warehouseRepo repository.WarehouseRepository, branchRepo repository.BranchRepository) *UseCase {
	return &UseCase{warehouseRepo: warehouseRepo, branchRepo: branchRepo}
}

func validateCreate(in dto.CreateLocationRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

// CreateWarehouse da de alta una bodega en estado ACTIVE.
func (uc *UseCase) CreateWarehouse(ctx context.Context, in dto.CreateLocationRequest) (*entity.Warehouse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Location:  strings.TrimSpace(in.Location),
		ImageURL:  in.ImageURL,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// CreateBranch da de alta una sucursal en estado ACTIVE.
func (uc *UseCase) CreateBranch(ctx context.Context, in dto.CreateLocationRequest) (*entity.Branch, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Location:  strings.TrimSpace(in.Location),
		ImageURL:  in.ImageURL,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetWarehouse busca una bodega por id.
func (uc *UseCase) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return w, nil
}

// GetBranch busca una sucursal por id.
func (uc *UseCase) GetBranch(ctx context.Context, id string) (*entity.Branch, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	return b, nil
}

// ListActiveWarehouses lista las bodegas en estado ACTIVE.
func (uc *UseCase) ListActiveWarehouses(ctx context.Context) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.ListActive(ctx)
}

// ListActiveBranches lista las sucursales en estado ACTIVE.
func (uc *UseCase) ListActiveBranches(ctx context.Context) ([]*entity.Branch, error) {
	return uc.branchRepo.ListActive(ctx)
}

// ListWarehousesByLocation filtra bodegas por prefijo de ubicación geográfica.
func (uc *UseCase) ListWarehousesByLocation(ctx context.Context, prefix string) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.ListByLocation(ctx, strings.TrimSpace(prefix))
}

// ListBranchesByLocation filtra sucursales por prefijo de ubicación geográfica.
func (uc *UseCase) ListBranchesByLocation(ctx context.Context, prefix string) ([]*entity.Branch, error) {
	return uc.branchRepo.ListByLocation(ctx, strings.TrimSpace(prefix))
}

// UpdateWarehouse aplica una actualización parcial a una bodega.
func (uc *UseCase) UpdateWarehouse(ctx context.Context, id string, in dto.UpdateLocationRequest) (*entity.Warehouse, error) {
	w, err := uc.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	applyLocationUpdate(&w.Name, &w.Location, &w.ImageURL, in)
	w.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateBranch aplica una actualización parcial a una sucursal.
func (uc *UseCase) UpdateBranch(ctx context.Context, id string, in dto.UpdateLocationRequest) (*entity.Branch, error) {
	b, err := uc.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	applyLocationUpdate(&b.Name, &b.Location, &b.ImageURL, in)
	b.UpdatedAt = time.Now()
	if err := uc.branchRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func applyLocationUpdate(name, location, imageURL *string, in dto.UpdateLocationRequest) {
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		*name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		*location = strings.TrimSpace(*in.Location)
	}
	if in.ImageURL != nil {
		*imageURL = *in.ImageURL
	}
}

// UpdateWarehouseStatus activa o desactiva una bodega.
func (uc *UseCase) UpdateWarehouseStatus(ctx context.Context, id, status string) (*entity.Warehouse, error) {
	status, err := normalizeStatus(status)
	if err != nil {
		return nil, err
	}
	w, err := uc.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.warehouseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	w.Status = status
	w.UpdatedAt = time.Now()
	return w, nil
}

// UpdateBranchStatus activa o desactiva una sucursal.
func (uc *UseCase) UpdateBranchStatus(ctx context.Context, id, status string) (*entity.Branch, error) {
	status, err := normalizeStatus(status)
	if err != nil {
		return nil, err
	}
	b, err := uc.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.branchRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func normalizeStatus(status string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(status))
	if s != entity.LocationStatusActive && s != entity.LocationStatusInactive {
		return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	return s, nil
}

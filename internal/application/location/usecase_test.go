package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/location"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/testutil"
)

func newUseCase(t *testing.T) *location.UseCase {
	t.Helper()
	store := testutil.NewStore()
	return location.NewUseCase(store.Warehouses, store.Branches)
}

func strptr(s string) *string { return &s }

func TestCreateWarehouse_NaceActiva(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	w, err := uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "Bodega Central", Location: "Santiago Centro"})
	require.NoError(t, err)
	require.NotEmpty(t, w.ID)
	assert.Equal(t, entity.LocationStatusActive, w.Status)

	got, err := uc.GetWarehouse(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega Central", got.Name)
}

func TestCreateWarehouse_NombreObligatorio(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.CreateWarehouse(context.Background(), dto.CreateLocationRequest{Location: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetBranch_Inexistente(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.GetBranch(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_NormalizaYValida(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	w, err := uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "Bodega", Location: "x"})
	require.NoError(t, err)

	out, err := uc.UpdateWarehouseStatus(ctx, w.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, entity.LocationStatusInactive, out.Status, "el estado se normaliza a mayúsculas")

	_, err = uc.UpdateWarehouseStatus(ctx, w.ID, "PAUSADA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListActive_ExcluyeInactivas(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	a, err := uc.CreateBranch(ctx, dto.CreateLocationRequest{Name: "Sucursal Norte", Location: "Antofagasta"})
	require.NoError(t, err)
	_, err = uc.CreateBranch(ctx, dto.CreateLocationRequest{Name: "Sucursal Sur", Location: "Temuco"})
	require.NoError(t, err)

	_, err = uc.UpdateBranchStatus(ctx, a.ID, entity.LocationStatusInactive)
	require.NoError(t, err)

	list, err := uc.ListActiveBranches(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sucursal Sur", list[0].Name)
}

func TestListByLocation_FiltraPorPrefijo(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "B1", Location: "Santiago Centro"})
	require.NoError(t, err)
	_, err = uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "B2", Location: "Santiago Sur"})
	require.NoError(t, err)
	_, err = uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "B3", Location: "Valparaíso"})
	require.NoError(t, err)

	list, err := uc.ListWarehousesByLocation(ctx, "santiago")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateWarehouse_Parcial(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	w, err := uc.CreateWarehouse(ctx, dto.CreateLocationRequest{Name: "Bodega", Location: "Santiago"})
	require.NoError(t, err)

	out, err := uc.UpdateWarehouse(ctx, w.ID, dto.UpdateLocationRequest{Location: strptr("Rancagua")})
	require.NoError(t, err)
	assert.Equal(t, "Bodega", out.Name)
	assert.Equal(t, "Rancagua", out.Location)
}

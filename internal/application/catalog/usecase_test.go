package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masuelto/almacen-api/internal/application/catalog"
	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/testutil"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strptr(s string) *string { return &s }

func newCatalog(t *testing.T) (*catalog.UseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	return catalog.NewUseCase(store.Items), store
}

func mustCreate(t *testing.T, uc *catalog.UseCase, sku, name, category, cost string) {
	t.Helper()
	_, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU: sku, Name: name, Category: category, UnitMeasurement: "kg", Cost: qty(cost),
	})
	require.NoError(t, err)
}

func TestCreate_YRecuperaPorSKU(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateItemRequest{
		SKU: "  sku-1  ", Name: " Harina ", Category: "insumos",
		UnitMeasurement: "kg", Cost: qty("2.5"), MinRequired: qty("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", created.SKU, "el SKU se normaliza sin espacios")
	assert.Equal(t, "Harina", created.Name)

	got, err := uc.GetBySKU(ctx, "sku-1")
	require.NoError(t, err)
	assert.Equal(t, "Harina", got.Name)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateItemRequest{SKU: "", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "SKU obligatorio")

	_, err = uc.Create(ctx, dto.CreateItemRequest{SKU: "s", Name: "X", Cost: qty("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}

func TestCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newCatalog(t)
	mustCreate(t, uc, "sku-1", "Harina", "insumos", "2.5")

	_, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU: "sku-1", Name: "Otro", UnitMeasurement: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_SKUBorradoSigueOcupado(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, uc, "sku-1", "Harina", "insumos", "2.5")
	require.NoError(t, uc.SoftDelete(ctx, "sku-1"))

	// La fila soft-deleted conserva la clave primaria: reusar el SKU es conflicto.
	_, err := uc.Create(ctx, dto.CreateItemRequest{
		SKU: "sku-1", Name: "Harina Nueva", UnitMeasurement: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_ParcialSinTocarSKU(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, uc, "sku-1", "Harina", "insumos", "2.5")

	updated, err := uc.Update(ctx, "sku-1", dto.UpdateItemRequest{
		Cost: decimalPtr("3.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", updated.SKU)
	assert.Equal(t, "Harina", updated.Name, "los campos no enviados no cambian")
	assert.True(t, updated.Cost.Equal(qty("3.1")))

	_, err = uc.Update(ctx, "sku-1", dto.UpdateItemRequest{Name: strptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "name vacío rechazado")
}

func TestSoftDelete_OcultaElItem(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, uc, "sku-1", "Harina", "insumos", "2.5")

	require.NoError(t, uc.SoftDelete(ctx, "sku-1"))

	_, err := uc.GetBySKU(ctx, "sku-1")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	err = uc.SoftDelete(ctx, "sku-1")
	assert.ErrorIs(t, err, domain.ErrUnknownItem, "borrar dos veces falla la segunda")
}

func TestList_BusquedaOrdenYPaginado(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, uc, "sku-1", "Azúcar", "insumos", "1.2")
	mustCreate(t, uc, "sku-2", "Harina", "insumos", "2.5")
	mustCreate(t, uc, "sku-3", "Detergente", "limpieza", "4.0")

	list, total, err := uc.List(ctx, "", "az", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, "Azúcar", list[0].Name)

	list, total, err = uc.List(ctx, "", "price-desc", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total, "el total ignora el límite de página")
	require.Len(t, list, 2)
	assert.Equal(t, "Detergente", list[0].Name)

	list, _, err = uc.List(ctx, "hari", "az", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Harina", list[0].Name)

	_, _, err = uc.List(ctx, "", "precio", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "orden fuera de la lista blanca")
}

func TestListByCategory_SoloActivos(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, uc, "sku-1", "Azúcar", "insumos", "1.2")
	mustCreate(t, uc, "sku-2", "Harina", "insumos", "2.5")
	require.NoError(t, uc.SoftDelete(ctx, "sku-1"))

	list, err := uc.ListByCategory(ctx, "insumos")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Harina", list[0].Name)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
